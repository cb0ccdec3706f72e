package tui

import (
	"github.com/planwise/planwise/internal/compare"
	"github.com/planwise/planwise/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneScenarios
	SceneAdjust
	SceneResults
	SceneCompare
	SceneHelp
)

// String returns a human-readable name for a scene.
func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneScenarios:
		return "Scenarios"
	case SceneAdjust:
		return "Adjust"
	case SceneResults:
		return "Results"
	case SceneCompare:
		return "Compare"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// ConfigLoadedMsg signals the plan configuration has been loaded
type ConfigLoadedMsg struct {
	Config *domain.Configuration
}

// PlanCompleteMsg signals a scenario run has finished
type PlanCompleteMsg struct {
	ScenarioName string
	Result       *domain.PlanResult
	Err          error
}

// CompareCompleteMsg signals a scenario comparison has finished
type CompareCompleteMsg struct {
	Set *compare.ComparisonSet
	Err error
}
