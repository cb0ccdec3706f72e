package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines the global key bindings.
type keyMap struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Select  key.Binding
	Back    key.Binding
	Home    key.Binding
	Compare key.Binding
	Help    key.Binding
	Quit    key.Binding
}

var keys = keyMap{
	Up:      key.NewBinding(key.WithKeys("up", "k")),
	Down:    key.NewBinding(key.WithKeys("down", "j")),
	Left:    key.NewBinding(key.WithKeys("left", "h")),
	Right:   key.NewBinding(key.WithKeys("right", "l")),
	Select:  key.NewBinding(key.WithKeys("enter")),
	Back:    key.NewBinding(key.WithKeys("esc")),
	Home:    key.NewBinding(key.WithKeys("H")),
	Compare: key.NewBinding(key.WithKeys("c")),
	Help:    key.NewBinding(key.WithKeys("?")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case ConfigLoadedMsg:
		m.config = msg.Config
		m.loading = false
		if len(msg.Config.Scenarios) > 0 {
			m.selectedScenario = msg.Config.Scenarios[0].Name
			m.syncSliders(&msg.Config.Scenarios[0])
			return m, m.runPlanCmd()
		}
		return m, nil

	case PlanCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.err = nil
			m.result = msg.Result
		}
		return m, nil

	case CompareCompleteMsg:
		m.loading = false
		if msg.Err != nil {
			m.err = msg.Err
		} else {
			m.err = nil
			m.comparison = msg.Set
		}
		return m, nil
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// An error screen swallows the next key press.
	if m.err != nil {
		m.err = nil
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Help):
		return m.navigate(SceneHelp)

	case key.Matches(msg, keys.Back):
		if m.currentScene != SceneHome {
			return m.navigate(m.previousScene)
		}
		return m, nil

	case key.Matches(msg, keys.Home):
		return m.navigate(SceneHome)
	}

	switch m.currentScene {
	case SceneHome:
		return m.updateHome(msg)
	case SceneScenarios:
		return m.updateScenarios(msg)
	case SceneAdjust:
		return m.updateAdjust(msg)
	case SceneResults, SceneCompare, SceneHelp:
		return m, nil
	}
	return m, nil
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	m.previousScene = m.currentScene
	m.currentScene = scene
	return m, nil
}

// updateHome routes the home menu shortcuts.
func (m Model) updateHome(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "s":
		return m.navigate(SceneScenarios)
	case "a":
		return m.navigate(SceneAdjust)
	case "r":
		return m.navigate(SceneResults)
	case "c":
		m.loading = true
		next, _ := m.navigate(SceneCompare)
		return next, m.compareCmd()
	}
	return m, nil
}

// updateScenarios handles list navigation and selection.
func (m Model) updateScenarios(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.config == nil || len(m.config.Scenarios) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.scenarioCursor > 0 {
			m.scenarioCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.scenarioCursor < len(m.config.Scenarios)-1 {
			m.scenarioCursor++
		}
	case key.Matches(msg, keys.Select):
		scenario := &m.config.Scenarios[m.scenarioCursor]
		m.selectedScenario = scenario.Name
		m.syncSliders(scenario)
		m.loading = true
		next, _ := m.navigate(SceneResults)
		return next, m.runPlanCmd()
	}
	return m, nil
}

// updateAdjust moves slider focus and re-runs the plan on every change.
func (m Model) updateAdjust(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.config == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.sliderCursor > 0 {
			m.sliderCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.sliderCursor < len(m.sliders)-1 {
			m.sliderCursor++
		}
	case key.Matches(msg, keys.Left):
		m.sliders[m.sliderCursor].Decrease()
		return m, m.runPlanCmd()
	case key.Matches(msg, keys.Right):
		m.sliders[m.sliderCursor].Increase()
		return m, m.runPlanCmd()
	}
	return m, nil
}
