package output

import (
	"encoding/json"

	"github.com/planwise/planwise/internal/domain"
)

// JSONFormatter renders plan results as JSON.
type JSONFormatter struct {
	Pretty bool
}

func (jf *JSONFormatter) Name() string { return "json" }

// Format generates JSON output for the plan results.
func (jf *JSONFormatter) Format(results []domain.PlanResult) (string, error) {
	var data []byte
	var err error

	if jf.Pretty {
		data, err = json.MarshalIndent(results, "", "  ")
	} else {
		data, err = json.Marshal(results)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
