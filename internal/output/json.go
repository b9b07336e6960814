package output

import (
	"encoding/json"
	"fmt"
)

// JSONFormatter emits the result document with its stable field names
type JSONFormatter struct {
	Pretty bool
}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *Report) ([]byte, error) {
	if report == nil || report.Result == nil {
		return nil, fmt.Errorf("no result to format")
	}
	if j.Pretty {
		return json.MarshalIndent(report.Result, "", "  ")
	}
	return json.Marshal(report.Result)
}
