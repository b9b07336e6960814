package compare

import (
	"encoding/json"

	"github.com/rgehrsitz/corpus/internal/domain"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
	// IncludeResults embeds the full engine result of every plan
	IncludeResults bool
}

type jsonDocument struct {
	*ComparisonSet
	Results map[string]*domain.Result `json:"results,omitempty"`
}

// Format generates JSON output for comparison results
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	doc := jsonDocument{ComparisonSet: compSet}
	if jf.IncludeResults {
		doc.Results = make(map[string]*domain.Result)
		if compSet.BaseResult != nil && compSet.BaseResult.Result != nil {
			doc.Results[compSet.BaseResult.ScenarioName] = compSet.BaseResult.Result
		}
		for _, alt := range compSet.AlternativeResults {
			if alt.Result != nil {
				doc.Results[alt.ScenarioName] = alt.Result
			}
		}
	}

	var data []byte
	var err error
	if jf.Pretty {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return "", err
	}

	return string(data), nil
}
