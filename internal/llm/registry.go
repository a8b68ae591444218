package llm

import "github.com/converse-ai/converse/internal/domain"

// Model describes one selectable chat model.
type Model struct {
	ID            string `json:"id"`
	Label         string `json:"label"`
	APIIdentifier string `json:"api_identifier"`
	Description   string `json:"description"`
}

// DefaultModelID is used when the client sends no selection.
const DefaultModelID = "gemini-2.0-flash-exp"

// Models is the registry of models the client may select.
var Models = []Model{
	{
		ID:            "gemini-2.0-flash-exp",
		Label:         "Gemini Flash 2.0",
		APIIdentifier: "gemini-2.0-flash-exp",
		Description:   "Experimental version of Gemini Flash 2.0",
	},
	{
		ID:            "gemini-1.5-flash-latest",
		Label:         "Gemini Flash 1.5",
		APIIdentifier: "gemini-1.5-flash-latest",
		Description:   "Latest version of Gemini Flash 1.5",
	},
}

// LookupModel resolves a model id against the registry.
func LookupModel(id string) (Model, error) {
	for _, m := range Models {
		if m.ID == id {
			return m, nil
		}
	}
	return Model{}, domain.ErrNotFound
}
