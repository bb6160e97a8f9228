package response

import (
	"happyhour-console/internal/domain/bar"
)

// Bar records serialize with their document-shaped json tags, so the
// handlers return domain values and query views directly. Only the
// shapes without a one-to-one view get wrappers here.

type MenuURLResponse struct {
	URL string `json:"url"`
}

type AnalyzeResponse struct {
	EntriesAdded int      `json:"entries_added"`
	State        string   `json:"state"`
	Draft        *bar.Bar `json:"draft,omitempty"`
}
