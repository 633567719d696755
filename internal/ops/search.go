package ops

import (
	"strings"

	"github.com/hpungsan/clipmesh/internal/errors"
)

// SearchInput contains parameters for the Search operation.
type SearchInput struct {
	Query string // required; matched as a case-insensitive substring
}

// SearchOutput contains the result of the Search operation.
type SearchOutput struct {
	Query string    `json:"query"`
	Items []Summary `json:"items"`
	Total int       `json:"total"`
}

// Search returns every item whose content contains the query, newest first.
func Search(r Reader, input SearchInput) (*SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return nil, errors.NewInvalidRequest("query is required")
	}

	items := summarizeAll(r.Search(input.Query))
	return &SearchOutput{
		Query: input.Query,
		Items: items,
		Total: len(items),
	}, nil
}
