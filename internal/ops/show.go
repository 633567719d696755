package ops

import (
	"strings"

	"github.com/hpungsan/clipmesh/internal/clip"
	"github.com/hpungsan/clipmesh/internal/errors"
)

// ShowInput contains parameters for the Show operation.
type ShowInput struct {
	ID string // required
}

// Show returns the full item with the given id.
func Show(r Reader, input ShowInput) (*clip.Item, error) {
	id := strings.TrimSpace(input.ID)
	if id == "" {
		return nil, errors.NewInvalidRequest("id is required")
	}

	item, ok := r.Find(id)
	if !ok {
		return nil, errors.NewNotFound(id)
	}
	return &item, nil
}
