package ops

// ListInput contains parameters for the List operation.
type ListInput struct {
	Limit int // default: 10
}

// ListOutput contains the result of the List operation.
type ListOutput struct {
	Items []Summary `json:"items"`
	Limit int       `json:"limit"`
	Sort  string    `json:"sort"`
}

// List returns the most recent items, newest first.
func List(r Reader, input ListInput) *ListOutput {
	limit := input.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}

	return &ListOutput{
		Items: summarizeAll(r.Get(limit)),
		Limit: limit,
		Sort:  "captured_desc",
	}
}
