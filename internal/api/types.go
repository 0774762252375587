package api

import "github.com/forkful/recipe-catalog/backend/internal/model"

// ListResponse is the envelope for the paginated listing endpoint.
type ListResponse struct {
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
	Data  []model.Recipe `json:"data"`
}

// SearchResponse carries the full result set of a filtered search. The length
// of Data is the total; there is no separate count field.
type SearchResponse struct {
	Data []model.Recipe `json:"data"`
}
