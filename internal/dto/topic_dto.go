package dto

type CreateTopicRequest struct {
	Name        string  `json:"name"`
	Icon        string  `json:"icon"`
	Slug        string  `json:"slug"`
	Description *string `json:"description,omitempty"`
	SortOrder   int     `json:"sort_order"`
}
