package dto

import "github.com/google/uuid"

type CreatePostRequest struct {
	Title    string     `json:"title"`
	Content  string     `json:"content"`
	ImageURL *string    `json:"image_url,omitempty"`
	TopicID  *uuid.UUID `json:"topic_id,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
}

type UpdatePostRequest struct {
	Title    *string    `json:"title,omitempty"`
	Content  *string    `json:"content,omitempty"`
	ImageURL *string    `json:"image_url,omitempty"`
	TopicID  *uuid.UUID `json:"topic_id,omitempty"`
	Tags     []string   `json:"tags,omitempty"`
}

type VoteRequest struct {
	VoteType string `json:"vote_type"`
}

type ReportRequest struct {
	Reason string `json:"reason"`
}

type CreateCommentRequest struct {
	Content  string     `json:"content"`
	ParentID *uuid.UUID `json:"parent_id,omitempty"`
}
