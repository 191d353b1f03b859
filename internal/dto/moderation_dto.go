package dto

type ModerateRequest struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}

type ModerationStatsResponse struct {
	PendingPosts    int64 `json:"pending_posts"`
	PublishedPosts  int64 `json:"published_posts"`
	RejectedPosts   int64 `json:"rejected_posts"`
	FlaggedPosts    int64 `json:"flagged_posts"`
	FlaggedComments int64 `json:"flagged_comments"`
	OpenReports     int64 `json:"open_reports"`
}
