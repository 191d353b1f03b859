package dto

type GenerateCustomRequest struct {
	Age         string `json:"age"`
	Gender      string `json:"gender"`
	Procedure   string `json:"procedure"`
	Reason      string `json:"reason"`
	ContentType string `json:"content_type"`
	Topic       string `json:"topic"`
}

type GenerateBatchRequest struct {
	Count int `json:"count"`
}

type ScheduleRequest struct {
	Enabled        *bool   `json:"enabled,omitempty"`
	CronExpression *string `json:"cron_expression,omitempty"`
}
