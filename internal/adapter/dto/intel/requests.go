package intel

// ImportRequest triggers a batch import of historical Fathom meetings
type ImportRequest struct {
	Limit  int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Cursor string `json:"cursor"`
	OrgID  string `json:"orgId" validate:"omitempty,max=64"`
}

// RegisterWebhookRequest registers this service as a Fathom webhook
// destination
type RegisterWebhookRequest struct {
	DestinationURL string `json:"destinationUrl" validate:"required,url"`
}
