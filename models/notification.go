package models

// EmailPayload is the queued transactional email task body.
type EmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SyncPayload asks the worker to refresh a business's payment account
// status from the payments platform.
type SyncPayload struct {
	AccountID  string `json:"accountId"`
	BusinessID string `json:"businessId"`
}
