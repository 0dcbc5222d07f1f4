package tasks

import (
	"encoding/json"
	"time"

	"trylocal/models"

	"github.com/hibiken/asynq"
)

const (
	TypeEmailSend   = "email:send"
	TypeConnectSync = "connect:sync"
)

// NewEmailTask queues one transactional email for background delivery.
func NewEmailTask(payload models.EmailPayload) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{asynq.MaxRetry(5), asynq.Timeout(30 * time.Second)}
	return asynq.NewTask(TypeEmailSend, b), opts, nil
}

// NewConnectSyncTask schedules a deferred payment-account status refresh,
// fired after a business owner has had time to finish onboarding.
func NewConnectSyncTask(payload models.SyncPayload, delay time.Duration) (*asynq.Task, []asynq.Option, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	opts := []asynq.Option{asynq.ProcessIn(delay), asynq.MaxRetry(3)}
	return asynq.NewTask(TypeConnectSync, b), opts, nil
}
