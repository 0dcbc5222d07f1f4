package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"trylocal/config"
	"trylocal/models"
	"trylocal/services/notification"
	"trylocal/services/payments"
	"trylocal/services/tasks"

	"github.com/hibiken/asynq"
)

// InitWorker runs the async worker in background. It delivers queued
// transactional emails and performs deferred payment-account re-syncs.
func InitWorker(mailer *notification.SMTPEmailService, connectSvc payments.ConnectService) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPass,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeEmailSend, handleEmailTask(mailer))
	mux.HandleFunc(tasks.TypeConnectSync, handleConnectSyncTask(connectSvc))

	// Start async worker with retry logic.
	go func() {
		log.Println("[Worker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[Worker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[Worker] max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

func handleEmailTask(mailer *notification.SMTPEmailService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.EmailPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[EmailHandler] invalid payload: %v", err)
			return err
		}

		if err := mailer.Send(ctx, p.To, p.Subject, p.Body); err != nil {
			log.Printf("[EmailHandler] failed to deliver email to %s: %v", p.To, err)
			return err
		}
		return nil
	}
}

func handleConnectSyncTask(connectSvc payments.ConnectService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.SyncPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ConnectSyncHandler] invalid payload: %v", err)
			return err
		}

		if _, err := connectSvc.SyncAccountStatus(ctx, p.AccountID, p.BusinessID); err != nil {
			log.Printf("[ConnectSyncHandler] sync failed for account %s: %v", p.AccountID, err)
			return err
		}
		return nil
	}
}
