package handlers

import (
	businessRepo "trylocal/database/repository/business"
)

// HandlerBundle aggregates the handlers and shared dependencies that the
// route registrations need.
type HandlerBundle struct {
	BusinessRepo    businessRepo.BusinessRepository
	BusinessHandler *BusinessHandler
	SlotsHandler    *SlotsHandler
	PaymentsHandler *PaymentsHandler
	StorageHandler  *StorageHandler
}
