package gateway

import "gorm.io/gorm"

// PersistenceError is any backend-reported failure from a gateway call.
// Constraint violations, connectivity and auth failures are not
// distinguished; the backend message is carried as-is.
type PersistenceError struct {
	Op      string
	Message string
}

func (e *PersistenceError) Error() string {
	return e.Op + ": " + e.Message
}

func persistenceErr(op string, err error) error {
	return &PersistenceError{Op: op, Message: err.Error()}
}

// Gateway is a thin typed wrapper over the "groups" and "expenses"
// collections in the remote relational store. Calls are fire-and-forget
// from the caller's perspective: no retries, no idempotency keys.
type Gateway struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Gateway {
	return &Gateway{db: db}
}
