package models

import (
	"time"

	"github.com/google/uuid"
)

type TransactionStatus string

const (
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusPosted  TransactionStatus = "posted"
	TransactionStatusFailed  TransactionStatus = "failed"
)

// Transaction is derived from an Upload once routed. IdempotencyKey is
// unique per logical transaction so re-processing the same screenshot
// never double-posts to the ledger.
type Transaction struct {
	ID             uuid.UUID         `db:"id"`
	UploadID       *uuid.UUID        `db:"upload_id"`
	ConnectionID   *int64            `db:"connection_id"`
	Date           string            `db:"date"`
	Amount         float64           `db:"amount"`
	Currency       string            `db:"currency"`
	Reference      string            `db:"reference"`
	Payer          string            `db:"payer"`
	Payee          string            `db:"payee"`
	Status         TransactionStatus `db:"status"`
	IdempotencyKey string            `db:"idempotency_key"`
	BooksJournalID *string           `db:"books_journal_id"`
	Notes          string            `db:"notes"`
	CreatedAt      time.Time         `db:"created_at"`
	UpdatedAt      time.Time         `db:"updated_at"`
}
