package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/models"
)

var transactionColumns = []string{
	"id", "upload_id", "connection_id", "date", "amount", "currency", "reference",
	"payer", "payee", "status", "idempotency_key", "books_journal_id", "notes",
	"created_at", "updated_at",
}

type TransactionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTransactionRepository(db *pgxpool.Pool, logger *zap.Logger) *TransactionRepository {
	return &TransactionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *TransactionRepository) Create(ctx context.Context, tx *models.Transaction) error {
	query := squirrel.Insert("transactions").
		Columns(transactionColumns...).
		Values(tx.ID, tx.UploadID, tx.ConnectionID, tx.Date, tx.Amount, tx.Currency, tx.Reference,
			tx.Payer, tx.Payee, tx.Status, tx.IdempotencyKey, tx.BooksJournalID, tx.Notes,
			tx.CreatedAt, tx.UpdatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

// GetByIdempotencyKey returns the transaction already recorded for a key,
// or (nil, nil). This is the dedup boundary for repeated screenshots.
func (r *TransactionRepository) GetByIdempotencyKey(ctx context.Context, key string) (*models.Transaction, error) {
	query := squirrel.Select(transactionColumns...).
		From("transactions").
		Where(squirrel.Eq{"idempotency_key": key}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var tx models.Transaction
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&tx.ID, &tx.UploadID, &tx.ConnectionID, &tx.Date, &tx.Amount, &tx.Currency, &tx.Reference,
		&tx.Payer, &tx.Payee, &tx.Status, &tx.IdempotencyKey, &tx.BooksJournalID, &tx.Notes,
		&tx.CreatedAt, &tx.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// MarkPosted records a successful ledger post with the resulting journal id.
func (r *TransactionRepository) MarkPosted(ctx context.Context, id uuid.UUID, journalID string) error {
	return r.setStatus(ctx, id, models.TransactionStatusPosted, &journalID)
}

func (r *TransactionRepository) MarkFailed(ctx context.Context, id uuid.UUID) error {
	return r.setStatus(ctx, id, models.TransactionStatusFailed, nil)
}

func (r *TransactionRepository) setStatus(ctx context.Context, id uuid.UUID, status models.TransactionStatus, journalID *string) error {
	builder := squirrel.Update("transactions").
		Set("status", status).
		Set("updated_at", time.Now().UTC()).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)
	if journalID != nil {
		builder = builder.Set("books_journal_id", *journalID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
