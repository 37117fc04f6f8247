package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/errs"
	"ocr-journal-backend/internal/models"
	"ocr-journal-backend/internal/zoho"
	"ocr-journal-backend/pkg/idempotency"
)

// Access tokens are refreshed when within this margin of expiry.
const tokenRefreshMargin = 2 * time.Minute

// JournalRequest carries everything needed to post one balanced two-line
// journal entry for a routed transaction. BankName and AccountLast4 feed
// the idempotency key alongside date, amount and reference.
type JournalRequest struct {
	ConnectionID    int64
	UploadID        *uuid.UUID
	Date            string
	Amount          float64
	Currency        string
	Reference       string
	Notes           string
	DebitAccountID  string
	CreditAccountID string
	BankName        string
	AccountLast4    string
}

// JournalResult reports the recorded transaction. Duplicate is set when
// the idempotency key matched an existing transaction and no second post
// was made.
type JournalResult struct {
	Transaction *models.Transaction
	Duplicate   bool
}

type JournalService struct {
	connections  ConnectionStore
	transactions TransactionStore
	ledger       LedgerClient
	logger       *zap.Logger
}

func NewJournalService(connections ConnectionStore, transactions TransactionStore, ledger LedgerClient, logger *zap.Logger) *JournalService {
	return &JournalService{
		connections:  connections,
		transactions: transactions,
		ledger:       ledger,
		logger:       logger,
	}
}

// Post records a transaction and posts it to the ledger. The idempotency
// key over (bank, date, amount, reference, last4) is the dedup boundary:
// a repeated screenshot returns the transaction already recorded instead
// of double-posting. Ledger failures leave the transaction in the failed
// state and surface the upstream reason.
func (s *JournalService) Post(ctx context.Context, req JournalRequest) (*JournalResult, error) {
	conn, err := s.connections.GetByID(ctx, req.ConnectionID)
	if err != nil {
		return nil, err
	}
	if conn == nil || conn.OrgID == "" {
		return nil, &errs.ValidationError{Field: "connection_id", Reason: "unknown connection or no organization selected"}
	}

	key := idempotency.Key(req.BankName, req.Date, req.Amount, req.Reference, req.AccountLast4)

	if existing, err := s.transactions.GetByIdempotencyKey(ctx, key); err != nil {
		return nil, err
	} else if existing != nil {
		s.logger.Info("duplicate transaction detected",
			zap.String("idempotency_key", key),
			zap.String("transaction_id", existing.ID.String()),
		)
		return &JournalResult{Transaction: existing, Duplicate: true}, nil
	}

	currency := req.Currency
	if currency == "" {
		currency = "PHP"
	}

	now := time.Now().UTC()
	connectionID := req.ConnectionID
	tx := &models.Transaction{
		ID:             uuid.New(),
		UploadID:       req.UploadID,
		ConnectionID:   &connectionID,
		Date:           req.Date,
		Amount:         req.Amount,
		Currency:       currency,
		Reference:      req.Reference,
		Status:         models.TransactionStatusPending,
		IdempotencyKey: key,
		Notes:          req.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("record transaction: %w", err)
	}

	accessToken, err := ensureFreshToken(ctx, conn, s.connections, s.ledger)
	if err != nil {
		s.failTransaction(ctx, tx)
		return nil, err
	}

	journal := zoho.Journal{
		Date:            req.Date,
		ReferenceNumber: req.Reference,
		Notes:           req.Notes,
		LineItems: []zoho.JournalLine{
			{AccountID: req.CreditAccountID, DebitOrCredit: "credit", Amount: req.Amount},
			{AccountID: req.DebitAccountID, DebitOrCredit: "debit", Amount: req.Amount},
		},
	}

	journalID, err := s.ledger.PostJournal(ctx, conn.OrgID, accessToken, journal)
	if err != nil {
		s.failTransaction(ctx, tx)
		return nil, err
	}

	if err := s.transactions.MarkPosted(ctx, tx.ID, journalID); err != nil {
		return nil, err
	}
	tx.Status = models.TransactionStatusPosted
	tx.BooksJournalID = &journalID

	return &JournalResult{Transaction: tx, Duplicate: false}, nil
}

func (s *JournalService) failTransaction(ctx context.Context, tx *models.Transaction) {
	if err := s.transactions.MarkFailed(ctx, tx.ID); err != nil {
		s.logger.Error("failed to mark transaction failed",
			zap.String("transaction_id", tx.ID.String()),
			zap.Error(err),
		)
	}
	tx.Status = models.TransactionStatusFailed
}
