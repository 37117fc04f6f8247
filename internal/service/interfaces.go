package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"ocr-journal-backend/internal/models"
	"ocr-journal-backend/internal/zoho"
)

// Repository interfaces the services depend on. The pgx-backed
// repositories satisfy them; tests substitute in-memory fakes.

type BankRuleStore interface {
	FindByFingerprint(ctx context.Context, bankName, accountLast4 string) (*models.BankOrgRule, error)
}

type UploadStore interface {
	Create(ctx context.Context, upload *models.Upload) error
}

type TransactionStore interface {
	Create(ctx context.Context, tx *models.Transaction) error
	GetByIdempotencyKey(ctx context.Context, key string) (*models.Transaction, error)
	MarkPosted(ctx context.Context, id uuid.UUID, journalID string) error
	MarkFailed(ctx context.Context, id uuid.UUID) error
}

type ConnectionStore interface {
	GetByID(ctx context.Context, id int64) (*models.Connection, error)
	UpdateTokens(ctx context.Context, id int64, accessToken string, expiresAt time.Time) error
}

type AccountStore interface {
	ReplaceForConnection(ctx context.Context, connectionID int64, accounts []*models.CachedAccount) error
}

// LedgerClient is the slice of the Zoho client the services call.
type LedgerClient interface {
	RefreshToken(ctx context.Context, refreshToken string) (*zoho.TokenResponse, error)
	GetAccounts(ctx context.Context, orgID, accessToken string) ([]zoho.Account, error)
	PostJournal(ctx context.Context, orgID, accessToken string, journal zoho.Journal) (string, error)
}
