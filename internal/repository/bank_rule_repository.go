package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/models"
)

type BankRuleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBankRuleRepository(db *pgxpool.Pool, logger *zap.Logger) *BankRuleRepository {
	return &BankRuleRepository{
		db:     db,
		logger: logger,
	}
}

// Create stores a bank fingerprint rule. The bank name is lowercased on
// write so fingerprint lookups stay case-insensitive.
func (r *BankRuleRepository) Create(ctx context.Context, rule *models.BankOrgRule) error {
	rule.BankName = strings.ToLower(rule.BankName)
	if rule.ConfidenceFloor == 0 {
		rule.ConfidenceFloor = 0.85
	}
	rule.CreatedAt = time.Now().UTC()

	query := squirrel.Insert("bank_org_rules").
		Columns("bank_name", "account_last4", "alt_fingerprint", "connection_id", "confidence_floor", "created_at").
		Values(rule.BankName, rule.AccountLast4, rule.AltFingerprint, rule.ConnectionID, rule.ConfidenceFloor, rule.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&rule.ID)
}

// FindByFingerprint looks up at most one rule by the exact
// (lowercased bank name, account last-4) pair. A miss returns (nil, nil).
func (r *BankRuleRepository) FindByFingerprint(ctx context.Context, bankName, accountLast4 string) (*models.BankOrgRule, error) {
	query := squirrel.Select("id", "bank_name", "account_last4", "alt_fingerprint", "connection_id", "confidence_floor", "created_at").
		From("bank_org_rules").
		Where(squirrel.Eq{"bank_name": strings.ToLower(bankName), "account_last4": accountLast4}).
		OrderBy("created_at ASC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var rule models.BankOrgRule
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&rule.ID, &rule.BankName, &rule.AccountLast4, &rule.AltFingerprint,
		&rule.ConnectionID, &rule.ConfidenceFloor, &rule.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
