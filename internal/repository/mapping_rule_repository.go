package repository

import (
	"context"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/models"
)

type MappingRuleRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewMappingRuleRepository(db *pgxpool.Pool, logger *zap.Logger) *MappingRuleRepository {
	return &MappingRuleRepository{
		db:     db,
		logger: logger,
	}
}

func (r *MappingRuleRepository) Create(ctx context.Context, rule *models.MappingRule) error {
	rule.Pattern = strings.ToLower(rule.Pattern)
	if rule.ConfidenceFloor == 0 {
		rule.ConfidenceFloor = 0.85
	}
	rule.UpdatedAt = time.Now().UTC()

	query := squirrel.Insert("mapping_rules").
		Columns("pattern", "debit_account_id", "credit_account_id", "tax_code", "connection_id", "confidence_floor", "updated_at").
		Values(rule.Pattern, rule.DebitAccountID, rule.CreditAccountID, rule.TaxCode, rule.ConnectionID, rule.ConfidenceFloor, rule.UpdatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&rule.ID)
}

func (r *MappingRuleRepository) ListByConnection(ctx context.Context, connectionID int64) ([]*models.MappingRule, error) {
	query := squirrel.Select("id", "pattern", "debit_account_id", "credit_account_id", "tax_code", "connection_id", "confidence_floor", "updated_at").
		From("mapping_rules").
		Where(squirrel.Eq{"connection_id": connectionID}).
		OrderBy("updated_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []*models.MappingRule
	for rows.Next() {
		var rule models.MappingRule
		if err := rows.Scan(
			&rule.ID, &rule.Pattern, &rule.DebitAccountID, &rule.CreditAccountID,
			&rule.TaxCode, &rule.ConnectionID, &rule.ConfidenceFloor, &rule.UpdatedAt,
		); err != nil {
			return nil, err
		}
		rules = append(rules, &rule)
	}

	return rules, rows.Err()
}
