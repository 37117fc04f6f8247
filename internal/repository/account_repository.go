package repository

import (
	"context"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/models"
)

type AccountRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewAccountRepository(db *pgxpool.Pool, logger *zap.Logger) *AccountRepository {
	return &AccountRepository{
		db:     db,
		logger: logger,
	}
}

// ReplaceForConnection swaps the cached chart of accounts for one
// connection with a freshly fetched set.
func (r *AccountRepository) ReplaceForConnection(ctx context.Context, connectionID int64, accounts []*models.CachedAccount) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	delQuery := squirrel.Delete("account_cache").
		Where(squirrel.Eq{"connection_id": connectionID}).
		PlaceholderFormat(squirrel.Dollar)
	sql, args, err := delQuery.ToSql()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return err
	}

	if len(accounts) > 0 {
		now := time.Now().UTC()
		builder := squirrel.Insert("account_cache").
			Columns("connection_id", "account_id", "name", "code", "type", "updated_at").
			PlaceholderFormat(squirrel.Dollar)
		for _, a := range accounts {
			builder = builder.Values(connectionID, a.AccountID, a.Name, a.Code, a.Type, now)
		}
		sql, args, err = builder.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *AccountRepository) ListByConnection(ctx context.Context, connectionID int64) ([]*models.CachedAccount, error) {
	query := squirrel.Select("id", "connection_id", "account_id", "name", "code", "type", "updated_at").
		From("account_cache").
		Where(squirrel.Eq{"connection_id": connectionID}).
		OrderBy("name ASC").
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

	var accounts []*models.CachedAccount
	for rows.Next() {
		var a models.CachedAccount
		if err := rows.Scan(&a.ID, &a.ConnectionID, &a.AccountID, &a.Name, &a.Code, &a.Type, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, &a)
	}

	return accounts, rows.Err()
}
