package repository

import (
	"context"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/models"
)

var connectionColumns = []string{"id", "org_id", "org_name", "zoho_user_id", "access_token", "refresh_token", "expires_at", "status", "created_at"}

type ConnectionRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewConnectionRepository(db *pgxpool.Pool, logger *zap.Logger) *ConnectionRepository {
	return &ConnectionRepository{
		db:     db,
		logger: logger,
	}
}

func (r *ConnectionRepository) Create(ctx context.Context, conn *models.Connection) error {
	if conn.Status == "" {
		conn.Status = models.ConnectionStatusActive
	}
	conn.CreatedAt = time.Now().UTC()

	query := squirrel.Insert("connections").
		Columns("org_id", "org_name", "zoho_user_id", "access_token", "refresh_token", "expires_at", "status", "created_at").
		Values(conn.OrgID, conn.OrgName, conn.ZohoUserID, conn.AccessToken, conn.RefreshToken, conn.ExpiresAt, conn.Status, conn.CreatedAt).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	return r.db.QueryRow(ctx, sql, args...).Scan(&conn.ID)
}

func (r *ConnectionRepository) GetByID(ctx context.Context, id int64) (*models.Connection, error) {
	query := squirrel.Select(connectionColumns...).
		From("connections").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var conn models.Connection
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&conn.ID, &conn.OrgID, &conn.OrgName, &conn.ZohoUserID,
		&conn.AccessToken, &conn.RefreshToken, &conn.ExpiresAt, &conn.Status, &conn.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &conn, nil
}

func (r *ConnectionRepository) List(ctx context.Context) ([]*models.Connection, error) {
	query := squirrel.Select(connectionColumns...).
		From("connections").
		OrderBy("created_at ASC").
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

	var conns []*models.Connection
	for rows.Next() {
		var conn models.Connection
		if err := rows.Scan(
			&conn.ID, &conn.OrgID, &conn.OrgName, &conn.ZohoUserID,
			&conn.AccessToken, &conn.RefreshToken, &conn.ExpiresAt, &conn.Status, &conn.CreatedAt,
		); err != nil {
			return nil, err
		}
		conns = append(conns, &conn)
	}

	return conns, rows.Err()
}

// SetOrg binds a connection to the Zoho organization the operator picked.
func (r *ConnectionRepository) SetOrg(ctx context.Context, id int64, orgID string, orgName *string) error {
	query := squirrel.Update("connections").
		Set("org_id", orgID).
		Set("org_name", orgName).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	tag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ConnectionRepository) UpdateTokens(ctx context.Context, id int64, accessToken string, expiresAt time.Time) error {
	query := squirrel.Update("connections").
		Set("access_token", accessToken).
		Set("expires_at", expiresAt).
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}
