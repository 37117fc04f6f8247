package repository

import (
	"context"
	"errors"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/models"
)

type UploadRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUploadRepository(db *pgxpool.Pool, logger *zap.Logger) *UploadRepository {
	return &UploadRepository{
		db:     db,
		logger: logger,
	}
}

func (r *UploadRepository) Create(ctx context.Context, upload *models.Upload) error {
	query := squirrel.Insert("uploads").
		Columns("id", "filename", "content_type", "sha256", "bank_guess", "ocr_text", "ocr_conf", "created_at").
		Values(upload.ID, upload.Filename, upload.ContentType, upload.SHA256, upload.BankGuess, upload.OCRText, upload.OCRConf, upload.CreatedAt).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.Exec(ctx, sql, args...)
	return err
}

func (r *UploadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Upload, error) {
	query := squirrel.Select("id", "filename", "content_type", "sha256", "bank_guess", "ocr_text", "ocr_conf", "created_at").
		From("uploads").
		Where(squirrel.Eq{"id": id}).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var upload models.Upload
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&upload.ID, &upload.Filename, &upload.ContentType, &upload.SHA256,
		&upload.BankGuess, &upload.OCRText, &upload.OCRConf, &upload.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &upload, nil
}
