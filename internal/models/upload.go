package models

import (
	"time"

	"github.com/google/uuid"
)

// Upload is one submitted screenshot. Rows are immutable once the OCR pass
// has filled the guess fields; an upload is owned by no tenant until routed.
type Upload struct {
	ID          uuid.UUID `db:"id"`
	Filename    string    `db:"filename"`
	ContentType string    `db:"content_type"`
	SHA256      string    `db:"sha256"`
	BankGuess   *string   `db:"bank_guess"`
	OCRText     string    `db:"ocr_text"`
	OCRConf     float64   `db:"ocr_conf"`
	CreatedAt   time.Time `db:"created_at"`
}
