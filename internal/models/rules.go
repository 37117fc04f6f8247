package models

import "time"

// BankOrgRule maps a bank fingerprint (bank name + account last-4) to the
// connection that owns transactions from that account. BankName is stored
// lowercased so lookups are case-insensitive. Rules are created by an
// operator and never auto-deleted.
type BankOrgRule struct {
	ID              int64     `db:"id"`
	BankName        string    `db:"bank_name"`
	AccountLast4    string    `db:"account_last4"`
	AltFingerprint  *string   `db:"alt_fingerprint"`
	ConnectionID    int64     `db:"connection_id"`
	ConfidenceFloor float64   `db:"confidence_floor"`
	CreatedAt       time.Time `db:"created_at"`
}

// MappingRule maps a free-text pattern to a debit/credit account pair
// within one connection.
type MappingRule struct {
	ID              int64     `db:"id"`
	Pattern         string    `db:"pattern"`
	DebitAccountID  string    `db:"debit_account_id"`
	CreditAccountID string    `db:"credit_account_id"`
	TaxCode         *string   `db:"tax_code"`
	ConnectionID    int64     `db:"connection_id"`
	ConfidenceFloor float64   `db:"confidence_floor"`
	UpdatedAt       time.Time `db:"updated_at"`
}
