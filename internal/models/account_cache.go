package models

import "time"

// CachedAccount is a chart-of-accounts entry fetched from Zoho Books and
// cached per connection to avoid refetching on every lookup.
type CachedAccount struct {
	ID           int64     `db:"id"`
	ConnectionID int64     `db:"connection_id"`
	AccountID    string    `db:"account_id"`
	Name         string    `db:"name"`
	Code         *string   `db:"code"`
	Type         *string   `db:"type"`
	UpdatedAt    time.Time `db:"updated_at"`
}
