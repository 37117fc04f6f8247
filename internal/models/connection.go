package models

import "time"

type ConnectionStatus string

const (
	ConnectionStatusActive  ConnectionStatus = "active"
	ConnectionStatusRevoked ConnectionStatus = "revoked"
)

// Connection is one authenticated link to a Zoho Books organization, the
// unit of multi-company isolation.
type Connection struct {
	ID           int64            `db:"id"`
	OrgID        string           `db:"org_id"`
	OrgName      *string          `db:"org_name"`
	ZohoUserID   *string          `db:"zoho_user_id"`
	AccessToken  *string          `db:"access_token"`
	RefreshToken *string          `db:"refresh_token"`
	ExpiresAt    *time.Time       `db:"expires_at"`
	Status       ConnectionStatus `db:"status"`
	CreatedAt    time.Time        `db:"created_at"`
}
