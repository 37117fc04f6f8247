package service

import (
	"context"
	"time"

	"ocr-journal-backend/internal/errs"
	"ocr-journal-backend/internal/models"
)

// ensureFreshToken returns a usable access token for the connection,
// refreshing via the ledger and persisting the new token when expired or
// within the refresh margin.
func ensureFreshToken(ctx context.Context, conn *models.Connection, connections ConnectionStore, ledger LedgerClient) (string, error) {
	if conn.AccessToken != nil && conn.ExpiresAt != nil && time.Until(*conn.ExpiresAt) > tokenRefreshMargin {
		return *conn.AccessToken, nil
	}
	if conn.RefreshToken == nil {
		return "", &errs.ValidationError{Field: "connection_id", Reason: "connection has no refresh token"}
	}

	tok, err := ledger.RefreshToken(ctx, *conn.RefreshToken)
	if err != nil {
		return "", err
	}

	expiresAt := time.Now().UTC().Add(time.Duration(tok.ExpiresIn) * time.Second)
	if err := connections.UpdateTokens(ctx, conn.ID, tok.AccessToken, expiresAt); err != nil {
		return "", err
	}
	conn.AccessToken = &tok.AccessToken
	conn.ExpiresAt = &expiresAt

	return tok.AccessToken, nil
}
