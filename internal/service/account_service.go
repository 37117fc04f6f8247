package service

import (
	"context"

	"go.uber.org/zap"

	"ocr-journal-backend/internal/errs"
	"ocr-journal-backend/internal/models"
)

type AccountService struct {
	connections ConnectionStore
	accounts    AccountStore
	ledger      LedgerClient
	logger      *zap.Logger
}

func NewAccountService(connections ConnectionStore, accounts AccountStore, ledger LedgerClient, logger *zap.Logger) *AccountService {
	return &AccountService{
		connections: connections,
		accounts:    accounts,
		ledger:      ledger,
		logger:      logger,
	}
}

// List fetches the chart of accounts for a connection from Books and
// refreshes the local cache with the result.
func (s *AccountService) List(ctx context.Context, connectionID int64) ([]*models.CachedAccount, error) {
	conn, err := s.connections.GetByID(ctx, connectionID)
	if err != nil {
		return nil, err
	}
	if conn == nil || conn.OrgID == "" {
		return nil, &errs.ValidationError{Field: "connection_id", Reason: "unknown connection or no organization selected"}
	}

	accessToken, err := ensureFreshToken(ctx, conn, s.connections, s.ledger)
	if err != nil {
		return nil, err
	}

	remote, err := s.ledger.GetAccounts(ctx, conn.OrgID, accessToken)
	if err != nil {
		return nil, err
	}

	accounts := make([]*models.CachedAccount, 0, len(remote))
	for _, a := range remote {
		account := &models.CachedAccount{
			ConnectionID: connectionID,
			AccountID:    a.AccountID,
			Name:         a.AccountName,
		}
		if a.AccountCode != "" {
			code := a.AccountCode
			account.Code = &code
		}
		if a.AccountType != "" {
			typ := a.AccountType
			account.Type = &typ
		}
		accounts = append(accounts, account)
	}

	if err := s.accounts.ReplaceForConnection(ctx, connectionID, accounts); err != nil {
		s.logger.Warn("failed to refresh account cache",
			zap.Int64("connection_id", connectionID),
			zap.Error(err),
		)
	}

	return accounts, nil
}
