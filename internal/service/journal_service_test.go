package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/errs"
	"ocr-journal-backend/internal/models"
	"ocr-journal-backend/internal/zoho"
)

type fakeConnectionStore struct {
	conns map[int64]*models.Connection
}

func (f *fakeConnectionStore) GetByID(_ context.Context, id int64) (*models.Connection, error) {
	return f.conns[id], nil
}

func (f *fakeConnectionStore) UpdateTokens(_ context.Context, id int64, accessToken string, expiresAt time.Time) error {
	if conn, ok := f.conns[id]; ok {
		conn.AccessToken = &accessToken
		conn.ExpiresAt = &expiresAt
	}
	return nil
}

type fakeTransactionStore struct {
	byKey   map[string]*models.Transaction
	created []*models.Transaction
	posted  map[uuid.UUID]string
	failed  map[uuid.UUID]bool
}

func newFakeTransactionStore() *fakeTransactionStore {
	return &fakeTransactionStore{
		byKey:  map[string]*models.Transaction{},
		posted: map[uuid.UUID]string{},
		failed: map[uuid.UUID]bool{},
	}
}

func (f *fakeTransactionStore) Create(_ context.Context, tx *models.Transaction) error {
	f.created = append(f.created, tx)
	f.byKey[tx.IdempotencyKey] = tx
	return nil
}

func (f *fakeTransactionStore) GetByIdempotencyKey(_ context.Context, key string) (*models.Transaction, error) {
	return f.byKey[key], nil
}

func (f *fakeTransactionStore) MarkPosted(_ context.Context, id uuid.UUID, journalID string) error {
	f.posted[id] = journalID
	return nil
}

func (f *fakeTransactionStore) MarkFailed(_ context.Context, id uuid.UUID) error {
	f.failed[id] = true
	return nil
}

type fakeLedger struct {
	journalID    string
	postErr      error
	postCalls    int
	lastJournal  zoho.Journal
	refreshCalls int
}

func (f *fakeLedger) RefreshToken(_ context.Context, _ string) (*zoho.TokenResponse, error) {
	f.refreshCalls++
	return &zoho.TokenResponse{AccessToken: "fresh-token", ExpiresIn: 3600}, nil
}

func (f *fakeLedger) GetAccounts(_ context.Context, _, _ string) ([]zoho.Account, error) {
	return nil, nil
}

func (f *fakeLedger) PostJournal(_ context.Context, _, _ string, journal zoho.Journal) (string, error) {
	f.postCalls++
	f.lastJournal = journal
	if f.postErr != nil {
		return "", f.postErr
	}
	return f.journalID, nil
}

func activeConnection(id int64) *models.Connection {
	token := "valid-token"
	expires := time.Now().UTC().Add(time.Hour)
	return &models.Connection{
		ID:          id,
		OrgID:       "890123456",
		AccessToken: &token,
		ExpiresAt:   &expires,
		Status:      models.ConnectionStatusActive,
	}
}

func journalRequest(connID int64) JournalRequest {
	return JournalRequest{
		ConnectionID:    connID,
		Date:            "2024-03-05",
		Amount:          1250.00,
		Reference:       "FT-99A123",
		DebitAccountID:  "acc-debit",
		CreditAccountID: "acc-credit",
		BankName:        "BPI",
		AccountLast4:    "4321",
	}
}

func TestJournalPostSuccess(t *testing.T) {
	conns := &fakeConnectionStore{conns: map[int64]*models.Connection{7: activeConnection(7)}}
	txs := newFakeTransactionStore()
	ledger := &fakeLedger{journalID: "jrn-001"}
	svc := NewJournalService(conns, txs, ledger, zap.NewNop())

	res, err := svc.Post(context.Background(), journalRequest(7))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Duplicate {
		t.Error("first post must not be a duplicate")
	}
	if res.Transaction.Status != models.TransactionStatusPosted {
		t.Errorf("expected posted status, got %q", res.Transaction.Status)
	}
	if res.Transaction.BooksJournalID == nil || *res.Transaction.BooksJournalID != "jrn-001" {
		t.Errorf("journal id not recorded: %v", res.Transaction.BooksJournalID)
	}
	if res.Transaction.Currency != "PHP" {
		t.Errorf("currency must default to PHP, got %q", res.Transaction.Currency)
	}
	if ledger.postCalls != 1 {
		t.Errorf("expected one ledger post, got %d", ledger.postCalls)
	}
	if got := len(ledger.lastJournal.LineItems); got != 2 {
		t.Fatalf("journal must carry two lines, got %d", got)
	}
	credit, debit := ledger.lastJournal.LineItems[0], ledger.lastJournal.LineItems[1]
	if credit.DebitOrCredit != "credit" || debit.DebitOrCredit != "debit" {
		t.Errorf("unexpected line sides: %q, %q", credit.DebitOrCredit, debit.DebitOrCredit)
	}
	if credit.Amount != debit.Amount {
		t.Errorf("journal lines must balance: %v vs %v", credit.Amount, debit.Amount)
	}
}

func TestJournalPostDuplicate(t *testing.T) {
	conns := &fakeConnectionStore{conns: map[int64]*models.Connection{7: activeConnection(7)}}
	txs := newFakeTransactionStore()
	ledger := &fakeLedger{journalID: "jrn-001"}
	svc := NewJournalService(conns, txs, ledger, zap.NewNop())

	first, err := svc.Post(context.Background(), journalRequest(7))
	if err != nil {
		t.Fatalf("first post failed: %v", err)
	}

	second, err := svc.Post(context.Background(), journalRequest(7))
	if err != nil {
		t.Fatalf("repeated post failed: %v", err)
	}
	if !second.Duplicate {
		t.Error("repeated post must report Duplicate")
	}
	if second.Transaction.ID != first.Transaction.ID {
		t.Error("duplicate must return the original transaction")
	}
	if ledger.postCalls != 1 {
		t.Errorf("duplicate must not post again, got %d ledger calls", ledger.postCalls)
	}
}

func TestJournalPostLedgerFailure(t *testing.T) {
	conns := &fakeConnectionStore{conns: map[int64]*models.Connection{7: activeConnection(7)}}
	txs := newFakeTransactionStore()
	upstream := &errs.ExternalServiceError{Service: "zoho books", Err: errors.New("status 429: rate limited")}
	ledger := &fakeLedger{postErr: upstream}
	svc := NewJournalService(conns, txs, ledger, zap.NewNop())

	_, err := svc.Post(context.Background(), journalRequest(7))

	var extErr *errs.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got: %v", err)
	}
	if len(txs.created) != 1 {
		t.Fatalf("transaction must still be recorded, got %d", len(txs.created))
	}
	if !txs.failed[txs.created[0].ID] {
		t.Error("transaction must be marked failed after ledger error")
	}
}

func TestJournalPostUnknownConnection(t *testing.T) {
	conns := &fakeConnectionStore{conns: map[int64]*models.Connection{}}
	svc := NewJournalService(conns, newFakeTransactionStore(), &fakeLedger{}, zap.NewNop())

	_, err := svc.Post(context.Background(), journalRequest(99))

	var valErr *errs.ValidationError
	if !errors.As(err, &valErr) {
		t.Fatalf("expected ValidationError, got: %v", err)
	}
	if valErr.Field != "connection_id" {
		t.Errorf("expected connection_id field, got %q", valErr.Field)
	}
}

func TestJournalPostRefreshesExpiredToken(t *testing.T) {
	conn := activeConnection(7)
	stale := time.Now().UTC().Add(-time.Minute)
	conn.ExpiresAt = &stale
	refresh := "refresh-token"
	conn.RefreshToken = &refresh

	conns := &fakeConnectionStore{conns: map[int64]*models.Connection{7: conn}}
	ledger := &fakeLedger{journalID: "jrn-002"}
	svc := NewJournalService(conns, newFakeTransactionStore(), ledger, zap.NewNop())

	if _, err := svc.Post(context.Background(), journalRequest(7)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ledger.refreshCalls != 1 {
		t.Errorf("expired token must trigger one refresh, got %d", ledger.refreshCalls)
	}
	if conn.AccessToken == nil || *conn.AccessToken != "fresh-token" {
		t.Error("refreshed token must be persisted on the connection")
	}
}
