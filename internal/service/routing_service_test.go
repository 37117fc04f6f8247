package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ocr-journal-backend/internal/models"
)

type fakeBankRuleStore struct {
	rules      map[string]*models.BankOrgRule
	lastBank   string
	lastLast4  string
	findErr    error
	findCalled int
}

func (f *fakeBankRuleStore) FindByFingerprint(_ context.Context, bankName, accountLast4 string) (*models.BankOrgRule, error) {
	f.findCalled++
	f.lastBank = bankName
	f.lastLast4 = accountLast4
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.rules[bankName+"|"+accountLast4], nil
}

func TestRouteMatch(t *testing.T) {
	store := &fakeBankRuleStore{
		rules: map[string]*models.BankOrgRule{
			"bpi|1234": {ID: 1, BankName: "bpi", AccountLast4: "1234", ConnectionID: 7, ConfidenceFloor: 0.9},
		},
	}
	svc := NewRoutingService(store, zap.NewNop())

	dec, err := svc.Route(context.Background(), "BPI", "1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dec.NeedsChoice {
		t.Error("matched rule must not need a choice")
	}
	if dec.ConnectionID == nil || *dec.ConnectionID != 7 {
		t.Errorf("expected connection 7, got %v", dec.ConnectionID)
	}
	if dec.Confidence != 0.9 {
		t.Errorf("expected rule confidence floor 0.9, got %v", dec.Confidence)
	}
	if store.lastBank != "bpi" {
		t.Errorf("lookup must use the lowercased bank name, got %q", store.lastBank)
	}
}

func TestRouteMiss(t *testing.T) {
	store := &fakeBankRuleStore{rules: map[string]*models.BankOrgRule{}}
	svc := NewRoutingService(store, zap.NewNop())

	dec, err := svc.Route(context.Background(), "Metrobank", "9999")
	if err != nil {
		t.Fatalf("a miss is not an error, got: %v", err)
	}
	if !dec.NeedsChoice {
		t.Error("miss must set NeedsChoice")
	}
	if dec.ConnectionID != nil {
		t.Errorf("miss must not carry a connection id, got %v", *dec.ConnectionID)
	}
	if dec.Confidence != 0.5 {
		t.Errorf("miss confidence should be 0.5, got %v", dec.Confidence)
	}
}

func TestRouteStoreError(t *testing.T) {
	wantErr := errors.New("connection refused")
	store := &fakeBankRuleStore{findErr: wantErr}
	svc := NewRoutingService(store, zap.NewNop())

	_, err := svc.Route(context.Background(), "BDO", "0001")
	if !errors.Is(err, wantErr) {
		t.Errorf("store error must propagate, got: %v", err)
	}
}
