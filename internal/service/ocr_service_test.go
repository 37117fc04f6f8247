package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"ocr-journal-backend/internal/errs"
)

type fixedEngine struct {
	res OCRResult
	err error
}

func (e fixedEngine) Recognize(_ context.Context, _ []byte) (OCRResult, error) {
	return e.res, e.err
}

func TestStubEngine(t *testing.T) {
	res, err := StubEngine{}.Recognize(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("stub engine never fails, got: %v", err)
	}
	if res.Text != "" {
		t.Errorf("stub must recognize no text, got %q", res.Text)
	}
	if res.Confidence != 0.10 {
		t.Errorf("stub confidence must be 0.10, got %v", res.Confidence)
	}
	if res.Language != "none" {
		t.Errorf("stub language must be %q, got %q", "none", res.Language)
	}
}

func TestOCRServicePassthrough(t *testing.T) {
	engine := fixedEngine{res: OCRResult{Text: "BPI 1,250.00", Confidence: 0.93, Language: "en"}}
	svc := NewOCRService(engine, time.Second, zap.NewNop())

	res, err := svc.Recognize(context.Background(), []byte{0x01})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res != engine.res {
		t.Errorf("engine result must pass through unchanged, got %+v", res)
	}
}

func TestOCRServiceEngineError(t *testing.T) {
	upstream := &errs.ExternalServiceError{Service: "vision", Err: errors.New("quota exceeded")}
	svc := NewOCRService(fixedEngine{err: upstream}, time.Second, zap.NewNop())

	_, err := svc.Recognize(context.Background(), []byte{0x01})

	var extErr *errs.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got: %v", err)
	}
	if extErr.Service != "vision" {
		t.Errorf("expected service %q, got %q", "vision", extErr.Service)
	}
}

func TestOCRServiceDefaultTimeout(t *testing.T) {
	svc := NewOCRService(StubEngine{}, 0, zap.NewNop())
	if svc.timeout != 30*time.Second {
		t.Errorf("zero timeout must default to 30s, got %v", svc.timeout)
	}
}
