package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// OCRResult is what an engine returns for one image: the recognized text,
// a confidence in [0,1] and the language hint set used.
type OCRResult struct {
	Text       string
	Confidence float64
	Language   string
}

// OCREngine is the recognition capability behind the upload pipeline. The
// real Vision client and the stub both implement it; the choice is made
// once at process start, never per call.
type OCREngine interface {
	Recognize(ctx context.Context, imageBytes []byte) (OCRResult, error)
}

// StubEngine is the degraded engine used when no OCR capability is
// configured. It recognizes nothing, with a fixed low confidence, which
// tells callers to prompt for manual entry.
type StubEngine struct{}

func (StubEngine) Recognize(_ context.Context, _ []byte) (OCRResult, error) {
	return OCRResult{Text: "", Confidence: 0.10, Language: "none"}, nil
}

type OCRService struct {
	engine  OCREngine
	timeout time.Duration
	logger  *zap.Logger
}

func NewOCRService(engine OCREngine, timeout time.Duration, logger *zap.Logger) *OCRService {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OCRService{
		engine:  engine,
		timeout: timeout,
		logger:  logger,
	}
}

// Recognize runs the configured engine with a bounded per-call timeout.
// Engine failures propagate unchanged so the caller sees the upstream
// reason verbatim.
func (s *OCRService) Recognize(ctx context.Context, imageBytes []byte) (OCRResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.engine.Recognize(ctx, imageBytes)
	if err != nil {
		s.logger.Error("OCR recognition failed", zap.Error(err))
		return OCRResult{}, err
	}

	s.logger.Info("OCR recognition completed",
		zap.Float64("confidence", res.Confidence),
		zap.Int("text_length", len(res.Text)),
	)
	return res, nil
}
