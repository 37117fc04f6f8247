package vision

import (
	"errors"
	"math"
	"testing"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	statuspb "google.golang.org/genproto/googleapis/rpc/status"

	"ocr-journal-backend/internal/errs"
)

func TestAnnotationResultText(t *testing.T) {
	resp := &visionpb.AnnotateImageResponse{
		FullTextAnnotation: &visionpb.TextAnnotation{
			Text: "BPI Savings\nTotal PHP 1,250.00",
			Pages: []*visionpb.Page{{
				Blocks: []*visionpb.Block{
					{Confidence: 0.80},
					{Confidence: 1.00},
				},
			}},
		},
	}

	res, err := annotationResult(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "BPI Savings\nTotal PHP 1,250.00" {
		t.Errorf("unexpected text: %q", res.Text)
	}
	if math.Abs(res.Confidence-0.90) > 1e-9 {
		t.Errorf("confidence must be the block mean 0.90, got %v", res.Confidence)
	}
	if res.Language != "en,fil,tl" {
		t.Errorf("unexpected language hints: %q", res.Language)
	}
}

func TestAnnotationResultNoBlocks(t *testing.T) {
	resp := &visionpb.AnnotateImageResponse{
		FullTextAnnotation: &visionpb.TextAnnotation{Text: "hello"},
	}

	res, err := annotationResult(resp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Confidence != 0.90 {
		t.Errorf("missing block confidences must default to 0.90, got %v", res.Confidence)
	}
}

func TestAnnotationResultNoAnnotation(t *testing.T) {
	res, err := annotationResult(&visionpb.AnnotateImageResponse{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "" || res.Confidence != 0.90 {
		t.Errorf("empty annotation must yield no text at default confidence, got %+v", res)
	}
}

func TestAnnotationResultErrorStatus(t *testing.T) {
	resp := &visionpb.AnnotateImageResponse{
		Error: &statuspb.Status{Code: 7, Message: "permission denied for project"},
	}

	_, err := annotationResult(resp)

	var extErr *errs.ExternalServiceError
	if !errors.As(err, &extErr) {
		t.Fatalf("expected ExternalServiceError, got: %v", err)
	}
	if extErr.Service != "vision" {
		t.Errorf("expected service %q, got %q", "vision", extErr.Service)
	}
	if extErr.Err.Error() != "permission denied for project" {
		t.Errorf("upstream message must be preserved verbatim, got %q", extErr.Err.Error())
	}
}
