package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/dto"
	"ocr-journal-backend/pkg/config"
)

func diagResponse(t *testing.T, visionCfg config.VisionConfig) dto.OCRDiagResponse {
	t.Helper()

	handler := NewOCRHandler(nil, nil, visionCfg, zap.NewNop())
	app := fiber.New()
	app.Get("/ocr/_diag", handler.Diag)

	resp, err := app.Test(httptest.NewRequest("GET", "/ocr/_diag", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var out dto.OCRDiagResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return out
}

func TestDiagCredentialsFileExists(t *testing.T) {
	credsFile := filepath.Join(t.TempDir(), "sa.json")
	if err := os.WriteFile(credsFile, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write credentials file: %v", err)
	}

	out := diagResponse(t, config.VisionConfig{Enabled: true, CredentialsFile: credsFile})
	if !out.UseGCVision {
		t.Error("use_gcvision must reflect the config")
	}
	if !out.CredentialsSet {
		t.Error("an existing credentials file must report credentials_set")
	}
	if out.CredentialsPath != credsFile {
		t.Errorf("unexpected credentials path: %q", out.CredentialsPath)
	}
}

func TestDiagCredentialsFileMissing(t *testing.T) {
	out := diagResponse(t, config.VisionConfig{
		Enabled:         true,
		CredentialsFile: filepath.Join(t.TempDir(), "nope.json"),
	})
	if out.CredentialsSet {
		t.Error("a configured but absent credentials file must not report credentials_set")
	}
}

func TestDiagCredentialsUnconfigured(t *testing.T) {
	out := diagResponse(t, config.VisionConfig{})
	if out.UseGCVision || out.CredentialsSet {
		t.Errorf("empty config must report everything off, got %+v", out)
	}
}
