package handlers

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/dto"
	"ocr-journal-backend/internal/service"
	"ocr-journal-backend/pkg/config"
)

type OCRHandler struct {
	uploadService  *service.UploadService
	routingService *service.RoutingService
	visionCfg      config.VisionConfig
	logger         *zap.Logger
}

func NewOCRHandler(uploadService *service.UploadService, routingService *service.RoutingService, visionCfg config.VisionConfig, logger *zap.Logger) *OCRHandler {
	return &OCRHandler{
		uploadService:  uploadService,
		routingService: routingService,
		visionCfg:      visionCfg,
		logger:         logger,
	}
}

// Upload godoc
// @Summary Upload a bank transaction screenshot
// @Description Runs OCR over the image and returns best-guess structured fields
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Screenshot image"
// @Security Bearer
// @Success 200 {object} dto.ExtractionResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/ocr/upload [post]
func (h *OCRHandler) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "File is required",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to open file",
		})
	}
	defer src.Close()

	result, err := h.uploadService.Process(c.Context(), file.Filename, file.Header.Get("Content-Type"), src)
	if err != nil {
		h.logger.Error("upload processing failed", zap.Error(err))
		return respondError(c, err)
	}

	resp := dto.ExtractionResponse{
		UploadID:   result.UploadID.String(),
		Text:       result.Text,
		Confidence: result.Confidence,
		Filename:   result.Filename,
		Bytes:      result.Bytes,
	}
	if result.BankName != "" {
		resp.BankName = &result.BankName
	}
	if result.AccountLast4 != "" {
		resp.AccountLast4 = &result.AccountLast4
	}
	if result.HasAmountGuess {
		resp.AmountGuess = &result.AmountGuess
	}
	if result.ReferenceGuess != "" {
		resp.ReferenceGuess = &result.ReferenceGuess
	}
	if result.DateGuess != "" {
		resp.DateGuess = &result.DateGuess
	}

	return c.JSON(resp)
}

// Route godoc
// @Summary Route a bank fingerprint to its owning connection
// @Tags ocr
// @Accept json
// @Produce json
// @Param request body dto.RouteRequest true "Bank fingerprint"
// @Security Bearer
// @Success 200 {object} dto.RouteResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/ocr/route [post]
func (h *OCRHandler) Route(c *fiber.Ctx) error {
	var req dto.RouteRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	decision, err := h.routingService.Route(c.Context(), req.BankName, req.AccountLast4)
	if err != nil {
		h.logger.Error("routing lookup failed", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(dto.RouteResponse{
		ConnectionID: decision.ConnectionID,
		Confidence:   decision.Confidence,
		NeedsChoice:  decision.NeedsChoice,
	})
}

// Diag godoc
// @Summary OCR engine diagnostics
// @Tags ocr
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.OCRDiagResponse
// @Router /api/v1/ocr/_diag [get]
func (h *OCRHandler) Diag(c *fiber.Ctx) error {
	return c.JSON(dto.OCRDiagResponse{
		UseGCVision:     h.visionCfg.Enabled,
		CredentialsPath: h.visionCfg.CredentialsFile,
		CredentialsSet:  credentialsPresent(h.visionCfg.CredentialsFile),
	})
}

// credentialsPresent reports whether the configured credentials file
// actually exists on disk, not merely that a path was configured.
func credentialsPresent(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}
