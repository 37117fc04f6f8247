package handlers

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/dto"
	"ocr-journal-backend/internal/models"
	"ocr-journal-backend/internal/repository"
	"ocr-journal-backend/internal/zoho"
)

type OAuthHandler struct {
	zohoClient  *zoho.Client
	connections *repository.ConnectionRepository
	logger      *zap.Logger
}

func NewOAuthHandler(zohoClient *zoho.Client, connections *repository.ConnectionRepository, logger *zap.Logger) *OAuthHandler {
	return &OAuthHandler{
		zohoClient:  zohoClient,
		connections: connections,
		logger:      logger,
	}
}

// Start godoc
// @Summary Begin the Zoho OAuth consent flow
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.OAuthStartResponse
// @Router /oauth/zoho/start [get]
func (h *OAuthHandler) Start(c *fiber.Ctx) error {
	state, err := randomState()
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.OAuthStartResponse{
		AuthorizeURL: h.zohoClient.AuthURL(state),
		State:        state,
	})
}

// Callback godoc
// @Summary OAuth redirect target; exchanges the code for tokens
// @Tags oauth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "Opaque state"
// @Success 200 {object} dto.OAuthCallbackResponse
// @Failure 502 {object} map[string]string
// @Router /oauth/zoho/callback [get]
func (h *OAuthHandler) Callback(c *fiber.Ctx) error {
	code := c.Query("code")
	if code == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "code is required",
		})
	}

	tok, err := h.zohoClient.ExchangeCode(c.Context(), code)
	if err != nil {
		h.logger.Error("token exchange failed", zap.Error(err))
		return respondError(c, err)
	}

	expiresAt := time.Now().UTC().Add(time.Duration(tok.ExpiresIn) * time.Second)
	conn := &models.Connection{
		OrgID:        "",
		AccessToken:  &tok.AccessToken,
		RefreshToken: &tok.RefreshToken,
		ExpiresAt:    &expiresAt,
	}
	if err := h.connections.Create(c.Context(), conn); err != nil {
		h.logger.Error("failed to store connection", zap.Error(err))
		return respondError(c, err)
	}

	return c.JSON(dto.OAuthCallbackResponse{
		ConnectionID: conn.ID,
		Message:      "Connected. Call /api/v1/companies/pick to set the organization.",
	})
}

func randomState() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
