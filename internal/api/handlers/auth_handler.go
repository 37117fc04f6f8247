package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/dto"
	"ocr-journal-backend/pkg/auth"
	"ocr-journal-backend/pkg/config"
)

type AuthHandler struct {
	jwtManager *auth.JWTManager
	authCfg    config.AuthConfig
	logger     *zap.Logger
}

func NewAuthHandler(jwtManager *auth.JWTManager, authCfg config.AuthConfig, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		jwtManager: jwtManager,
		authCfg:    authCfg,
		logger:     logger,
	}
}

// Login godoc
// @Summary Operator login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Operator credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	if req.Username != h.authCfg.OperatorUsername ||
		!auth.CheckPassword(h.authCfg.OperatorPasswordHash, req.Password) {
		h.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid credentials",
		})
	}

	token, err := h.jwtManager.GenerateToken(req.Username)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(dto.LoginResponse{Token: token})
}
