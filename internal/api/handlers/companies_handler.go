package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/dto"
	"ocr-journal-backend/internal/repository"
	"ocr-journal-backend/internal/service"
)

type CompaniesHandler struct {
	connections    *repository.ConnectionRepository
	accountService *service.AccountService
	logger         *zap.Logger
}

func NewCompaniesHandler(connections *repository.ConnectionRepository, accountService *service.AccountService, logger *zap.Logger) *CompaniesHandler {
	return &CompaniesHandler{
		connections:    connections,
		accountService: accountService,
		logger:         logger,
	}
}

// List godoc
// @Summary List connected companies
// @Tags companies
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.CompanyResponse
// @Router /api/v1/companies [get]
func (h *CompaniesHandler) List(c *fiber.Ctx) error {
	conns, err := h.connections.List(c.Context())
	if err != nil {
		h.logger.Error("failed to list connections", zap.Error(err))
		return respondError(c, err)
	}

	out := make([]dto.CompanyResponse, 0, len(conns))
	for _, conn := range conns {
		out = append(out, dto.CompanyResponse{
			ID:      conn.ID,
			OrgID:   conn.OrgID,
			OrgName: conn.OrgName,
		})
	}
	return c.JSON(out)
}

// PickOrg godoc
// @Summary Bind a connection to a Zoho organization
// @Tags companies
// @Accept json
// @Produce json
// @Param request body dto.PickOrgRequest true "Organization pick"
// @Security Bearer
// @Success 200 {object} map[string]bool
// @Failure 400 {object} map[string]string
// @Router /api/v1/companies/pick [post]
func (h *CompaniesHandler) PickOrg(c *fiber.Ctx) error {
	var req dto.PickOrgRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	var orgName *string
	if req.OrgName != "" {
		orgName = &req.OrgName
	}
	if err := h.connections.SetOrg(c.Context(), req.ConnectionID, req.OrgID, orgName); err != nil {
		h.logger.Error("failed to set organization", zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "connection not found",
		})
	}

	return c.JSON(fiber.Map{"ok": true})
}

// ListAccounts godoc
// @Summary Fetch the chart of accounts for a connection
// @Tags accounts
// @Produce json
// @Param connection_id query int true "Connection id"
// @Security Bearer
// @Success 200 {array} dto.AccountResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/accounts [get]
func (h *CompaniesHandler) ListAccounts(c *fiber.Ctx) error {
	connectionID := int64(c.QueryInt("connection_id"))
	if connectionID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "connection_id is required",
		})
	}

	accounts, err := h.accountService.List(c.Context(), connectionID)
	if err != nil {
		h.logger.Error("failed to list accounts", zap.Error(err))
		return respondError(c, err)
	}

	out := make([]dto.AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, dto.AccountResponse{
			AccountID: a.AccountID,
			Name:      a.Name,
			Code:      a.Code,
			Type:      a.Type,
		})
	}
	return c.JSON(out)
}
