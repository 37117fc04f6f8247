package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/dto"
	"ocr-journal-backend/internal/models"
	"ocr-journal-backend/internal/repository"
)

type RulesHandler struct {
	bankRules    *repository.BankRuleRepository
	mappingRules *repository.MappingRuleRepository
	logger       *zap.Logger
}

func NewRulesHandler(bankRules *repository.BankRuleRepository, mappingRules *repository.MappingRuleRepository, logger *zap.Logger) *RulesHandler {
	return &RulesHandler{
		bankRules:    bankRules,
		mappingRules: mappingRules,
		logger:       logger,
	}
}

// CreateBankRule godoc
// @Summary Remember which connection owns a bank fingerprint
// @Tags rules
// @Accept json
// @Produce json
// @Param request body dto.BankRuleRequest true "Bank rule"
// @Security Bearer
// @Success 201 {object} dto.RuleCreatedResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/rules/bank [post]
func (h *RulesHandler) CreateBankRule(c *fiber.Ctx) error {
	var req dto.BankRuleRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	rule := &models.BankOrgRule{
		BankName:        req.BankName,
		AccountLast4:    req.AccountLast4,
		ConnectionID:    req.ConnectionID,
		ConfidenceFloor: req.ConfidenceFloor,
	}
	if req.AltFingerprint != "" {
		rule.AltFingerprint = &req.AltFingerprint
	}

	if err := h.bankRules.Create(c.Context(), rule); err != nil {
		h.logger.Error("failed to create bank rule", zap.Error(err))
		return respondError(c, err)
	}

	h.logger.Info("bank rule created",
		zap.String("bank_name", rule.BankName),
		zap.String("account_last4", rule.AccountLast4),
		zap.Int64("connection_id", rule.ConnectionID),
	)
	return c.Status(fiber.StatusCreated).JSON(dto.RuleCreatedResponse{OK: true, ID: rule.ID})
}

// CreateMappingRule godoc
// @Summary Map a text pattern to a debit/credit account pair
// @Tags rules
// @Accept json
// @Produce json
// @Param request body dto.MappingRuleRequest true "Mapping rule"
// @Security Bearer
// @Success 201 {object} dto.RuleCreatedResponse
// @Failure 400 {object} map[string]string
// @Router /api/v1/rules/mapping [post]
func (h *RulesHandler) CreateMappingRule(c *fiber.Ctx) error {
	var req dto.MappingRuleRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	rule := &models.MappingRule{
		Pattern:         req.Pattern,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		ConnectionID:    req.ConnectionID,
		ConfidenceFloor: req.ConfidenceFloor,
	}
	if req.TaxCode != "" {
		rule.TaxCode = &req.TaxCode
	}

	if err := h.mappingRules.Create(c.Context(), rule); err != nil {
		h.logger.Error("failed to create mapping rule", zap.Error(err))
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.RuleCreatedResponse{OK: true, ID: rule.ID})
}
