package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"ocr-journal-backend/internal/dto"
	"ocr-journal-backend/internal/service"
)

type BooksHandler struct {
	journalService *service.JournalService
	logger         *zap.Logger
}

func NewBooksHandler(journalService *service.JournalService, logger *zap.Logger) *BooksHandler {
	return &BooksHandler{
		journalService: journalService,
		logger:         logger,
	}
}

// PostJournal godoc
// @Summary Post a balanced journal entry to Zoho Books
// @Description Records the transaction and posts it; repeated idempotency keys return the existing transaction without a second post
// @Tags books
// @Accept json
// @Produce json
// @Param request body dto.JournalRequest true "Journal entry"
// @Security Bearer
// @Success 200 {object} dto.JournalResponse
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /api/v1/books/journal [post]
func (h *BooksHandler) PostJournal(c *fiber.Ctx) error {
	var req dto.JournalRequest
	if err := parseAndValidate(c, &req); err != nil {
		return respondError(c, err)
	}

	svcReq := service.JournalRequest{
		ConnectionID:    req.ConnectionID,
		Date:            req.Date,
		Amount:          req.Amount,
		Currency:        req.Currency,
		Reference:       req.Reference,
		Notes:           req.Notes,
		DebitAccountID:  req.DebitAccountID,
		CreditAccountID: req.CreditAccountID,
		BankName:        req.BankName,
		AccountLast4:    req.AccountLast4,
	}
	if req.UploadID != "" {
		uploadID, err := uuid.Parse(req.UploadID)
		if err == nil {
			svcReq.UploadID = &uploadID
		}
	}

	result, err := h.journalService.Post(c.Context(), svcReq)
	if err != nil {
		h.logger.Error("journal post failed", zap.Error(err))
		return respondError(c, err)
	}

	tx := result.Transaction
	return c.JSON(dto.JournalResponse{
		TransactionID:  tx.ID.String(),
		Status:         string(tx.Status),
		IdempotencyKey: tx.IdempotencyKey,
		BooksJournalID: tx.BooksJournalID,
		Duplicate:      result.Duplicate,
	})
}
