// Package handlers holds the fiber route handlers. Each handler owns its
// services and a logger; request validation errors come back as 400s,
// upstream service failures as 502s with the upstream reason preserved.
package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"ocr-journal-backend/internal/errs"
)

var validate = validator.New()

// parseAndValidate decodes the JSON body into out and runs the validator
// tags, returning a ValidationError on the first failing field.
func parseAndValidate(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return &errs.ValidationError{Field: "body", Reason: err.Error()}
	}
	if err := validate.Struct(out); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			return &errs.ValidationError{Field: fieldErrs[0].Field(), Reason: "failed " + fieldErrs[0].Tag() + " validation"}
		}
		return &errs.ValidationError{Field: "body", Reason: err.Error()}
	}
	return nil
}

// respondError maps the error taxonomy onto HTTP statuses. External
// service failures surface the upstream message verbatim.
func respondError(c *fiber.Ctx, err error) error {
	var validationErr *errs.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": validationErr.Error(),
		})
	}

	var externalErr *errs.ExternalServiceError
	if errors.As(err, &externalErr) {
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": externalErr.Error(),
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
