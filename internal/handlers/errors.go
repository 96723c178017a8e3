// Package handlers contains the fiber handlers for the wallet and transaction API.
package handlers

import (
	"errors"
	"log"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

var statusByCode = map[string]int{
	apperrors.CodeResourceNotFound:           fiber.StatusNotFound,
	apperrors.CodeInvalidTransactionRequest:  fiber.StatusBadRequest,
	apperrors.CodeUnsupportedTransactionType: fiber.StatusBadRequest,
	apperrors.CodeInsufficientBalance:        fiber.StatusUnprocessableEntity,
	apperrors.CodeIllegalState:               fiber.StatusConflict,
	apperrors.CodeUnauthenticated:            fiber.StatusUnauthorized,
}

// handleError writes err as a JSON error body. Domain errors keep their
// message and code; anything else is logged and reported as a 500.
func handleError(c *fiber.Ctx, err error) error {
	var de *apperrors.DomainError
	if errors.As(err, &de) {
		if status, ok := statusByCode[de.Code]; ok {
			return response.CodedError(c, status, de.Code, de.Message)
		}
	}
	log.Printf("❌ %s %s failed: %v", c.Method(), c.Path(), err)
	return response.ServerError(c, "Internal server error")
}

// pathID reads the :id route parameter.
func pathID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, apperrors.InvalidRequest("invalid id %q", c.Params("id"))
	}
	return uint(id), nil
}
