package handlers

import (
	"wealthcheck/internal/services/transaction"
	"wealthcheck/internal/utils"
	"wealthcheck/internal/utils/pagination"
	"wealthcheck/internal/utils/response"
	"wealthcheck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	transactionService transaction.Service
}

func NewTransactionHandler(transactionService transaction.Service) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	var req transaction.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.CreateTransaction(req)
	if err := v.Err(); err != nil {
		return handleError(c, err)
	}

	txn, err := h.transactionService.Create(c.UserContext(), userID, req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Transaction created", txn)
}

func (h *TransactionHandler) GetTransaction(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	txn, err := h.transactionService.Get(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Transaction retrieved", txn)
}

func (h *TransactionHandler) ListTransactions(c *fiber.Ctx) error {
	return h.list(c, false)
}

func (h *TransactionHandler) ListDeletedTransactions(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *TransactionHandler) list(c *fiber.Ctx, deleted bool) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	p := pagination.ParseFromRequest(c)
	page, err := h.transactionService.List(c.UserContext(), userID, deleted, p)
	if err != nil {
		return handleError(c, err)
	}

	p.Total = page.Total
	return c.JSON(pagination.Response(p, page.Items))
}

func (h *TransactionHandler) UpdateTransaction(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	var req transaction.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.UpdateTransaction(req)
	if err := v.Err(); err != nil {
		return handleError(c, err)
	}

	txn, err := h.transactionService.Update(c.UserContext(), userID, id, req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Transaction updated", txn)
}

func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	txn, err := h.transactionService.Delete(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Transaction moved to recently deleted", txn)
}

func (h *TransactionHandler) RestoreTransaction(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	txn, err := h.transactionService.Restore(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Transaction restored", txn)
}

func (h *TransactionHandler) PermanentDeleteTransaction(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.transactionService.PermanentDelete(c.UserContext(), userID, id); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Transaction permanently deleted", nil)
}
