package handlers

import (
	"wealthcheck/internal/services/wallet"
	"wealthcheck/internal/utils"
	"wealthcheck/internal/utils/response"
	"wealthcheck/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type WalletHandler struct {
	walletService wallet.Service
}

func NewWalletHandler(walletService wallet.Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

func (h *WalletHandler) CreateWallet(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	var req wallet.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	v := validation.New()
	v.CreateWallet(req)
	if err := v.Err(); err != nil {
		return handleError(c, err)
	}

	w, err := h.walletService.Create(c.UserContext(), userID, req)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Wallet created", w)
}

func (h *WalletHandler) GetWallet(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	w, err := h.walletService.Get(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Wallet retrieved", w)
}

func (h *WalletHandler) ListWallets(c *fiber.Ctx) error {
	return h.list(c, false)
}

func (h *WalletHandler) ListDeletedWallets(c *fiber.Ctx) error {
	return h.list(c, true)
}

func (h *WalletHandler) list(c *fiber.Ctx, deleted bool) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}

	wallets, err := h.walletService.List(c.UserContext(), userID, deleted)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Wallets retrieved", wallets)
}

func (h *WalletHandler) SoftDeleteWallet(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	w, err := h.walletService.SoftDelete(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Wallet moved to recently deleted", w)
}

func (h *WalletHandler) RestoreWallet(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	w, err := h.walletService.Restore(c.UserContext(), userID, id)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Wallet restored", w)
}

func (h *WalletHandler) PermanentDeleteWallet(c *fiber.Ctx) error {
	userID, err := utils.CurrentUserID(c)
	if err != nil {
		return handleError(c, err)
	}
	id, err := pathID(c)
	if err != nil {
		return handleError(c, err)
	}

	if err := h.walletService.PermanentDelete(c.UserContext(), userID, id); err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Wallet permanently deleted", nil)
}
