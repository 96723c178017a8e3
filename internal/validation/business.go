package validation

import (
	"wealthcheck/internal/models"
)

// CreateWallet validates a wallet creation request.
func (v *Validator) CreateWallet(req models.CreateWalletRequest) {
	v.Struct(req)
	v.Required("name", req.Name)
	v.PositiveAmount("balance", req.Balance)
}

// CreateTransaction validates the request fields that do not need the store.
func (v *Validator) CreateTransaction(req models.CreateTransactionRequest) {
	v.Struct(req)
	v.Required("title", req.Title)
	v.PositiveAmount("amount", req.Amount)
}

// UpdateTransaction validates the editable transaction fields.
func (v *Validator) UpdateTransaction(req models.UpdateTransactionRequest) {
	v.Struct(req)
	v.Required("title", req.Title)
	v.PositiveAmount("amount", req.Amount)
}
