package ledger

import (
	"context"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/repositories"

	"github.com/shopspring/decimal"
)

// BalanceMutator changes one wallet balance per call with a single
// conditional update. It never reads a balance before writing it.
type BalanceMutator struct {
	wallets repositories.WalletRepository
}

func NewBalanceMutator(wallets repositories.WalletRepository) *BalanceMutator {
	return &BalanceMutator{wallets: wallets}
}

// Increase credits an active wallet owned by userID.
func (m *BalanceMutator) Increase(ctx context.Context, userID, walletID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.InvalidRequest("Amount must be greater than zero")
	}
	rows, err := m.wallets.IncreaseBalance(ctx, userID, walletID, amount)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.NotFound("Wallet")
	}
	return nil
}

// Decrease debits an active wallet only if its balance covers amount. A zero
// row count is reported as insufficient balance; it also covers a wallet that
// vanished concurrently.
func (m *BalanceMutator) Decrease(ctx context.Context, userID, walletID uint, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return apperrors.InvalidRequest("Amount must be greater than zero")
	}
	rows, err := m.wallets.DecreaseBalance(ctx, userID, walletID, amount)
	if err != nil {
		return err
	}
	if rows == 0 {
		return apperrors.Insufficient(walletID)
	}
	return nil
}

// Apply runs the legs debit-first and stops at the first failure. Zero legs
// are skipped.
func (m *BalanceMutator) Apply(ctx context.Context, userID uint, legs []Leg) error {
	for _, leg := range ordered(legs) {
		var err error
		if leg.Delta.IsNegative() {
			err = m.Decrease(ctx, userID, leg.WalletID, leg.Delta.Neg())
		} else {
			err = m.Increase(ctx, userID, leg.WalletID, leg.Delta)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
