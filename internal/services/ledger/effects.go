package ledger

import (
	"sort"

	apperrors "wealthcheck/internal/errors"
	"wealthcheck/internal/models"

	"github.com/shopspring/decimal"
)

// Leg is a signed balance change on one wallet.
type Leg struct {
	WalletID uint
	Delta    decimal.Decimal
}

// Effects returns the legs a transaction of the given type contributes for
// amount. A negative amount yields the opposite legs, which is how amount
// deltas and reversals are expressed.
func Effects(txType models.TransactionType, fromWalletID, toWalletID *uint, amount decimal.Decimal) ([]Leg, error) {
	switch txType {
	case models.TransactionTypeExpense:
		if fromWalletID == nil {
			return nil, apperrors.InvalidRequest("Expense transaction requires fromWalletId")
		}
		return []Leg{{WalletID: *fromWalletID, Delta: amount.Neg()}}, nil
	case models.TransactionTypeIncome:
		if toWalletID == nil {
			return nil, apperrors.InvalidRequest("Income transaction requires toWalletId")
		}
		return []Leg{{WalletID: *toWalletID, Delta: amount}}, nil
	case models.TransactionTypeTransfer:
		if fromWalletID == nil || toWalletID == nil {
			return nil, apperrors.InvalidRequest("Transfer transaction requires fromWalletId and toWalletId")
		}
		return []Leg{
			{WalletID: *fromWalletID, Delta: amount.Neg()},
			{WalletID: *toWalletID, Delta: amount},
		}, nil
	default:
		return nil, apperrors.ErrUnsupportedTransactionType
	}
}

// TransactionEffects returns the legs a stored transaction contributes while active.
func TransactionEffects(txn *models.Transaction) ([]Leg, error) {
	return Effects(txn.Type, txn.FromWalletID, txn.ToWalletID, txn.Amount)
}

// Reverse negates every leg.
func Reverse(legs []Leg) []Leg {
	out := make([]Leg, len(legs))
	for i, leg := range legs {
		out[i] = Leg{WalletID: leg.WalletID, Delta: leg.Delta.Neg()}
	}
	return out
}

// ordered drops zero legs and puts debits before credits, keeping the
// relative order within each group.
func ordered(legs []Leg) []Leg {
	out := make([]Leg, 0, len(legs))
	for _, leg := range legs {
		if !leg.Delta.IsZero() {
			out = append(out, leg)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Delta.IsNegative() && !out[j].Delta.IsNegative()
	})
	return out
}
