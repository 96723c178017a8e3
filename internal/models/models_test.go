package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	for _, in := range []string{"INCOME", "income", " Expense ", "transfer"} {
		_, err := ParseTransactionType(in)
		assert.NoError(t, err, in)
	}

	got, err := ParseTransactionType("expense")
	require.NoError(t, err)
	assert.Equal(t, TransactionTypeExpense, got)

	_, err = ParseTransactionType("REFUND")
	assert.Error(t, err)
}

func TestTransaction_WalletIDs(t *testing.T) {
	from, to := uint(1), uint(2)

	assert.Equal(t, []uint{1, 2}, (&Transaction{FromWalletID: &from, ToWalletID: &to}).WalletIDs())
	assert.Equal(t, []uint{2}, (&Transaction{ToWalletID: &to}).WalletIDs())
	assert.Empty(t, (&Transaction{}).WalletIDs())
}

func TestUserClaims_HasPermission(t *testing.T) {
	claims := &UserClaims{Permissions: DefaultPermissions()}

	assert.True(t, claims.HasPermission(PermissionWalletWrite))
	assert.False(t, claims.HasPermission("admin:all"))
}
