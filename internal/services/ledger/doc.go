// Package ledger keeps wallet balances equal to the net effect of their
// active transactions.
//
// Every balance change is a conditional row update issued through
// BalanceMutator. A Ledger is bound to one repositories.Store; callers run it
// inside Store.ExecuteInTransaction so that all legs of an operation and the
// transaction row commit or roll back together.
package ledger
