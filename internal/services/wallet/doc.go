/*
Package wallet provides wallet management for the ledger.

A wallet is created with a positive opening balance, recorded as an INCOME
transaction in the user's "Initial Balance" category. It can only be soft
deleted once its balance is back to zero, and restoring it recomputes the
balance from its active transactions.

Usage:

	svc := wallet.NewService(store, cache, invalidator, metrics.Noop{})

	w, err := svc.Create(ctx, userID, wallet.CreateRequest{
	    Name:    "Cash",
	    Balance: decimal.RequireFromString("250.00"),
	})

Cache Management:

Single wallets and the active and deleted wallet lists are read through the
cache and evicted after every committed change.
*/
package wallet
