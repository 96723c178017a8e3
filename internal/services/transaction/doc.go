/*
Package transaction exposes the transaction lifecycle to the HTTP layer.

Every mutation runs the ledger inside one database transaction, evicts the
affected cache entries after commit and answers with the row as stored:

	svc := transaction.NewService(store, cache, invalidator, metrics.Noop{})

	txn, err := svc.Create(ctx, userID, transaction.CreateRequest{
	    Type:         "EXPENSE",
	    FromWalletID: &walletID,
	    CategoryID:   &foodID,
	    Title:        "Lunch",
	    Amount:       decimal.RequireFromString("12.50"),
	})

Reads go through the cache. Transaction lists are cached for the default
first page only.
*/
package transaction
