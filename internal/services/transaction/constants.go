package transaction

// Operation names reported to the metrics collector.
const (
	opCreate          = "create_transaction"
	opUpdate          = "update_transaction"
	opDelete          = "delete_transaction"
	opRestore         = "restore_transaction"
	opPermanentDelete = "permanent_delete_transaction"
)
