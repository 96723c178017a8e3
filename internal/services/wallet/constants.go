package wallet

// Operation names reported to the metrics collector.
const (
	opCreate          = "create_wallet"
	opSoftDelete      = "soft_delete_wallet"
	opRestore         = "restore_wallet"
	opPermanentDelete = "permanent_delete_wallet"
)
