package validation

const (
	// String lengths, mirrored in the request struct tags
	MaxNameLength  = 100
	MaxTitleLength = 150
	MaxNotesLength = 500

	// numeric(20,2) leaves 18 integer digits
	MaxAmountDigits = 18
)
