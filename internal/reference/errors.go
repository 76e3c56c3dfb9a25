package reference

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors for reference table loading and lookup.
// Compare with errors.Is; returned errors wrap these with the offending key.
var (
	// ErrNotFound indicates an ID or name that is absent from the tables.
	// It is a data-integrity fault and is never silently defaulted.
	ErrNotFound = constError("reference entry not found")

	// ErrInvalidTables indicates a factor library that fails validation.
	ErrInvalidTables = constError("invalid reference tables")

	// ErrIncompatibleVersion indicates a factor library whose version does not
	// satisfy the required constraint.
	ErrIncompatibleVersion = constError("incompatible factor library version")
)
