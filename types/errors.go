package types

const (
	ErrInvalidInput  = "Invalid input"
	ErrDatabaseError = "Database error"
	ErrLedgerError   = "Ledger error"
	ErrUnauthorized  = "Unauthorized access"
	ErrInternalError = "internal server error"
)
