package ledger

import (
	"errors"
	"fmt"
)

// Reason strings match the ones the clients key on, verbatim.
var (
	ErrEmployeeExists      = errors.New("Employee already exists")
	ErrEmployeeNotFound    = errors.New("Employee does not exist")
	ErrZeroSalary          = errors.New("Salary should be more than 0")
	ErrUnprofitable        = errors.New("Unprofitable employee")
	ErrInsufficientBalance = errors.New("Insufficient contract balance")
	ErrPaused              = errors.New("ledger is paused")
	ErrNotPaused           = errors.New("ledger is not paused")
	ErrAmountOverflow      = errors.New("amount overflow")
)

// AccessControlError reports which role the offending caller lacks.
type AccessControlError struct {
	Account string
	Role    string
}

func (e *AccessControlError) Error() string {
	return fmt.Sprintf("account %s is missing role %s", e.Account, e.Role)
}
