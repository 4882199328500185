package token

import "errors"

var (
	ErrNotOwner              = errors.New("caller is not the token owner")
	ErrPaused                = errors.New("token is paused")
	ErrNotPaused             = errors.New("token is not paused")
	ErrDenied                = errors.New("account is deny-listed")
	ErrInsufficientBalance   = errors.New("transfer amount exceeds balance")
	ErrInsufficientAllowance = errors.New("transfer amount exceeds allowance")
	ErrAmountOverflow        = errors.New("amount overflow")
)
