package handlers

import (
	"errors"

	"dapp_payroll/ledger"
	"dapp_payroll/services"
	"dapp_payroll/token"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	DB     *gorm.DB
	Ledger *ledger.Ledger
	Token  *token.Token
	Mirror *services.MirrorService
)

func InitHandlers(db *gorm.DB, led *ledger.Ledger, tok *token.Token) {
	DB = db
	Ledger = led
	Token = tok
	Mirror = services.NewMirrorService(db)
}

// callerWallet is the identity the middleware extracted from the JWT.
// Empty for unauthenticated requests; the ledger rejects those with an
// access-control error since no role holds the empty wallet.
func callerWallet(c *fiber.Ctx) string {
	if wallet, ok := c.Locals("wallet").(string); ok {
		return wallet
	}
	return ""
}

// ledgerStatus maps ledger failures onto HTTP statuses: authorization
// is distinct from availability (pause), which is distinct from
// precondition violations.
func ledgerStatus(err error) int {
	var accessErr *ledger.AccessControlError
	switch {
	case errors.As(err, &accessErr):
		return fiber.StatusForbidden
	case errors.Is(err, ledger.ErrEmployeeNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ledger.ErrPaused), errors.Is(err, ledger.ErrNotPaused):
		return fiber.StatusConflict
	default:
		return fiber.StatusBadRequest
	}
}
