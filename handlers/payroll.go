package handlers

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"dapp_payroll/ledger"
	"dapp_payroll/types"
	"dapp_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

type DepositRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// DepositTokens pulls pre-approved tokens from the caller into the
// ledger's custody.
func DepositTokens(c *fiber.Ctx) error {
	var req DepositRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	amount, err := uint256.FromDecimal(req.Amount)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid amount",
		})
	}

	if err := Ledger.DepositTokens(callerWallet(c), amount); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Deposit successful",
		Data: fiber.Map{
			"funding_balance": Ledger.FundingBalance().Dec(),
		},
	})
}

// PayAllSalaries runs the mass disbursement, then mirrors one
// transaction record for the run and zeroes the mirrored bonuses and
// penalties.
func PayAllSalaries(c *fiber.Ctx) error {
	report, err := Ledger.PayAllSalaries(callerWallet(c))
	if err != nil {
		return c.Status(ledgerStatus(err)).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	now := time.Now()
	hash := payoutHash(now, report)
	if _, err := Mirror.RecordTransaction(now, report.Total.Dec(), hash); err != nil {
		utils.Logger.Error("Failed to mirror payout transaction", zap.Error(err))
	}

	wallets := make([]string, len(report.Payouts))
	payouts := make([]fiber.Map, len(report.Payouts))
	for i, p := range report.Payouts {
		wallets[i] = p.Wallet
		payouts[i] = fiber.Map{"wallet_address": p.Wallet, "amount": p.Amount.Dec()}
	}
	if err := Mirror.ResetBonusesAndPenalties(wallets); err != nil {
		utils.Logger.Error("Failed to reset mirrored bonuses and penalties", zap.Error(err))
	}

	utils.Logger.Info("Salaries paid",
		zap.Int("employees", len(report.Payouts)),
		zap.String("total", report.Total.Dec()))

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Salaries paid successfully",
		Data: fiber.Map{
			"payouts":         payouts,
			"total":           report.Total.Dec(),
			"hash":            hash,
			"funding_balance": Ledger.FundingBalance().Dec(),
		},
	})
}

// GetContractBalance returns the ledger's funding balance.
func GetContractBalance(c *fiber.Ctx) error {
	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"funding_balance": Ledger.FundingBalance().Dec(),
			"paused":          Ledger.Paused(),
		},
	})
}

// GetTransactions lists the mirrored disbursement log.
func GetTransactions(c *fiber.Ctx) error {
	txs, err := Mirror.ListTransactions()
	if err != nil {
		utils.Logger.Error("Failed to fetch transactions", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data:    txs,
	})
}

func PauseLedger(c *fiber.Ctx) error {
	if err := Ledger.Pause(callerWallet(c)); err != nil {
		return c.Status(ledgerStatus(err)).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Ledger paused",
	})
}

func UnpauseLedger(c *fiber.Ctx) error {
	if err := Ledger.Unpause(callerWallet(c)); err != nil {
		return c.Status(ledgerStatus(err)).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Ledger unpaused",
	})
}

// payoutHash derives the reference hash the transaction log stores for
// a disbursement run.
func payoutHash(date time.Time, report *ledger.PayoutReport) string {
	h := sha256.New()
	fmt.Fprintf(h, "%d:%s", date.UnixNano(), report.Total.Dec())
	for _, p := range report.Payouts {
		fmt.Fprintf(h, ":%s=%s", p.Wallet, p.Amount.Dec())
	}
	return "0x" + hex.EncodeToString(h.Sum(nil))
}
