package handlers

import (
	"dapp_payroll/types"
	"dapp_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
)

type AddEmployeeRequest struct {
	FullName      string `json:"full_name" validate:"required"`
	WalletAddress string `json:"wallet_address" validate:"required"`
	Salary        string `json:"salary" validate:"required"`
}

type UpdateAmountRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// AddEmployee registers the wallet on the ledger, then mirrors the
// record for display. The mirror write is best-effort: the ledger is
// authoritative and a failed duplicate write only leaves the cache
// stale.
func AddEmployee(c *fiber.Ctx) error {
	var req AddEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	salary, err := uint256.FromDecimal(req.Salary)
	if err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid salary amount",
		})
	}

	if err := Ledger.AddEmployee(callerWallet(c), req.WalletAddress, salary); err != nil {
		return c.Status(ledgerStatus(err)).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	employee, err := Mirror.CreateEmployee(req.FullName, req.WalletAddress, salary.Dec())
	if err != nil {
		utils.Logger.Error("Failed to mirror employee",
			zap.String("wallet", req.WalletAddress), zap.Error(err))
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee added successfully",
		Data:    employee,
	})
}

// GetAllEmployees lists the mirrored records alongside the on-chain
// registry count.
func GetAllEmployees(c *fiber.Ctx) error {
	employees, err := Mirror.ListEmployees()
	if err != nil {
		utils.Logger.Error("Failed to fetch employees", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrDatabaseError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"employees": employees,
			"count":     Ledger.EmployeesCount(),
		},
	})
}

// GetEmployee reads one employee's authoritative on-chain fields.
func GetEmployee(c *fiber.Ctx) error {
	wallet := c.Params("wallet")

	salary, err := Ledger.GetEmployeeSalary(wallet)
	if err != nil {
		return c.Status(ledgerStatus(err)).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}
	bonus, _ := Ledger.GetEmployeeBonus(wallet)
	penalty, _ := Ledger.GetEmployeePenalty(wallet)
	payout, _ := Ledger.CalculatePayoutAmount(wallet)

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"wallet_address": wallet,
			"salary":         salary.Dec(),
			"bonus":          bonus.Dec(),
			"penalty":        penalty.Dec(),
			"payout":         payout.Dec(),
		},
	})
}

func UpdateEmployeeSalary(c *fiber.Ctx) error {
	return updateEmployeeField(c, "salary")
}

func UpdateEmployeeBonus(c *fiber.Ctx) error {
	return updateEmployeeField(c, "bonus")
}

func UpdateEmployeePenalty(c *fiber.Ctx) error {
	return updateEmployeeField(c, "penalty")
}

func updateEmployeeField(c *fiber.Ctx, field string) error {
	wallet := c.Params("wallet")

	var req UpdateAmountRequest
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

	caller := callerWallet(c)
	switch field {
	case "salary":
		err = Ledger.SetEmployeeSalary(caller, wallet, amount)
	case "bonus":
		err = Ledger.SetEmployeeBonus(caller, wallet, amount)
	case "penalty":
		err = Ledger.SetEmployeePenalty(caller, wallet, amount)
	}
	if err != nil {
		return c.Status(ledgerStatus(err)).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	var mirrorErr error
	switch field {
	case "salary":
		mirrorErr = Mirror.UpdateSalary(wallet, amount.Dec())
	case "bonus":
		mirrorErr = Mirror.UpdateBonus(wallet, amount.Dec())
	case "penalty":
		mirrorErr = Mirror.UpdatePenalty(wallet, amount.Dec())
	}
	if mirrorErr != nil {
		utils.Logger.Error("Failed to mirror employee update",
			zap.String("wallet", wallet), zap.String("field", field), zap.Error(mirrorErr))
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee updated successfully",
	})
}

// DeleteEmployee removes the wallet from the ledger and the mirror.
func DeleteEmployee(c *fiber.Ctx) error {
	wallet := c.Params("wallet")

	if err := Ledger.RemoveEmployee(callerWallet(c), wallet); err != nil {
		return c.Status(ledgerStatus(err)).JSON(types.APIResponse{
			Success: false,
			Error:   err.Error(),
		})
	}

	if err := Mirror.DeleteEmployee(wallet); err != nil {
		utils.Logger.Error("Failed to delete mirrored employee",
			zap.String("wallet", wallet), zap.Error(err))
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Message: "Employee removed successfully",
	})
}
