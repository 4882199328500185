package main

import (
	"dapp_payroll/config"
	"dapp_payroll/handlers"
	"dapp_payroll/ledger"
	"dapp_payroll/middleware"
	"dapp_payroll/models"
	"dapp_payroll/token"
	"dapp_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func main() {
	config.LoadConfig()
	utils.InitLogger()
	defer utils.Logger.Sync()

	db, err := gorm.Open(sqlite.Open(config.AppConfig.DBPath), &gorm.Config{})
	if err != nil {
		utils.Logger.Fatal("Failed to open database", zap.Error(err))
	}
	if err := db.AutoMigrate(&models.Employee{}, &models.Transaction{}); err != nil {
		utils.Logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	supply, err := uint256.FromDecimal(config.AppConfig.TokenSupply)
	if err != nil {
		utils.Logger.Fatal("Invalid TOKEN_SUPPLY", zap.Error(err))
	}

	tok := token.New(
		config.AppConfig.TokenName,
		config.AppConfig.TokenSymbol,
		config.AppConfig.AdminWallet,
		supply,
	)
	led := ledger.New(tok, config.AppConfig.LedgerAddress, config.AppConfig.AdminWallet)
	if err := led.GrantRole(config.AppConfig.AdminWallet, ledger.AdminRole, config.AppConfig.AdminWallet); err != nil {
		utils.Logger.Fatal("Failed to grant payroll admin role", zap.Error(err))
	}

	handlers.InitHandlers(db, led, tok)

	app := fiber.New()

	app.Post("/auth/login", handlers.Login)

	// Reads stay open; queries work regardless of pause state.
	app.Get("/employees", handlers.GetAllEmployees)
	app.Get("/employees/:wallet", handlers.GetEmployee)
	app.Get("/transactions", handlers.GetTransactions)
	app.Get("/payroll/balance", handlers.GetContractBalance)

	app.Post("/employees", middleware.RequireAuth, handlers.AddEmployee)
	app.Patch("/employees/:wallet/salary", middleware.RequireAuth, handlers.UpdateEmployeeSalary)
	app.Patch("/employees/:wallet/bonus", middleware.RequireAuth, handlers.UpdateEmployeeBonus)
	app.Patch("/employees/:wallet/penalty", middleware.RequireAuth, handlers.UpdateEmployeePenalty)
	app.Delete("/employees/:wallet", middleware.RequireAuth, handlers.DeleteEmployee)

	app.Post("/payroll/deposit", middleware.RequireAuth, handlers.DepositTokens)
	app.Post("/payroll/pay", middleware.RequireAuth, handlers.PayAllSalaries)
	app.Post("/payroll/pause", middleware.RequireAuth, handlers.PauseLedger)
	app.Post("/payroll/unpause", middleware.RequireAuth, handlers.UnpauseLedger)

	utils.Logger.Info("Starting payroll server", zap.String("port", config.AppConfig.Port))
	if err := app.Listen(":" + config.AppConfig.Port); err != nil {
		utils.Logger.Fatal("Server stopped", zap.Error(err))
	}
}
