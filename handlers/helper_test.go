package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"dapp_payroll/handlers"
	"dapp_payroll/ledger"
	"dapp_payroll/models"
	"dapp_payroll/token"
	"dapp_payroll/types"
	"dapp_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	adminWallet  = "0xf39fd6e51aad88f6f4ce6ab8827279cfffb92266"
	ledgerWallet = "0x0000000000000000000000000000000000001337"
	employeeA    = "0x70997970c51812dc3a010c7d01b50e0d17dc79c8"
	employeeB    = "0x3c44cdddb6a900fa2b585dd299e03d12fa4293bc"
	outsider     = "0x15d34aaf54267db7d7c367839aaf71a00a2c6a65"
)

func init() {
	utils.InitLogger()
}

func setupTest(t *testing.T) (*fiber.App, *gorm.DB, *ledger.Ledger, *token.Token) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Employee{}, &models.Transaction{}))

	supply, err := uint256.FromDecimal("1000000")
	require.NoError(t, err)
	tok := token.New("SalaryToken", "SAL", adminWallet, supply)
	led := ledger.New(tok, ledgerWallet, adminWallet)
	require.NoError(t, led.GrantRole(adminWallet, ledger.AdminRole, adminWallet))

	handlers.InitHandlers(db, led, tok)

	app := fiber.New()
	app.Get("/employees", handlers.GetAllEmployees)
	app.Get("/employees/:wallet", handlers.GetEmployee)
	app.Get("/transactions", handlers.GetTransactions)
	app.Get("/payroll/balance", handlers.GetContractBalance)
	app.Post("/employees", withTestWallet(handlers.AddEmployee))
	app.Patch("/employees/:wallet/salary", withTestWallet(handlers.UpdateEmployeeSalary))
	app.Patch("/employees/:wallet/bonus", withTestWallet(handlers.UpdateEmployeeBonus))
	app.Patch("/employees/:wallet/penalty", withTestWallet(handlers.UpdateEmployeePenalty))
	app.Delete("/employees/:wallet", withTestWallet(handlers.DeleteEmployee))
	app.Post("/payroll/deposit", withTestWallet(handlers.DepositTokens))
	app.Post("/payroll/pay", withTestWallet(handlers.PayAllSalaries))
	app.Post("/payroll/pause", withTestWallet(handlers.PauseLedger))
	app.Post("/payroll/unpause", withTestWallet(handlers.UnpauseLedger))

	return app, db, led, tok
}

// withTestWallet stands in for the JWT middleware, taking the caller
// wallet from a request header.
func withTestWallet(h fiber.Handler) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals("wallet", c.Get("X-Test-Wallet"))
		return h(c)
	}
}

func doRequest(t *testing.T, app *fiber.App, method, url, wallet string, payload interface{}) (int, types.APIResponse) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(data)
	}

	req := httptest.NewRequest(method, url, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if wallet != "" {
		req.Header.Set("X-Test-Wallet", wallet)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var response types.APIResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	return resp.StatusCode, response
}
