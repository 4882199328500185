package handlers_test

import (
	"testing"

	"dapp_payroll/config"
	"dapp_payroll/handlers"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupAuthTest(t *testing.T) *fiber.App {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter2"), bcrypt.MinCost)
	require.NoError(t, err)

	config.AppConfig = config.Config{
		JWTSecret:         "test-secret",
		AdminWallet:       adminWallet,
		AdminPasswordHash: string(hash),
		TokenExpiry:       "1h",
	}

	app := fiber.New()
	app.Post("/auth/login", handlers.Login)
	return app
}

func TestLogin(t *testing.T) {
	app := setupAuthTest(t)

	t.Run("Valid Credentials Issue Token", func(t *testing.T) {
		status, response := doRequest(t, app, "POST", "/auth/login", "", handlers.LoginRequest{
			Wallet: adminWallet, Password: "hunter2",
		})
		require.Equal(t, 200, status)
		assert.True(t, response.Success)

		data := response.Data.(map[string]interface{})
		signed := data["token"].(string)

		parsed, err := jwt.Parse(signed, func(*jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, adminWallet, claims["wallet"])
		assert.Equal(t, "admin", claims["role"])
	})

	t.Run("Wrong Password Gets 401", func(t *testing.T) {
		status, response := doRequest(t, app, "POST", "/auth/login", "", handlers.LoginRequest{
			Wallet: adminWallet, Password: "hunter3",
		})
		assert.Equal(t, 401, status)
		assert.Equal(t, "Invalid credentials", response.Error)
	})

	t.Run("Unknown Wallet Gets 401", func(t *testing.T) {
		status, _ := doRequest(t, app, "POST", "/auth/login", "", handlers.LoginRequest{
			Wallet: outsider, Password: "hunter2",
		})
		assert.Equal(t, 401, status)
	})
}
