package handlers

import (
	"time"

	"dapp_payroll/config"
	"dapp_payroll/types"
	"dapp_payroll/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type LoginRequest struct {
	Wallet   string `json:"wallet" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login issues a JWT carrying the admin's wallet. The token only
// authenticates; whether the wallet may mutate anything is decided by
// the ledger's role sets on every call.
func Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInvalidInput,
		})
	}

	if req.Wallet != config.AppConfig.AdminWallet {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}
	if err := bcrypt.CompareHashAndPassword(
		[]byte(config.AppConfig.AdminPasswordHash), []byte(req.Password)); err != nil {
		return c.Status(401).JSON(types.APIResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
	}

	expiry, err := time.ParseDuration(config.AppConfig.TokenExpiry)
	if err != nil {
		expiry = 24 * time.Hour
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"wallet": req.Wallet,
		"role":   "admin",
		"exp":    time.Now().Add(expiry).Unix(),
	})
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		utils.Logger.Error("Failed to sign token", zap.Error(err))
		return c.Status(500).JSON(types.APIResponse{
			Success: false,
			Error:   types.ErrInternalError,
		})
	}

	return c.JSON(types.APIResponse{
		Success: true,
		Data: fiber.Map{
			"token": signed,
		},
	})
}
