package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port              string
	JWTSecret         string
	DBPath            string
	AdminWallet       string
	AdminPasswordHash string
	LedgerAddress     string
	TokenName         string
	TokenSymbol       string
	TokenSupply       string
	TokenExpiry       string
}

var (
	AppConfig Config
)

func LoadConfig() {
	err := godotenv.Load()
	if err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	AppConfig = Config{
		Port:              getEnvOrDefault("PORT", "3000"),
		JWTSecret:         mustGetEnv("JWT_SECRET"),
		DBPath:            getEnvOrDefault("DB_PATH", "payroll.db"),
		AdminWallet:       mustGetEnv("ADMIN_WALLET"),
		AdminPasswordHash: mustGetEnv("ADMIN_PASSWORD_HASH"),
		LedgerAddress:     getEnvOrDefault("LEDGER_ADDRESS", "0x0000000000000000000000000000000000001337"),
		TokenName:         getEnvOrDefault("TOKEN_NAME", "SalaryToken"),
		TokenSymbol:       getEnvOrDefault("TOKEN_SYMBOL", "SAL"),
		TokenSupply:       getEnvOrDefault("TOKEN_SUPPLY", "1000000000000000000000000"),
		TokenExpiry:       getEnvOrDefault("TOKEN_EXPIRY", "24h"),
	}
}

func mustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatalf("Environment variable %s is required", key)
	}
	return value
}

func getEnvOrDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
