package app

import (
	"time"

	"github.com/venturematch/backend/internal/pkg/logger"
	"github.com/venturematch/backend/internal/utils"
)

type Config struct {
	Port         string
	JWTSecretKey string
	AuthRequired bool
	StoreTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	authRequired := utils.GetEnv("AUTH_REQUIRED", "false", log) == "true"
	storeTimeoutSeconds := utils.GetEnvAsInt("STORE_TIMEOUT_SECONDS", 5, log)
	return Config{
		Port:         port,
		JWTSecretKey: jwtSecretKey,
		AuthRequired: authRequired,
		StoreTimeout: time.Duration(storeTimeoutSeconds) * time.Second,
	}
}
