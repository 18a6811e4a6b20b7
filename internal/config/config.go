package config

import (
	"os"
	"strconv"
)

type Config struct {
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	GinMode    string
	Port       string

	// RSA keys for JWT signing. Raw PEM strings take precedence over
	// file paths; if neither is set an ephemeral keypair is generated.
	RSAPrivateKey     string
	RSAPublicKey      string
	RSAPrivateKeyPath string
	RSAPublicKeyPath  string

	// Token lifetime in milliseconds.
	JWTTTLMillis int64
}

func Load() *Config {
	return &Config{
		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		DBHost:            getEnv("DB_HOST", "localhost"),
		DBPort:            getEnv("DB_PORT", "5432"),
		DBUser:            getEnv("DB_USER", "taskuser"),
		DBPassword:        getEnv("DB_PASSWORD", "taskpassword"),
		DBName:            getEnv("DB_NAME", "task_manager"),
		GinMode:           getEnv("GIN_MODE", "debug"),
		Port:              getEnv("PORT", "8080"),
		RSAPrivateKey:     getEnv("RSA_PRIVATE_KEY", ""),
		RSAPublicKey:      getEnv("RSA_PUBLIC_KEY", ""),
		RSAPrivateKeyPath: getEnv("RSA_PRIVATE_KEY_PATH", "certs/private.pem"),
		RSAPublicKeyPath:  getEnv("RSA_PUBLIC_KEY_PATH", "certs/public.pem"),
		JWTTTLMillis:      getEnvInt64("JWT_TTL_MS", 86400000),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
