package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr   string
	GinMode   string
	DBDSN     string
	JWTSecret string

	// WaafiPay merchant credentials. Defaults are the sandbox values; real
	// deployments must override them via env.
	WaafiURL         string
	WaafiMerchantUID string
	WaafiAPIUserID   string
	WaafiAPIKey      string
}

func LoadEnv() Env {
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	return Env{
		AppAddr:   getenv("APP_ADDR", ":8080"),
		GinMode:   strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:     getenv("DB_DSN", "root:@tcp(127.0.0.1:3306)/safarpay?parseTime=true&loc=Local&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"),
		JWTSecret: getenv("JWT_SECRET", "super-secret-key-change-me"),

		WaafiURL:         getenv("WAAFI_URL", "https://api.waafipay.net/asm"),
		WaafiMerchantUID: getenv("WAAFI_MERCHANT_UID", "M0910291"),
		WaafiAPIUserID:   getenv("WAAFI_API_USER_ID", "1000416"),
		WaafiAPIKey:      getenv("WAAFI_API_KEY", "API-675418888AHX"),
	}
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
