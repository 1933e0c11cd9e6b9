package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr        string
	GinMode        string
	DBDSN          string
	JWTSecret      string
	PaystackSecret string
	PaystackBase   string
	CORSOrigins    []string
}

func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: could not load .env: %v", err)
	}

	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = "campusbus-dev-secret-change-me"
	}

	paystackBase := strings.TrimSpace(os.Getenv("PAYSTACK_BASE_URL"))
	if paystackBase == "" {
		paystackBase = "https://api.paystack.co"
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv("CORS_ALLOWED_ORIGINS"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return Env{
		AppAddr:        appAddr,
		GinMode:        strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:          strings.TrimSpace(os.Getenv("DB_DSN")),
		JWTSecret:      jwtSecret,
		PaystackSecret: strings.TrimSpace(os.Getenv("PAYSTACK_SECRET_KEY")),
		PaystackBase:   paystackBase,
		CORSOrigins:    origins,
	}
}
