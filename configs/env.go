package configs

import (
	"os"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var loadOnce sync.Once

// loadEnv reads the .env file once. A missing file is fine in production
// where variables come from the real environment.
func loadEnv() {
	loadOnce.Do(func() {
		if err := godotenv.Load(); err != nil {
			logrus.Debug("no .env file found, using process environment")
		}
	})
}

func getEnv(key, fallback string) string {
	loadEnv()
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func EnvMongoURI() string {
	loadEnv()
	uri := os.Getenv("MONGOURI")
	if uri == "" {
		logrus.Fatal("MONGOURI is not set")
	}
	return uri
}

func EnvDBName() string {
	return getEnv("DB_NAME", "mrittika")
}

func EnvPort() string {
	return getEnv("PORT", "5000")
}

func EnvJWTSecret() string {
	loadEnv()
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		logrus.Fatal("JWT_SECRET is not set")
	}
	return secret
}

func EnvSMTPHost() string {
	return getEnv("SMTP_HOST", "smtp.gmail.com")
}

func EnvSMTPPort() string {
	return getEnv("SMTP_PORT", "587")
}

func EnvSMTPEmail() string {
	return getEnv("SMTP_EMAIL", "")
}

func EnvSMTPPassword() string {
	return getEnv("SMTP_PASSWORD", "")
}

func EnvAdminEmail() string {
	return getEnv("ADMIN_EMAIL", "")
}

// EnvKafkaBrokers returns the broker list for the order event stream.
// Empty disables event publishing.
func EnvKafkaBrokers() string {
	return getEnv("KAFKA_BROKERS", "")
}

func EnvKafkaTopic() string {
	return getEnv("KAFKA_ORDER_TOPIC", "order-events")
}

func EnvUploadDir() string {
	return getEnv("UPLOAD_DIR", "uploads")
}

// EnvPaymentSecret signs payment callback payloads.
func EnvPaymentSecret() string {
	return getEnv("PAYMENT_CALLBACK_SECRET", "")
}
