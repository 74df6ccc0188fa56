package configs

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func loadEnv(key string) string {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, relying on process environment")
	}
	return os.Getenv(key)
}

func EnvMongoURI() string {
	uri := loadEnv("MONGOURI")
	if uri == "" {
		logrus.Fatal("MONGOURI is not set")
	}
	return uri
}

func EnvDBName() string {
	if name := loadEnv("MONGO_DBNAME"); name != "" {
		return name
	}
	return "restaurantApi"
}

func EnvListenAddr() string {
	if addr := loadEnv("LISTEN_ADDR"); addr != "" {
		return addr
	}
	return ":3000"
}

func EnvJWTSecret() string {
	return loadEnv("JWT_SECRET")
}

func EnvLogLevel() string {
	if level := loadEnv("LOG_LEVEL"); level != "" {
		return level
	}
	return "info"
}

func EnvRazorpayKeyId() string {
	return loadEnv("RAZORPAY_KEY_ID")
}

func EnvRazorpayKeySecret() string {
	return loadEnv("RAZORPAY_KEY_SECRET")
}
