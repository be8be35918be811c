package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBDriver string
	DBDSN    string

	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	JWTTTL        time.Duration
	AdminUser     string
	AdminPassword string

	SMTPHost      string
	SMTPPort      int
	SMTPUsername  string
	SMTPPassword  string
	MailSender    string
	OperatorEmail string

	CloudinaryURL string

	ChatRateLimit  int
	ExpiryInterval time.Duration
	LogLevel       string
}

// LoadEnv đọc file .env nếu có; thiếu file thì dùng biến môi trường sẵn có.
func LoadEnv(files ...string) error {
	err := godotenv.Load(files...)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func Load() Config {
	return Config{
		Port:           getEnv("PORT", "8083"),
		DBDriver:       getEnv("DB_DRIVER", "sqlite"),
		DBDSN:          os.Getenv("DB_DSN"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:      getEnv("JWT_SECRET", "change-me"),
		JWTTTL:         time.Duration(getInt("JWT_TTL_MINUTES", 60*24)) * time.Minute,
		AdminUser:      getEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:  getEnv("ADMIN_PASSWORD", "admin123"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getInt("SMTP_PORT", 587),
		SMTPUsername:   os.Getenv("SMTP_USERNAME"),
		SMTPPassword:   os.Getenv("SMTP_PASSWORD"),
		MailSender:     os.Getenv("MAIL_SENDER"),
		OperatorEmail:  getEnv("OPERATOR_EMAIL", "contact@coralbayhotel.com"),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		ChatRateLimit:  getInt("CHAT_RATE_LIMIT", 30),
		ExpiryInterval: time.Duration(getInt("EXPIRY_INTERVAL_HOURS", 24)) * time.Hour,
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
