package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultAdminEmails is used when ADMIN_EMAILS is not set.
var DefaultAdminEmails = []string{
	"saifuldeennaser@gmail.com",
	"mostafaeladawy35@gmail.com",
	"mohand.ahmed201@gmail.com",
}

type ENV struct {
	DBDriver         string
	DBHost           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBPort           string
	Port             string
	AppAuthKey       string
	AppEncKey        string
	CSRFKey          string
	JWTSecret        string
	AdminEmails      []string
	NotifyWebhookURL string
	EmailHost        string
	EmailPort        string
	EmailUsername    string
	EmailPassword    string
	EmailFrom        string
	APP_ENV          string
}

func LoadEnv() ENV {

	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: No .env file found ")
	}

	env := ENV{
		DBDriver:         getenvDefault("DB_DRIVER", "mysql"),
		DBHost:           os.Getenv("DB_HOST"),
		DBUser:           os.Getenv("DB_USER"),
		DBPassword:       os.Getenv("DB_PASSWORD"),
		DBName:           os.Getenv("DB_NAME"),
		DBPort:           os.Getenv("DB_PORT"),
		Port:             getenvDefault("APP_PORT", ":8080"),
		AppAuthKey:       os.Getenv("APP_AUTH_KEY"),
		AppEncKey:        os.Getenv("APP_ENC_KEY"),
		CSRFKey:          os.Getenv("CSRF_KEY"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		AdminEmails:      ParseAdminEmails(os.Getenv("ADMIN_EMAILS")),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
		EmailHost:        os.Getenv("EMAIL_HOST"),
		EmailPort:        os.Getenv("EMAIL_PORT"),
		EmailUsername:    os.Getenv("EMAIL_USERNAME"),
		EmailPassword:    os.Getenv("EMAIL_PASSWORD"),
		EmailFrom:        os.Getenv("EMAIL_USERNAME"),
		APP_ENV:          getenvDefault("APP_ENV", "development"),
	}

	if !strings.HasPrefix(env.Port, ":") {
		env.Port = ":" + env.Port
	}

	return env
}

// ParseAdminEmails splits a comma separated allow-list. Entries are trimmed
// and lower-cased. An empty value yields DefaultAdminEmails.
func ParseAdminEmails(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		out := make([]string, len(DefaultAdminEmails))
		copy(out, DefaultAdminEmails)
		return out
	}

	var emails []string
	for _, part := range strings.Split(raw, ",") {
		email := strings.ToLower(strings.TrimSpace(part))
		if email != "" {
			emails = append(emails, email)
		}
	}
	return emails
}

func (e ENV) IsProduction() bool {
	return e.APP_ENV == "production"
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
