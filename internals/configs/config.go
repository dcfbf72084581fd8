package configs

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	Env      string
	LogLevel string
	Release  string

	DatabaseURL string
	DBHost      string
	DBPort      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBSSLMode   string

	JWTSecret        string
	JWTRefreshSecret string
	AccessTokenTTL   time.Duration
	RefreshTokenTTL  time.Duration
	BlacklistCron    string

	GoogleClientID string

	OpenAIAPIKey  string
	OpenAIBaseURL string
	OpenAIModel   string
	LLMTimeout    time.Duration

	PdflatexBin     string
	PdftoppmBin     string
	RenderWorkDir   string
	RenderTimeout   time.Duration
	PreviewMaxWidth int

	SentryDSN      string
	CorsOrigins    []string
	UploadMaxMB    int
	RequestTimeout time.Duration

	SeedOnStart   bool
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// =======================
// ENV LOADER
// =======================
func LoadEnv() Config {
	if os.Getenv("APP_ENV") != "prod" {
		if err := godotenv.Load(); err != nil {
			log.Println("no .env file found, using system environment")
		}
	}

	cfg := Config{
		Port:     GetEnv("PORT", "8000"),
		Env:      GetEnv("APP_ENV", "dev"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		Release:  GetEnv("APP_RELEASE", "dev"),

		DatabaseURL: GetEnv("DATABASE_URL"),
		DBHost:      GetEnv("DB_HOST", "localhost"),
		DBPort:      GetEnv("DB_PORT", "5432"),
		DBUser:      GetEnv("DB_USER", "postgres"),
		DBPassword:  GetEnv("DB_PASSWORD"),
		DBName:      GetEnv("DB_NAME", "copo"),
		DBSSLMode:   GetEnv("DB_SSLMODE", "disable"),

		JWTSecret:        GetEnv("JWT_SECRET"),
		JWTRefreshSecret: GetEnv("JWT_REFRESH_SECRET"),
		AccessTokenTTL:   getDuration("ACCESS_TOKEN_TTL", 24*time.Hour),
		RefreshTokenTTL:  getDuration("REFRESH_TOKEN_TTL", 7*24*time.Hour),
		BlacklistCron:    GetEnv("TOKEN_BLACKLIST_CRON", "@every 6h"),

		GoogleClientID: GetEnv("GOOGLE_CLIENT_ID"),

		OpenAIAPIKey:  GetEnv("OPENAI_API_KEY"),
		OpenAIBaseURL: GetEnv("OPENAI_BASE_URL"),
		OpenAIModel:   GetEnv("OPENAI_MODEL", "gpt-4o-mini"),
		LLMTimeout:    getDuration("LLM_TIMEOUT", 60*time.Second),

		PdflatexBin:     GetEnv("PDFLATEX_BIN", "pdflatex"),
		PdftoppmBin:     GetEnv("PDFTOPPM_BIN", "pdftoppm"),
		RenderWorkDir:   GetEnv("RENDER_WORKDIR", os.TempDir()),
		RenderTimeout:   getDuration("RENDER_TIMEOUT", 30*time.Second),
		PreviewMaxWidth: getInt("PREVIEW_MAX_WIDTH", 1240),

		SentryDSN:      GetEnv("SENTRY_DSN"),
		CorsOrigins:    splitList(GetEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		UploadMaxMB:    getInt("UPLOAD_MAX_MB", 20),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 90*time.Second),

		SeedOnStart:   getBool("SEED_ON_START", false),
		AdminUsername: GetEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    GetEnv("ADMIN_EMAIL", "admin@copo.local"),
		AdminPassword: GetEnv("ADMIN_PASSWORD"),
	}

	if cfg.JWTSecret == "" {
		log.Println("JWT_SECRET is not set")
	}
	if cfg.JWTRefreshSecret == "" {
		log.Println("JWT_REFRESH_SECRET is not set")
	}
	return cfg
}

// DSN prefers DATABASE_URL and falls back to the DB_* parts.
func (c Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=copo",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

func (c Config) IsProd() bool { return strings.EqualFold(c.Env, "prod") }

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if (!exists || value == "") && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid duration for %s=%q, using %s", key, v, def)
		return def
	}
	return d
}

func getInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
