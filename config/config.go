package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration holds the static settings needed to run the server and the CLI.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // listen port
	JwtSecret             string `env:"JWT_SECRET,required"`                        // HS256 signing secret
	TokenTTLHours         int    `env:"TOKEN_TTL_HOURS" envDefault:"72"`            // access token lifetime
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`            // connection string
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                    // database holding every collection
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`                // comma separated, * = all
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"`
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`            // 0 disables rate limiting
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`          // seconds
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`
	TimeZone              string `env:"TIMEZONE" envDefault:"Asia/Kolkata"`         // date filters and BDE id suffix
	MetricsEnabled        bool   `env:"METRICS_ENABLED" envDefault:"true"`          // expose /metrics
	CounterSyncMinutes    int    `env:"COUNTER_SYNC_MINUTES" envDefault:"60"`       // 0 disables the counter sync worker

	// Cloudinary
	CloudinaryCloudName string `env:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `env:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `env:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `env:"CLOUDINARY_FOLDER" envDefault:"rebootcrm"`

	// SMTP for website lead alerts (optional)
	SMTPHost         string `env:"SMTP_HOST"`
	SMTPPort         int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername     string `env:"SMTP_USERNAME"`
	SMTPPassword     string `env:"SMTP_PASSWORD"`
	SMTPFrom         string `env:"SMTP_FROM"`
	LeadNotifyEmails string `env:"LEAD_NOTIFY_EMAILS"` // comma separated recipients

	// Seed admin, created on first start when no admin exists
	AdminName     string `env:"ADMIN_NAME" envDefault:"Administrator"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminMobile   string `env:"ADMIN_MOBILE"`
	AdminPassword string `env:"ADMIN_PASSWORD"`

	// TLS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"`
	TLSCertFile string `env:"TLS_CERT_FILE"`
	TLSKeyFile  string `env:"TLS_KEY_FILE"`
}

// Location returns the configured time zone, falling back to UTC when it cannot be loaded.
func (c *Configuration) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TokenTTL returns the access token lifetime.
func (c *Configuration) TokenTTL() time.Duration {
	if c.TokenTTLHours <= 0 {
		return 72 * time.Hour
	}
	return time.Duration(c.TokenTTLHours) * time.Hour
}

// CORSOrigins splits CORS_ORIGINS into trimmed entries.
func (c *Configuration) CORSOrigins() []string {
	if strings.TrimSpace(c.CORS_Origins) == "*" {
		return []string{"*"}
	}
	return SplitList(c.CORS_Origins)
}

// LeadRecipients splits LEAD_NOTIFY_EMAILS into trimmed entries.
func (c *Configuration) LeadRecipients() []string {
	return SplitList(c.LeadNotifyEmails)
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnvPath walks up from the working directory looking for config/env/<GO_ENV>.env.
func getEnvPath() string {
	goEnv := os.Getenv("GO_ENV")
	if goEnv == "" {
		goEnv = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		fmt.Printf("cannot resolve working directory: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", goEnv))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig loads the env file (if any) and parses the configuration from the
// environment. Explicit files override the GO_ENV lookup. Returns nil on failure; the
// logger may not be ready yet, so problems are printed.
func NewConfig(files ...string) *Configuration {
	if len(files) == 0 {
		if envPath := getEnvPath(); envPath != "" {
			files = []string{envPath}
		}
	}

	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			fmt.Printf("env file %s not found, using process environment\n", f)
			continue
		}
		if err := godotenv.Load(f); err != nil {
			fmt.Printf("cannot load env file %s: %v\n", f, err)
			return nil
		}
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("config parse error: %+v\n", err)
		return nil
	}

	return &cfg
}
