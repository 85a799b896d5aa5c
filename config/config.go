package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration loaded from environment variables
// Provide sane defaults for local development.
type Config struct {
	AppName string
	Env     string // development, staging, production
	Port    string
	GinMode string

	// LogLevel overrides the env default (debug in development, info otherwise)
	LogLevel string

	// Storage driver: mongo or memory
	StoreDriver string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoTimeout  time.Duration
	MigrationsDir string

	// JWT
	JWTSecret string
	TokenTTL  time.Duration

	// Bootstrapping
	AdminEmail    string
	AdminPassword string
	SeedCatalog   bool

	// Uploads
	UploadsDir        string
	UploadMaxBytes    int64
	PublicUploadsPath string

	// Google Cloud Storage; when GCSBucket is empty images are kept on local disk
	GCSBucket              string
	GCSCredentialsJSONPath string // optional; if empty, Application Default Credentials are used

	// Redis (token denylist). Empty address disables it.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// CORS
	CORSAllowedOrigins string // comma-separated, empty allows all

	// Elasticsearch. Empty address list disables product search.
	ElasticsearchAddrs string // comma-separated
	ElasticsearchUser  string
	ElasticsearchPass  string
	ESProductsIndex    string

	// RabbitMQ
	RabbitMQURL        string
	RabbitMQOrderQueue string

	// Mailgun
	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string

	// Company/Links for emails
	CompanyName string
	LogoURL     string
	SupportURL  string

	// Order notification toggle
	MailSendEnabled bool

	// Prometheus /metrics
	MetricsEnabled bool

	// HTTP access log toggle
	HTTPLogEnabled bool
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %v, using default %v", key, err, def)
			return def
		}
		return b
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("invalid int for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getint64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			log.Printf("invalid int64 for %s: %v, using default %d", key, err, def)
			return def
		}
		return i
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			log.Printf("invalid duration for %s: %v, using default %v", key, err, def)
			return def
		}
		return d
	}
	return def
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		AppName: getenv("APP_NAME", "gadget-store-api"),
		Env:     getenv("APP_ENV", "development"),
		Port:    getenv("PORT", "5000"),
		GinMode: getenv("GIN_MODE", "release"),

		LogLevel: strings.ToLower(getenv("LOG_LEVEL", "")),

		StoreDriver: strings.ToLower(getenv("STORE_DRIVER", "mongo")),

		// ATLAS_URI takes precedence to stay compatible with hosted deployments
		MongoURI:      getenv("ATLAS_URI", getenv("MONGO_URI", "mongodb://localhost:27017")),
		MongoDB:       getenv("MONGO_DB", "gadgetstore"),
		MongoTimeout:  getdur("MONGO_TIMEOUT", 10*time.Second),
		MigrationsDir: getenv("MIGRATIONS_DIR", "db/migrations"),

		JWTSecret: getenv("JWT_SECRET", "change-this-secret"),
		TokenTTL:  getdur("JWT_TTL", 7*24*time.Hour),

		AdminEmail:    strings.ToLower(strings.TrimSpace(getenv("ADMIN_EMAIL", "admin@gadgetgalore.ph"))),
		AdminPassword: getenv("ADMIN_PASSWORD", "Admin@12345"),
		SeedCatalog:   getbool("SEED_CATALOG", true),

		UploadsDir:        getenv("UPLOADS_DIR", "uploads"),
		UploadMaxBytes:    getint64("UPLOAD_MAX_BYTES", 5*1024*1024),
		PublicUploadsPath: getenv("PUBLIC_UPLOADS_PATH", "/uploads"),

		GCSBucket:              getenv("GCS_BUCKET", ""),
		GCSCredentialsJSONPath: getenv("GCS_CREDENTIALS_JSON", ""),

		RedisAddr:     getenv("REDIS_ADDR", ""),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getint("REDIS_DB", 0),

		CORSAllowedOrigins: getenv("CORS_ALLOWED_ORIGINS", ""),

		ElasticsearchAddrs: getenv("ELASTICSEARCH_ADDRS", ""),
		ElasticsearchUser:  getenv("ELASTICSEARCH_USERNAME", ""),
		ElasticsearchPass:  getenv("ELASTICSEARCH_PASSWORD", ""),
		ESProductsIndex:    getenv("ES_PRODUCTS_INDEX", "products"),

		RabbitMQURL:        getenv("RABBITMQ_URL", ""),
		RabbitMQOrderQueue: getenv("RABBITMQ_ORDER_QUEUE", "orders"),

		MailgunDomain: getenv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey: getenv("MAILGUN_API_KEY", ""),
		MailgunSender: getenv("MAILGUN_SENDER", ""),

		CompanyName: getenv("COMPANY_NAME", "Gadget Galore"),
		LogoURL:     getenv("LOGO_URL", ""),
		SupportURL:  getenv("SUPPORT_URL", ""),

		MailSendEnabled: getbool("MAIL_SEND_ENABLED", false),

		MetricsEnabled: getbool("METRICS_ENABLED", true),

		// HTTP access log toggle (default false; enable when needed)
		HTTPLogEnabled: getbool("HTTP_LOG_ENABLED", false),
	}
}

// CORSOrigins returns the allowed origins as slice
func (c *Config) CORSOrigins() []string {
	return splitList(c.CORSAllowedOrigins)
}

// ESAddrs returns Elasticsearch addresses as a slice
func (c *Config) ESAddrs() []string {
	return splitList(c.ElasticsearchAddrs)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			res = append(res, p)
		}
	}
	return res
}
