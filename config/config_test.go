package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"ATLAS_URI", "MONGO_URI", "JWT_TTL", "STORE_DRIVER", "PORT", "UPLOAD_MAX_BYTES", "ADMIN_EMAIL"} {
		t.Setenv(k, "")
	}
	cfg := Load()

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, "mongo", cfg.StoreDriver)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.Equal(t, "admin@gadgetgalore.ph", cfg.AdminEmail)
	assert.Empty(t, cfg.ESAddrs())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://mongo:27017")
	t.Setenv("ATLAS_URI", "mongodb+srv://cluster.example.net")
	t.Setenv("STORE_DRIVER", "Memory")
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("ADMIN_EMAIL", "  Boss@Shop.PH ")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("MAIL_SEND_ENABLED", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()
	assert.Equal(t, "mongodb+srv://cluster.example.net", cfg.MongoURI)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "boss@shop.ph", cfg.AdminEmail)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.MailSendEnabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins())
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("JWT_TTL", "seven days")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("METRICS_ENABLED", "maybe")
	t.Setenv("UPLOAD_MAX_BYTES", "lots")

	cfg := Load()
	assert.Equal(t, 7*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.MetricsEnabled)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
}
