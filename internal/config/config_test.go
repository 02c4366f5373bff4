package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_PORT", "DB_DRIVER", "SESSION_SECRET", "SESSION_TTL", "APP_TIMEZONE", "SEED_DEMO", "DATABASE_URL", "IS_PROD"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, DefaultPort, cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, DefaultSessionSecret, cfg.SessionSecret)
	assert.Equal(t, 8*time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.SeedDemo)
	assert.False(t, cfg.IsProd)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9000")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("IS_PROD", "true")
	t.Setenv("SEED_DEMO", "false")

	cfg := LoadConfig()

	assert.Equal(t, "9000", cfg.AppPort)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.IsProd)
	assert.False(t, cfg.SeedDemo)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUser: "root", DBPassword: "pw", DBHost: "localhost", DBPort: "3306", DBName: "tabungan"}
	assert.Equal(t, "root:pw@tcp(localhost:3306)/tabungan?parseTime=true", cfg.DSN())

	cfg.DBDriver = "postgres"
	assert.Contains(t, cfg.DSN(), "dbname=tabungan")

	cfg.DBDriver = "sqlite"
	assert.Equal(t, "tabungan", cfg.DSN())

	cfg.DatabaseURL = "postgres://u:p@h/db"
	assert.Equal(t, "postgres://u:p@h/db", cfg.DSN())
}

func TestLocation_FallsBackToUTC(t *testing.T) {
	cfg := &Config{Timezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestLocation_ResolvesDefaultZone(t *testing.T) {
	cfg := &Config{Timezone: DefaultTimezone}
	loc := cfg.Location()

	assert.Equal(t, DefaultTimezone, loc.String())
	_, offset := time.Date(2024, 7, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 7*3600, offset)
}
