package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_FromEnvFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte(
		"JWT_SECRET=secret\nMONGODB_CONNECTION_URI=mongodb://localhost:27017\nMONGODB_DBNAME=rebootcrm_test\nCORS_ORIGINS=http://a.test, http://b.test\n",
	), 0o600))

	// godotenv does not override variables that are already set
	for _, k := range []string{"JWT_SECRET", "MONGODB_CONNECTION_URI", "MONGODB_DBNAME", "CORS_ORIGINS"} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	cfg := NewConfig(file)
	require.NotNil(t, cfg)
	t.Cleanup(func() {
		for _, k := range []string{"JWT_SECRET", "MONGODB_CONNECTION_URI", "MONGODB_DBNAME", "CORS_ORIGINS"} {
			_ = os.Unsetenv(k)
		}
	})

	assert.Equal(t, "secret", cfg.JwtSecret)
	assert.Equal(t, "rebootcrm_test", cfg.MongoDB_DBName)
	assert.Equal(t, "8080", cfg.Address)
	assert.Equal(t, "Asia/Kolkata", cfg.TimeZone)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins())
	assert.Equal(t, 72*time.Hour, cfg.TokenTTL())
}

func TestNewConfig_MissingRequired(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://localhost")
	t.Setenv("MONGODB_DBNAME", "x")

	assert.Nil(t, NewConfig(filepath.Join(t.TempDir(), "absent.env")))
}

func TestConfiguration_Location(t *testing.T) {
	cfg := &Configuration{TimeZone: "Asia/Kolkata"}
	assert.Equal(t, "Asia/Kolkata", cfg.Location().String())

	cfg.TimeZone = "Not/AZone"
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitList(" a, ,b,"))
	assert.Nil(t, SplitList(""))
}
