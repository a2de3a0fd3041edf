package core

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	for key, val := range env {
		old, ok := os.LookupEnv(key)
		require.NoError(t, os.Setenv(key, val))
		key := key
		t.Cleanup(func() {
			if ok {
				_ = os.Setenv(key, old)
			} else {
				_ = os.Unsetenv(key)
			}
		})
	}
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setEnv(t, map[string]string{"ENV": ""})
		conf, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "DEV", conf.Env)
		assert.True(t, conf.Debug)
		assert.False(t, conf.TestMode)
		assert.Equal(t, "json", conf.Output)
		assert.Equal(t, "http://localhost:8080/api", conf.API.URL)
		assert.Equal(t, 30*time.Second, conf.API.Timeout)
		assert.NotEmpty(t, conf.Session.File)
	})

	t.Run("environment", func(t *testing.T) {
		setEnv(t, map[string]string{
			"ENV":                   "test",
			"EXAMCELL_API_URL":      " https://examcell.test/api/ ",
			"EXAMCELL_API_TIMEOUT":  "5s",
			"EXAMCELL_API_TOKEN":    "static",
			"EXAMCELL_OUTPUT":       "YAML",
			"EXAMCELL_SESSION_FILE": "/tmp/examcell/session.json",
		})
		conf, err := NewConfig()
		require.NoError(t, err)
		assert.Equal(t, "TEST", conf.Env)
		assert.True(t, conf.TestMode)
		assert.False(t, conf.Debug)
		assert.Equal(t, "https://examcell.test/api", conf.API.URL)
		assert.Equal(t, 5*time.Second, conf.API.Timeout)
		assert.Equal(t, "static", conf.API.Token)
		assert.Equal(t, "yaml", conf.Output)
		assert.Equal(t, "/tmp/examcell/session.json", conf.Session.File)
	})

	t.Run("empty url", func(t *testing.T) {
		setEnv(t, map[string]string{"ENV": "test", "EXAMCELL_API_URL": " / "})
		_, err := NewConfig()
		assert.EqualError(t, err, "api.url must not be empty")
	})
}
