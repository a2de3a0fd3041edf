package core

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "examcell"

type (
	APIConfig struct {
		URL     string
		Timeout time.Duration
		Token   string // static token; skips the session store when set
	}

	SessionConfig struct {
		File string
	}

	Config struct {
		Env          string
		Build        string
		Debug        bool
		TestMode     bool
		AppName      string
		RollbarToken string
		Output       string
		API          APIConfig
		Session      SessionConfig
	}
)

// NewConfig loads the configuration from defaults, an optional `config/.env.<env>` file and the environment.
func NewConfig() (*Config, error) {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", false)
	conf.SetDefault("testMode", false)
	conf.SetDefault("appName", "Examcell")
	conf.SetDefault("build", "dev")
	conf.SetDefault("rollbarToken", "")
	conf.SetDefault("output", "json")
	conf.SetDefault("api.url", "http://localhost:8080/api")
	conf.SetDefault("api.timeout", 30*time.Second)
	conf.SetDefault("api.token", "")
	conf.SetDefault("session.file", defaultSessionFile())

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
		conf.SetDefault("debug", true)
	case "TEST":
		conf.SetDefault("testMode", true)
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "checking %s", dotEnvPath)
	}

	conf.SetEnvPrefix(envPrefix)
	conf.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	conf.AutomaticEnv()

	c := &Config{
		Env:          env,
		Build:        conf.GetString("build"),
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		AppName:      conf.GetString("appName"),
		RollbarToken: conf.GetString("rollbarToken"),
		Output:       CleanString(conf.GetString("output"), true /* lower */),
		API: APIConfig{
			URL:     strings.TrimRight(CleanString(conf.GetString("api.url")), "/"),
			Timeout: conf.GetDuration("api.timeout"),
			Token:   CleanString(conf.GetString("api.token")),
		},
		Session: SessionConfig{
			File: conf.GetString("session.file"),
		},
	}
	if c.API.URL == "" {
		return nil, errors.New("api.url must not be empty")
	}
	return c, nil
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".examcell", "session.json")
	}
	return filepath.Join(home, ".examcell", "session.json")
}
