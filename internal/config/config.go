package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	env_utils "teamsync/internal/util/env"
	"teamsync/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting       bool
	DatabaseDsn     string            `env:"DATABASE_DSN" required:"true"`
	EnvMode         env_utils.EnvMode `env:"ENV_MODE"     required:"true"`
	BackendRootPath string
	ServerPort      string `env:"SERVER_PORT"  env-default:"4005"`
	AppBaseURL      string `env:"APP_BASE_URL" env-default:"http://localhost:4005"`
	// cache
	ValkeyHost     string `env:"VALKEY_HOST"     required:"true"`
	ValkeyPort     string `env:"VALKEY_PORT"     required:"true"`
	ValkeyUsername string `env:"VALKEY_USERNAME" required:"false"`
	ValkeyPassword string `env:"VALKEY_PASSWORD" required:"false"`
	ValkeyIsSsl    bool   `env:"VALKEY_IS_SSL"   env-default:"false"`
	// event bus, empty disables publishing
	NatsURL string `env:"NATS_URL" required:"false"`
	// tracing, empty disables export
	OtelExporterEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" required:"false"`
	// invitations
	InvitationTTLHours          int  `env:"INVITATION_TTL_HOURS"           env-default:"168"`
	InvitationRequireEmailMatch bool `env:"INVITATION_REQUIRE_EMAIL_MATCH" env-default:"false"`
	AcceptRateLimitPerSecond    int  `env:"ACCEPT_RATE_LIMIT_RPS"          env-default:"1"`
	AcceptRateLimitBurst        int  `env:"ACCEPT_RATE_LIMIT_BURST"        env-default:"10"`
}

func (e EnvVariables) InvitationTTL() time.Duration {
	if e.InvitationTTLHours <= 0 {
		return 7 * 24 * time.Hour
	}

	return time.Duration(e.InvitationTTLHours) * time.Hour
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	backendRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(backendRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(backendRoot)
		if parent == backendRoot {
			break
		}

		backendRoot = parent
	}

	env.BackendRootPath = backendRoot

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(backendRoot, ".env"),
	}

	var loaded bool
	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			loaded = true
			break
		}
	}

	// containers pass variables directly
	if !loaded {
		log.Warn("No .env file found, reading configuration from process environment")
	}

	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if env.DatabaseDsn == "" {
		log.Error("DATABASE_DSN is empty")
		os.Exit(1)
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.ValkeyHost == "" {
		log.Error("VALKEY_HOST is empty")
		os.Exit(1)
	}
	if env.ValkeyPort == "" {
		log.Error("VALKEY_PORT is empty")
		os.Exit(1)
	}

	if env.NatsURL == "" {
		log.Info("NATS_URL is empty, team events will not be published")
	}

	env.AppBaseURL = strings.TrimRight(env.AppBaseURL, "/")

	log.Info("Environment variables loaded successfully!")
}
