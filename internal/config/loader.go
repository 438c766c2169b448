package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"gopkg.in/yaml.v3"

	"github.com/muralisunil/event-elegance-landing/internal/logging"
	"github.com/muralisunil/event-elegance-landing/internal/persistence/sqlstore"
)

// DefaultSQLiteDSN is used when the SQLite driver is selected without a DSN.
const DefaultSQLiteDSN = "file:eventplanner.db"

// Config captures the settings of the event planner service.
type Config struct {
	HTTPPort int
	DBDriver sqlstore.Dialect
	DBDSN    string
	// Timezone names the zone that decides which calendar day is today.
	Timezone          string
	Location          *time.Location
	StrictRoomBooking bool
	LogLevel          string
	WarningCacheTTL   time.Duration
}

// fileConfig mirrors the optional YAML file. Values are kept as text so they
// go through the same parsing as environment variables.
type fileConfig struct {
	HTTPPort          string `yaml:"http_port"`
	DBDriver          string `yaml:"db_driver"`
	DBDSN             string `yaml:"db_dsn"`
	Timezone          string `yaml:"timezone"`
	StrictRoomBooking string `yaml:"strict_room_booking"`
	LogLevel          string `yaml:"log_level"`
	WarningCacheTTL   string `yaml:"warning_cache_ttl"`
}

// Environment variable names.
const (
	EnvConfigFile        = "EVENTPLAN_CONFIG_FILE"
	EnvHTTPPort          = "EVENTPLAN_HTTP_PORT"
	EnvDBDriver          = "EVENTPLAN_DB_DRIVER"
	EnvDBDSN             = "EVENTPLAN_DB_DSN"
	EnvTimezone          = "EVENTPLAN_TIMEZONE"
	EnvStrictRoomBooking = "EVENTPLAN_STRICT_ROOM_BOOKING"
	EnvLogLevel          = "EVENTPLAN_LOG_LEVEL"
	EnvWarningCacheTTL   = "EVENTPLAN_WARNING_CACHE_TTL"
)

// Load parses configuration from the optional YAML file named by
// EVENTPLAN_CONFIG_FILE and then from the process environment, which wins.
//
// Missing and invalid keys are collected and reported together.
func Load() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	var file fileConfig
	if path := strings.TrimSpace(getenv(EnvConfigFile)); path != "" {
		var err error
		file, err = readFile(path)
		if err != nil {
			return Config{}, err
		}
	}

	value := func(env, fromFile string) string {
		if v := strings.TrimSpace(getenv(env)); v != "" {
			return v
		}
		return strings.TrimSpace(fromFile)
	}

	cfg := Config{
		HTTPPort:        8080,
		DBDriver:        sqlstore.DialectSQLite,
		Timezone:        "UTC",
		Location:        time.UTC,
		LogLevel:        "info",
		WarningCacheTTL: 30 * time.Second,
	}

	missing := make([]string, 0, 1)
	invalid := make([]string, 0, 2)

	if portValue := value(EnvHTTPPort, file.HTTPPort); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 || port > 65535 {
			invalid = append(invalid, EnvHTTPPort)
		} else {
			cfg.HTTPPort = port
		}
	}

	if driverValue := value(EnvDBDriver, file.DBDriver); driverValue != "" {
		driver, err := sqlstore.ParseDialect(driverValue)
		if err != nil {
			invalid = append(invalid, EnvDBDriver)
		} else {
			cfg.DBDriver = driver
		}
	}

	cfg.DBDSN = value(EnvDBDSN, file.DBDSN)
	if cfg.DBDSN == "" {
		if cfg.DBDriver == sqlstore.DialectPostgres {
			missing = append(missing, EnvDBDSN)
		} else {
			cfg.DBDSN = DefaultSQLiteDSN
		}
	}

	if zone := value(EnvTimezone, file.Timezone); zone != "" {
		loc, err := time.LoadLocation(zone)
		if err != nil {
			invalid = append(invalid, EnvTimezone)
		} else {
			cfg.Timezone = zone
			cfg.Location = loc
		}
	}

	if strictValue := value(EnvStrictRoomBooking, file.StrictRoomBooking); strictValue != "" {
		strict, err := strconv.ParseBool(strictValue)
		if err != nil {
			invalid = append(invalid, EnvStrictRoomBooking)
		} else {
			cfg.StrictRoomBooking = strict
		}
	}

	if levelValue := value(EnvLogLevel, file.LogLevel); levelValue != "" {
		if _, err := logging.ParseLevel(levelValue); err != nil {
			invalid = append(invalid, EnvLogLevel)
		} else {
			cfg.LogLevel = strings.ToLower(levelValue)
		}
	}

	if ttlValue := value(EnvWarningCacheTTL, file.WarningCacheTTL); ttlValue != "" {
		ttl, err := time.ParseDuration(ttlValue)
		if err != nil || ttl <= 0 {
			invalid = append(invalid, EnvWarningCacheTTL)
		} else {
			cfg.WarningCacheTTL = ttl
		}
	}

	var errs []error
	if len(missing) > 0 {
		errs = append(errs, fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", ")))
	}
	if len(invalid) > 0 {
		errs = append(errs, fmt.Errorf("invalid configuration values: %s", strings.Join(invalid, ", ")))
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

func readFile(path string) (fileConfig, error) {
	var file fileConfig
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return file, fmt.Errorf("config file %s does not exist", path)
		}
		return file, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}
