// Package config handles loading and parsing application configuration.
// It supports two sources (in priority order):
//  1. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  2. A command-line flag:      --config=/path/to/config.yaml
//
// The parsed values are returned as a *Config pointer so the struct is
// shared by reference rather than copied everywhere.
package config

import (
	"flag"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Storage drivers the service knows how to open.
const (
	DriverMongoDB = "mongodb"
	DriverSQLite  = "sqlite"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden
// by the corresponding environment variable (env:"...").
//
// env-required:"true" means the app refuses to start if that value is
// missing — better to crash at boot than silently use a wrong default.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-required:"true"`

	// Storage selects and configures the database backend.
	Storage Storage `yaml:"storage"`

	// HTTPServer is embedded so its fields are reachable directly on
	// Config after promotion: cfg.HTTPServer.Addr.
	HTTPServer `yaml:"http_server"`
}

// Storage holds backend selection plus per-driver settings. Only the
// section for the selected driver needs to be filled in.
type Storage struct {
	// Driver is "mongodb" (the production store) or "sqlite" (daemonless,
	// for local development).
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"mongodb"`

	// URI is the MongoDB connection string, e.g. "mongodb://localhost:27017".
	URI string `yaml:"uri" env:"MONGODB_URI" env-default:"mongodb://localhost:27017"`

	// Database is the MongoDB database name.
	Database string `yaml:"database" env:"MONGODB_DATABASE" env-default:"lessons"`

	// Path is the SQLite file path; only read when Driver is "sqlite".
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"./data/lessons.db"`
}

// HTTPServer holds settings specific to the HTTP server.
// Nested under http_server: in the YAML file.
type HTTPServer struct {
	// Addr is the TCP address the server listens on, e.g. "localhost:8082".
	Addr string `yaml:"address" env:"HTTP_SERVER_ADDR" env-required:"true"`
}

// MustLoad reads, validates, and returns the application config.
//
// "Must" follows the Go convention: the function is allowed to fatal on
// failure, so if it returns, the config is valid.
func MustLoad() *Config {
	var configPath string

	// Source 1: environment variable — the standard way to pass config
	// into a container.
	configPath = os.Getenv("CONFIG_PATH")

	// Source 2: command-line flag — handy when running locally:
	//   go run ./cmd/lessons-api --config=config/local.yaml
	if configPath == "" {
		flags := flag.String("config", "", "Path to the configuration YAML file")
		flag.Parse()
		configPath = *flags
	}

	if configPath == "" {
		log.Fatal("config path is not set: use --config flag or CONFIG_PATH env var")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	// cleanenv reads the YAML file, then overlays env:"..." tagged
	// variables and enforces env-required constraints.
	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
