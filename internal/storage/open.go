package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mongolearn/lessons-api/internal/config"
)

// openers maps a driver name to its constructor. Adapter packages
// register themselves from init() via Register, which keeps this package
// free of imports on the driver packages (and of their dependency trees).
var openers = map[string]func(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error){}

// Register installs a driver constructor under the given name.
// Called from adapter init() functions; not safe for use after startup.
func Register(driver string, open func(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error)) {
	openers[driver] = open
}

// Open returns the backend selected by cfg.Storage.Driver. The caller
// must blank-import the adapter packages it wants available:
//
//	_ "github.com/mongolearn/lessons-api/internal/storage/mongodb"
//	_ "github.com/mongolearn/lessons-api/internal/storage/sqlite"
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error) {
	open, ok := openers[cfg.Storage.Driver]
	if !ok {
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}
	return open(ctx, cfg, log)
}

// EnsureDir creates the parent directory of a file path. SQLite needs
// this before first open; mongo ignores it.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}
