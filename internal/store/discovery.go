package store

import (
	"os"
	"path/filepath"

	"github.com/nitcli/nit/internal/nerr"
	"github.com/spf13/viper"
)

// DBFileName is the on-disk database file name searched for during walk-up
// discovery and created by init.
const DBFileName = ".nit.db"

// EnvVar is the environment variable consulted after --db and before
// walk-up discovery.
const EnvVar = "NIT_DB_PATH"

func init() {
	viper.SetEnvPrefix("")
	_ = viper.BindEnv("db_path", EnvVar)
}

// Discover resolves the database path per spec §4.1: explicit flag, then
// NIT_DB_PATH, then walking up from the current directory looking for
// .nit.db. Returns *nerr.Error{Kind: NoDatabase} if nothing is found.
func Discover(dbFlag string) (string, error) {
	if dbFlag != "" {
		return dbFlag, nil
	}
	if envPath := viper.GetString("db_path"); envPath != "" {
		return envPath, nil
	}

	dir, err := os.Getwd()
	if err != nil {
		return "", nerr.IoErrorf(err, "failed to get working directory")
	}
	for {
		candidate := filepath.Join(dir, DBFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", nerr.NoDatabasef()
}

// DefaultInitPath returns the path init creates when no override is given:
// NIT_DB_PATH if set, else .nit.db in the current directory.
func DefaultInitPath(dbFlag string) (string, error) {
	if dbFlag != "" {
		return dbFlag, nil
	}
	if envPath := os.Getenv(EnvVar); envPath != "" {
		return envPath, nil
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", nerr.IoErrorf(err, "failed to get working directory")
	}
	return filepath.Join(dir, DBFileName), nil
}
