package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	dataio "github.com/geniass/price-tracker/pkg/io"
	"github.com/geniass/price-tracker/pkg/scraper"
)

// Environment variables read by FromEnv. The command line options use the
// same names.
const (
	EnvDataFile  = "PRICETRACKER_DATA_FILE"
	EnvUserAgent = "PRICETRACKER_USER_AGENT"
	EnvTimeout   = "PRICETRACKER_TIMEOUT"
	EnvNoColor   = "NO_COLOR"
	EnvVerbose   = "PRICETRACKER_VERBOSE"
)

type Config struct {
	DataFile  string
	UserAgent string
	Timeout   time.Duration
	NoColor   bool
	Verbose   bool
}

func Default() Config {
	return Config{
		DataFile:  dataio.DefaultDataFile,
		UserAgent: scraper.DefaultUserAgent,
		Timeout:   scraper.DefaultTimeout,
	}
}

// LoadDotEnv loads variables from the given files (".env" when none are
// given) without overriding ones that are already set. Missing files are
// ignored.
func LoadDotEnv(filenames ...string) error {
	if len(filenames) == 0 {
		filenames = []string{".env"}
	}
	for _, name := range filenames {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", name, err)
		}
	}
	return nil
}

// FromEnv returns the defaults overridden by any PRICETRACKER_* variables.
func FromEnv() (Config, error) {
	cfg := Default()

	if v := os.Getenv(EnvDataFile); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv(EnvUserAgent); v != "" {
		cfg.UserAgent = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	// any value disables colour, see https://no-color.org
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.NoColor = true
	}
	if v := os.Getenv(EnvVerbose); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		cfg.Verbose = b
	}

	return cfg, nil
}
