package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/GustavoCaso/expensetrace/internal/logger"
)

// Category assigns Name to imported expenses whose description matches
// Pattern.
type Category struct {
	Name    string `toml:"name" yaml:"name"`
	Pattern string `toml:"pattern" yaml:"pattern"`
}

// Config is read from a TOML or YAML file. Budgets are monthly amounts per
// category.
type Config struct {
	DataFile   string             `toml:"data_file" yaml:"data_file"`
	DB         string             `toml:"db" yaml:"db"`
	Logger     logger.Config      `toml:"logger" yaml:"logger"`
	Categories []string           `toml:"categories" yaml:"categories"`
	Budgets    map[string]float64 `toml:"budgets" yaml:"budgets"`
	Rules      []Category         `toml:"rules" yaml:"rules"`
	NoColor    bool               `toml:"no_color" yaml:"no_color"`
}

const (
	defaultDataFile  = "expenses.csv"
	defaultDBFile    = "expensetrace.db"
	defaultLogLevel  = logger.LevelInfo
	defaultLogFormat = logger.FormatText
	defaultLogOutput = "stderr"
)

// DefaultCategories are suggested by the interactive shell when the
// configuration does not list any.
var DefaultCategories = []string{
	"Food", "Transport", "Utilities", "Rent", "Entertainment",
	"Health", "Education", "Shopping", "Other",
}

type UnsupportedFormatError struct {
	Path string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported configuration format %q: use .toml, .yml or .yaml", filepath.Ext(e.Path))
}

func (c *Config) setDefaults() {
	if c.DataFile == "" {
		c.DataFile = defaultDataFile
	}
	if c.DB == "" {
		c.DB = defaultDBFile
	}
	if c.Logger.Level == "" {
		c.Logger.Level = defaultLogLevel
	}
	if c.Logger.Format == "" {
		c.Logger.Format = defaultLogFormat
	}
	if c.Logger.Output == "" {
		c.Logger.Output = defaultLogOutput
	}
	if len(c.Categories) == 0 {
		c.Categories = append([]string(nil), DefaultCategories...)
	}
}

func (c *Config) parseEnv() {
	if data := os.Getenv("EXPENSETRACE_DATA"); data != "" {
		c.DataFile = data
	}

	if db := os.Getenv("EXPENSETRACE_DB"); db != "" {
		c.DB = db
	}

	if level := os.Getenv("EXPENSETRACE_LOG_LEVEL"); level != "" {
		c.Logger.Level = logger.Level(level)
	}

	if format := os.Getenv("EXPENSETRACE_LOG_FORMAT"); format != "" {
		c.Logger.Format = logger.Format(format)
	}

	if output := os.Getenv("EXPENSETRACE_LOG_OUTPUT"); output != "" {
		c.Logger.Output = output
	}

	if noColor := os.Getenv("EXPENSETRACE_NO_COLOR"); noColor != "" {
		if v, err := strconv.ParseBool(noColor); err == nil {
			c.NoColor = v
		}
	}
}

func decode(file string, content []byte, conf *Config) error {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".toml":
		return toml.Unmarshal(content, conf)
	case ".yml", ".yaml":
		return yaml.Unmarshal(content, conf)
	default:
		return &UnsupportedFormatError{Path: file}
	}
}

// Parse reads file when it exists, then applies environment overrides and
// defaults. A missing file is not an error.
func Parse(file string) (*Config, error) {
	conf := &Config{}

	content, err := os.ReadFile(file)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("unable to read configuration %s: %w", file, err)
	}

	if err == nil {
		if err = decode(file, content, conf); err != nil {
			return nil, fmt.Errorf("unable to decode configuration %s: %w", file, err)
		}
	}

	conf.parseEnv()
	conf.setDefaults()

	return conf, nil
}
