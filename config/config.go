package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/configparser"
	"github.com/Temutjin2k/taxi-fare-dashboard/pkg/logger"
)

// Errors
var (
	ErrMissingValue = errors.New("required config value is missing")
	ErrInvalidValue = errors.New("invalid config value")
)

// the line, bar, pie and scatter charts each take their own palette entry
const minPaletteColors = 4

var defaultPalette = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd"}

// Config contains all configuration variables of the application
type (
	Config struct {
		Server     ServerConfig     `yaml:"server"`
		Log        LogConfig        `yaml:"log"`
		Databricks DatabricksConfig `yaml:"databricks"`
		Chart      ChartConfig      `yaml:"chart"`
	}

	ServerConfig struct {
		Port            string        `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	}

	LogConfig struct {
		Service string `yaml:"service"`
		Level   string `yaml:"level"`
	}

	// DatabricksConfig describes the SQL warehouse the trips are read from.
	DatabricksConfig struct {
		Host        string        `yaml:"host"` // workspace URL, e.g. https://adb-123.azuredatabricks.net
		Token       string        `yaml:"token"`
		WarehouseID string        `yaml:"warehouse_id"`
		Catalog     string        `yaml:"catalog"`
		Schema      string        `yaml:"schema"`
		Table       string        `yaml:"table"`
		RowLimit    int           `yaml:"row_limit"`
		WaitTimeout string        `yaml:"wait_timeout"` // sent to the warehouse, 5s..50s
		HTTPTimeout time.Duration `yaml:"http_timeout"`
	}

	ChartConfig struct {
		Theme    string   `yaml:"theme"`
		Palette  []string `yaml:"palette"`
		FontSize int      `yaml:"font_size"`
		Width    int      `yaml:"width"`  // PNG width in pixels
		Height   int      `yaml:"height"` // PNG height in pixels
	}
)

// Addr returns the listen address of the HTTP server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("0.0.0.0:%s", c.Port)
}

// StatementURL returns the SQL statement execution endpoint.
func (c DatabricksConfig) StatementURL() string {
	return strings.TrimRight(c.Host, "/") + "/api/2.0/sql/statements"
}

// TableName returns the fully qualified trips table.
func (c DatabricksConfig) TableName() string {
	return fmt.Sprintf("%s.%s.%s", c.Catalog, c.Schema, c.Table)
}

// NewConfig loads the dotenv file (if present) and the YAML config, applies
// defaults and validates the result.
func NewConfig(configPath, envPath string) (*Config, error) {
	if err := configparser.LoadEnvFile(envPath); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	if err := configparser.LoadAndParseYaml(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to load and parse config: %w", err)
	}

	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 90 * time.Second
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}

	if c.Log.Service == "" {
		c.Log.Service = "taxi-fare-dashboard"
	}
	if c.Log.Level == "" {
		c.Log.Level = logger.LevelInfo
	}
	c.Log.Level = strings.ToUpper(c.Log.Level)

	if c.Databricks.Table == "" {
		c.Databricks.Table = "nyctaxi"
	}
	if c.Databricks.RowLimit == 0 {
		c.Databricks.RowLimit = 100_000
	}
	if c.Databricks.WaitTimeout == "" {
		c.Databricks.WaitTimeout = "30s"
	}
	if c.Databricks.HTTPTimeout == 0 {
		c.Databricks.HTTPTimeout = 60 * time.Second
	}

	if c.Chart.Theme == "" {
		c.Chart.Theme = "plotly_dark"
	}
	if len(c.Chart.Palette) == 0 {
		c.Chart.Palette = append([]string(nil), defaultPalette...)
	}
	if c.Chart.FontSize == 0 {
		c.Chart.FontSize = 14
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 1024
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 512
	}
}

// Validate checks required values and value ranges.
func (c *Config) Validate() error {
	var errs []error

	required := map[string]string{
		"databricks.host":         c.Databricks.Host,
		"databricks.token":        c.Databricks.Token,
		"databricks.warehouse_id": c.Databricks.WarehouseID,
		"databricks.catalog":      c.Databricks.Catalog,
		"databricks.schema":       c.Databricks.Schema,
	}
	for _, key := range []string{"databricks.host", "databricks.token", "databricks.warehouse_id", "databricks.catalog", "databricks.schema"} {
		if strings.TrimSpace(required[key]) == "" {
			errs = append(errs, fmt.Errorf("%w: %s", ErrMissingValue, key))
		}
	}

	if !logger.ValidateLogLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("%w: log.level %q", ErrInvalidValue, c.Log.Level))
	}
	if c.Databricks.RowLimit < 0 {
		errs = append(errs, fmt.Errorf("%w: databricks.row_limit must not be negative", ErrInvalidValue))
	}
	if wait, err := time.ParseDuration(c.Databricks.WaitTimeout); err != nil || (wait != 0 && (wait < 5*time.Second || wait > 50*time.Second)) {
		errs = append(errs, fmt.Errorf("%w: databricks.wait_timeout must be 0s or between 5s and 50s", ErrInvalidValue))
	}
	if len(c.Chart.Palette) < minPaletteColors {
		errs = append(errs, fmt.Errorf("%w: chart.palette needs at least %d colors", ErrInvalidValue, minPaletteColors))
	}

	return errors.Join(errs...)
}
