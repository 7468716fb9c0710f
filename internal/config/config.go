package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"registrydash/pkg/contracts/domain"
)

// EnvPrefix namespaces every environment variable, e.g. REGISTRY_DATA_FILE.
const EnvPrefix = "REGISTRY"

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Security  SecurityConfig  `yaml:"security" envconfig:"SECURITY"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Data      DataConfig      `yaml:"data" envconfig:"DATA"`
	Telemetry TelemetryConfig `yaml:"telemetry" envconfig:"TELEMETRY"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	MaxHeaderBytes  int           `yaml:"max_header_bytes" envconfig:"MAX_HEADER_BYTES"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"REQUEST_TIMEOUT"`
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	AllowedOrigins []string        `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	EnableCORS     bool            `yaml:"enable_cors" envconfig:"ENABLE_CORS"`
	RateLimit      RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// DataConfig describes the registry source and the dashboard sizes.
type DataConfig struct {
	File            string  `yaml:"file" envconfig:"FILE"`
	Sheet           string  `yaml:"sheet" envconfig:"SHEET"`
	RowLimit        int     `yaml:"row_limit" envconfig:"ROW_LIMIT"`
	TopIndustries   int     `yaml:"top_industries" envconfig:"TOP_INDUSTRIES"`
	TopProvinces    int     `yaml:"top_provinces" envconfig:"TOP_PROVINCES"`
	TopCompanies    int     `yaml:"top_companies" envconfig:"TOP_COMPANIES"`
	HistogramBins   int     `yaml:"histogram_bins" envconfig:"HISTOGRAM_BINS"`
	CapitalQuantile float64 `yaml:"capital_quantile" envconfig:"CAPITAL_QUANTILE"`
}

// TelemetryConfig selects the OpenTelemetry exporters.
type TelemetryConfig struct {
	Enabled        bool   `yaml:"enabled" envconfig:"ENABLED"`
	ServiceName    string `yaml:"service_name" envconfig:"SERVICE_NAME"`
	TraceExporter  string `yaml:"trace_exporter" envconfig:"TRACE_EXPORTER"`
	MetricExporter string `yaml:"metric_exporter" envconfig:"METRIC_EXPORTER"`
}

// ChartLimits returns the chart sizes configured for the dashboard.
func (d DataConfig) ChartLimits() domain.ChartLimits {
	return domain.ChartLimits{
		TopIndustries: d.TopIndustries,
		TopProvinces:  d.TopProvinces,
		TopCompanies:  d.TopCompanies,
		HistogramBins: d.HistogramBins,
	}
}

// Load loads configuration from defaults, the first config file found and the environment.
func Load() (*Config, error) {
	return LoadFrom(getConfigFilePath())
}

// LoadFrom loads configuration using an explicit config file path.
// Precedence is environment over file over Default().
func LoadFrom(configFile string) (*Config, error) {
	cfg := Default()

	if configFile != "" {
		if err := loadFromFile(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	// Fields without a matching variable are left untouched.
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.Data.File = ResolvePath(cfg.Data.File)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// loadFromFile overlays the YAML file onto cfg
func loadFromFile(filePath string, cfg *Config) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// validate validates the configuration
func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server read timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server write timeout must be positive")
	}

	if c.Security.EnableCORS && len(c.Security.AllowedOrigins) == 0 {
		return fmt.Errorf("at least one allowed origin must be specified")
	}

	if strings.TrimSpace(c.Data.File) == "" {
		return fmt.Errorf("data file must be specified")
	}

	if c.Data.RowLimit <= 0 {
		return fmt.Errorf("row limit must be positive")
	}

	if c.Data.TopIndustries <= 0 || c.Data.TopProvinces <= 0 || c.Data.TopCompanies <= 0 {
		return fmt.Errorf("chart top-N sizes must be positive")
	}

	if c.Data.HistogramBins <= 0 {
		return fmt.Errorf("histogram bins must be positive")
	}

	if c.Data.CapitalQuantile <= 0 || c.Data.CapitalQuantile > 1 {
		return fmt.Errorf("capital quantile must be in (0, 1]: %v", c.Data.CapitalQuantile)
	}

	switch c.Telemetry.TraceExporter {
	case "none", "stdout":
	default:
		return fmt.Errorf("unsupported trace exporter: %s", c.Telemetry.TraceExporter)
	}

	switch c.Telemetry.MetricExporter {
	case "none", "prometheus":
	default:
		return fmt.Errorf("unsupported metric exporter: %s", c.Telemetry.MetricExporter)
	}

	// Logs are always JSON.
	c.Logging.Format = "json"

	switch c.Logging.Output {
	case "console", "stderr", "file", "both":
	default:
		c.Logging.Output = "console"
	}

	if c.Logging.FilePath == "" {
		c.Logging.FilePath = DefaultLogFile
	}

	return nil
}

// getConfigFilePath returns the path to the config file
func getConfigFilePath() string {
	locations := []string{
		"config.yaml",
		"configs/config.yaml",
		"../configs/config.yaml",
	}

	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location
		}
	}

	return ""
}

// Default returns default configuration
func Default() *Config {
	limits := domain.DefaultChartLimits()
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			IdleTimeout:     60 * time.Second,
			MaxHeaderBytes:  1 << 20, // 1MB
			ShutdownTimeout: 30 * time.Second,
			RequestTimeout:  60 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins: []string{"http://localhost:8080"},
			EnableCORS:     true,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     DefaultRateLimit,
				Burst:   DefaultBurstSize,
			},
		},
		Logging: LoggingConfig{
			Level:    DefaultLogLevel,
			Format:   "json",
			Output:   "console",
			FilePath: DefaultLogFile,
		},
		Data: DataConfig{
			File:            DefaultDataFile,
			RowLimit:        DefaultRowLimit,
			TopIndustries:   limits.TopIndustries,
			TopProvinces:    limits.TopProvinces,
			TopCompanies:    limits.TopCompanies,
			HistogramBins:   limits.HistogramBins,
			CapitalQuantile: DefaultCapitalQuantile,
		},
		Telemetry: TelemetryConfig{
			Enabled:        true,
			ServiceName:    ServiceName,
			TraceExporter:  "none",
			MetricExporter: "prometheus",
		},
	}
}
