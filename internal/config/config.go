package config

import (
	"fmt"
	"os"
	"strings"

	go_ora "github.com/sijms/go-ora/v2"
	"gopkg.in/yaml.v3"

	"github.com/tordrt/schemasheet/internal/errs"
	"github.com/tordrt/schemasheet/internal/style"
)

// Default output file prefixes per database type
const (
	MSSQLPrefix  = "table_specification"
	OraclePrefix = "oracle_schema"
)

type Config struct {
	Database      DatabaseConfig `yaml:"database"`
	Output        OutputConfig   `yaml:"output"`
	Style         style.Config   `yaml:"style"`
	Log           LogConfig      `yaml:"log"`
	Tables        []string       `yaml:"tables,omitempty"`
	ExcludeTables []string       `yaml:"exclude_tables,omitempty"`
}

type DatabaseConfig struct {
	DBType           string `yaml:"type"`
	ConnectionString string `yaml:"connection_string,omitempty"`
	Schema           string `yaml:"schema,omitempty"`

	// Oracle connection parts, used when ConnectionString is empty
	Username    string `yaml:"username,omitempty"`
	Password    string `yaml:"password,omitempty"`
	Hostname    string `yaml:"hostname,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	ServiceName string `yaml:"service_name,omitempty"`
}

type OutputConfig struct {
	Dir    string `yaml:"dir"`
	Prefix string `yaml:"prefix,omitempty"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{Port: 1521},
		Output:   OutputConfig{Dir: "."},
		Style:    style.DefaultConfig(),
		Log:      LogConfig{Level: "info", Format: "console"},
	}
}

// LoadConfig reads a YAML file over the defaults. Keys the file leaves out
// keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Validate checks the settings a run cannot do without
func (c *Config) Validate() error {
	if _, err := c.Database.GetConnectionString(); err != nil {
		return err
	}
	if c.Output.Dir == "" {
		return errs.InvalidInput("output directory is required")
	}
	if c.Style.MaxColumnWidth <= 0 {
		return errs.InvalidInput("style.max_column_width must be positive, got %d", c.Style.MaxColumnWidth)
	}
	if c.Style.ColumnPadding < 0 {
		return errs.InvalidInput("style.column_padding must not be negative, got %d", c.Style.ColumnPadding)
	}
	return nil
}

// Prefix returns the output file prefix, falling back to the per-type default
func (c *Config) Prefix() string {
	if c.Output.Prefix != "" {
		return c.Output.Prefix
	}
	if c.Database.DBType == "oracle" {
		return OraclePrefix
	}
	return MSSQLPrefix
}

// GetConnectionString returns the URL to connect with. Oracle settings may
// be given as discrete fields instead of a URL.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	switch d.DBType {
	case "mssql":
		if d.ConnectionString == "" {
			return "", errs.InvalidInput("connection string is required for %s connection", d.DBType)
		}
		return d.ConnectionString, nil

	case "oracle":
		if d.ConnectionString != "" {
			return d.ConnectionString, nil
		}
		if d.Hostname == "" || d.ServiceName == "" || d.Username == "" {
			return "", errs.InvalidInput("oracle needs connection_string or hostname, service_name and username")
		}
		port := d.Port
		if port == 0 {
			port = 1521
		}
		return go_ora.BuildUrl(d.Hostname, port, d.ServiceName, d.Username, d.Password, nil), nil

	case "":
		return "", errs.InvalidInput("database type is required (mssql or oracle)")

	default:
		return "", errs.InvalidInput("unsupported database type: %s", d.DBType)
	}
}

// Owner returns the configured schema, or the dialect default when unset:
// dbo for SQL Server and the upper-cased user name for Oracle.
func (d *DatabaseConfig) Owner() string {
	if d.Schema != "" {
		return d.Schema
	}
	if d.DBType == "oracle" {
		return strings.ToUpper(d.Username)
	}
	return "dbo"
}
