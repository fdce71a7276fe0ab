package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tordrt/schemasheet"
	"github.com/tordrt/schemasheet/internal/config"
	"github.com/tordrt/schemasheet/internal/errs"
	"github.com/tordrt/schemasheet/internal/formatter"
	"github.com/tordrt/schemasheet/internal/logger"
)

type cliFlags struct {
	configPath  string
	mssqlURL    string
	oracleURL   string
	schemaName  string
	outputDir   string
	prefix      string
	tables      string
	exclude     string
	print       bool
	printFormat string
	logLevel    string
	logFormat   string
}

func newRootCmd() *cobra.Command {
	f := &cliFlags{}
	cmd := &cobra.Command{
		Use:   "schemasheet",
		Short: "Document a database schema as an Excel workbook",
		Long: `schemasheet reads the catalog of a SQL Server or Oracle database and writes
a workbook with a linked table of contents, one sheet per table listing its
columns and indexes, and a sheet with every view definition.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, f)
		},
	}

	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "YAML configuration file")
	cmd.Flags().StringVar(&f.mssqlURL, "mssql-url", "", "SQL Server connection string (sqlserver://...)")
	cmd.Flags().StringVar(&f.oracleURL, "oracle-url", "", "Oracle connection string (oracle://...)")
	cmd.Flags().StringVarP(&f.schemaName, "schema", "s", "", "Schema (SQL Server, default dbo) or owner (Oracle, default the user)")
	cmd.Flags().StringVarP(&f.outputDir, "output-dir", "d", "", "Directory for the workbook (default: current directory)")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "Output file prefix (default: table_specification or oracle_schema)")
	cmd.Flags().StringVarP(&f.tables, "tables", "t", "", "Specific tables (comma-separated, optional)")
	cmd.Flags().StringVarP(&f.exclude, "exclude", "x", "", "Tables to skip (comma-separated, optional)")
	cmd.Flags().BoolVar(&f.print, "print", false, "Print an outline to stdout instead of writing a workbook")
	cmd.Flags().StringVarP(&f.printFormat, "print-format", "f", "text", "Outline format: text or markdown")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	cmd.Flags().StringVar(&f.logFormat, "log-format", "", "Log format: console or json")

	return cmd
}

// run reports every failure through the logger, with its kind and the
// operation and object that failed when known
func run(cmd *cobra.Command, f *cliFlags) error {
	cfg, err := resolveConfig(f)
	if err != nil {
		logger.New(&logger.Config{Level: "info", Format: f.logFormat, Output: cmd.ErrOrStderr()}).
			ErrorWith("invalid configuration", err, errs.Fields(err))
		return err
	}

	log := logger.New(&logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cmd.ErrOrStderr()})

	if err := generate(cmd, f, cfg, log); err != nil {
		log.ErrorWith("schemasheet failed", err, errs.Fields(err))
		return err
	}
	return nil
}

func generate(cmd *cobra.Command, f *cliFlags, cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()

	connString, err := cfg.Database.GetConnectionString()
	if err != nil {
		return err
	}

	var outline formatter.Formatter
	if f.print {
		if outline, err = formatter.New(f.printFormat, cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	s, err := schemasheet.ExtractSchema(ctx, connString, &schemasheet.Options{
		Tables:        cfg.Tables,
		ExcludeTables: cfg.ExcludeTables,
		SchemaName:    cfg.Database.Owner(),
		Logger:        log,
	})
	if err != nil {
		return fmt.Errorf("failed to extract schema: %w", err)
	}

	if outline != nil {
		if err := outline.Format(s); err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		return nil
	}

	path, err := schemasheet.WriteSchema(s, &schemasheet.OutputOptions{
		OutputDir: cfg.Output.Dir,
		Prefix:    cfg.Prefix(),
		Style:     &cfg.Style,
		Logger:    log,
	})
	if err != nil {
		if errs.IsOutputLocked(err) {
			return fmt.Errorf("%w (close the workbook in the program holding it and run again)", err)
		}
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

// resolveConfig layers the flags over the config file over the defaults
func resolveConfig(f *cliFlags) (*config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		loaded, err := config.LoadConfig(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if f.mssqlURL != "" && f.oracleURL != "" {
		return nil, errs.InvalidInput("only one of --mssql-url or --oracle-url can be specified")
	}
	if f.mssqlURL != "" {
		cfg.Database = config.DatabaseConfig{DBType: "mssql", ConnectionString: f.mssqlURL, Schema: cfg.Database.Schema}
	}
	if f.oracleURL != "" {
		cfg.Database = config.DatabaseConfig{DBType: "oracle", ConnectionString: f.oracleURL, Schema: cfg.Database.Schema}
	}
	if cfg.Database.DBType == "" {
		return nil, errs.InvalidInput("one of --mssql-url, --oracle-url or --config must be specified")
	}

	if f.schemaName != "" {
		cfg.Database.Schema = f.schemaName
	}
	if f.outputDir != "" {
		cfg.Output.Dir = f.outputDir
	}
	if f.prefix != "" {
		cfg.Output.Prefix = f.prefix
	}
	if tables := parseTableList(f.tables); len(tables) > 0 {
		cfg.Tables = tables
	}
	if exclude := parseTableList(f.exclude); len(exclude) > 0 {
		cfg.ExcludeTables = exclude
	}
	if f.logLevel != "" {
		cfg.Log.Level = f.logLevel
	}
	if f.logFormat != "" {
		cfg.Log.Format = f.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseTableList splits a comma-separated flag value, dropping blanks
func parseTableList(value string) []string {
	var tables []string
	for _, t := range strings.Split(value, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tables = append(tables, t)
		}
	}
	return tables
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
