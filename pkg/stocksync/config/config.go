// Package config loads stocksync.toml and turns it into update options.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/ukaji3/stocksync-go/pkg/stocksync"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/models"
	"github.com/ukaji3/stocksync-go/pkg/stocksync/parser"
)

// FileName is the config file looked up beside the executable.
const FileName = "stocksync.toml"

// AppConfig mirrors stocksync.toml.
type AppConfig struct {
	Supplier SupplierConfig `toml:"supplier"`
	Source   SourceConfig   `toml:"source"`
	Target   TargetConfig   `toml:"target"`
	Run      RunConfig      `toml:"run"`
}

// SupplierConfig identifies the supplier.
type SupplierConfig struct {
	Code string `toml:"code"`
}

// SourceConfig describes the dated raw-data sheets.
type SourceConfig struct {
	SupplierColumn string            `toml:"supplier_column"`
	ItemCodeColumn string            `toml:"item_code_column"`
	Columns        map[string]string `toml:"columns"`
}

// TargetConfig describes the supplier sheet.
type TargetConfig struct {
	Sheet          string            `toml:"sheet"`
	HeaderRows     int               `toml:"header_rows"`
	ItemCodeColumn string            `toml:"item_code_column"`
	Columns        map[string]string `toml:"columns"`
}

// RunConfig holds run behaviour defaults.
type RunConfig struct {
	Backup       bool   `toml:"backup"`
	LogDir       string `toml:"log_dir"`
	ShowNewItems int    `toml:"show_new_items"`
}

// DefaultConfig returns the reference workbook configuration.
func DefaultConfig() *AppConfig {
	opts := stocksync.DefaultOptions()

	cfg := &AppConfig{
		Supplier: SupplierConfig{Code: opts.Supplier},
		Source: SourceConfig{
			SupplierColumn: opts.SupplierColumn,
			ItemCodeColumn: opts.ItemCodeColumn,
			Columns:        make(map[string]string),
		},
		Target: TargetConfig{
			Sheet:          opts.TargetSheet,
			HeaderRows:     opts.Layout.HeaderRows,
			ItemCodeColumn: parser.ColumnName(opts.Layout.ItemCodeColumn),
			Columns:        make(map[string]string),
		},
		Run: RunConfig{
			Backup:       true,
			ShowNewItems: 5,
		},
	}
	for field, header := range opts.SourceColumns {
		cfg.Source.Columns[field.String()] = header
	}
	for field, col := range opts.Layout.Columns {
		cfg.Target.Columns[field.String()] = parser.ColumnName(col)
	}
	return cfg
}

// GetExeDir returns the directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// Load reads the config at path. An empty path means stocksync.toml beside
// the executable; a missing file there yields the defaults. Values in the
// file override defaults key by key, then environment overrides apply.
func Load(path string) (*AppConfig, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		path = filepath.Join(exeDir, FileName)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("STOCKSYNC_SUPPLIER"); v != "" {
		cfg.Supplier.Code = v
	}
	if v := os.Getenv("STOCKSYNC_TARGET_SHEET"); v != "" {
		cfg.Target.Sheet = v
	}
}

// Options converts the config into update options. Unknown field names
// and bad column references are errors.
func (c *AppConfig) Options() (stocksync.Options, error) {
	opts := stocksync.DefaultOptions()
	opts.Supplier = c.Supplier.Code
	opts.TargetSheet = c.Target.Sheet
	opts.SupplierColumn = c.Source.SupplierColumn
	opts.ItemCodeColumn = c.Source.ItemCodeColumn
	opts.Layout.HeaderRows = c.Target.HeaderRows
	backup := c.Run.Backup
	opts.Backup = &backup

	itemCol, err := parser.ParseColumnRef(c.Target.ItemCodeColumn)
	if err != nil {
		return opts, fmt.Errorf("target.item_code_column: %w", err)
	}
	opts.Layout.ItemCodeColumn = itemCol

	opts.SourceColumns = make(map[models.Field]string, len(c.Source.Columns))
	for name, header := range c.Source.Columns {
		field, ok := models.ParseField(name)
		if !ok {
			return opts, fmt.Errorf("source.columns: unknown field %q", name)
		}
		opts.SourceColumns[field] = header
	}

	opts.Layout.Columns = make(map[models.Field]int, len(c.Target.Columns))
	for name, ref := range c.Target.Columns {
		field, ok := models.ParseField(name)
		if !ok {
			return opts, fmt.Errorf("target.columns: unknown field %q", name)
		}
		col, err := parser.ParseColumnRef(ref)
		if err != nil {
			return opts, fmt.Errorf("target.columns.%s: %w", name, err)
		}
		opts.Layout.Columns[field] = col
	}

	if err := opts.Layout.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}
