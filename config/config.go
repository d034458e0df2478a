// Package config loads YAML table definitions.
package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	fs "github.com/ungerik/go-fs"
	"gopkg.in/yaml.v3"

	retable "github.com/plan-dashboard/go-retable"
	"github.com/plan-dashboard/go-retable/datatable"
	"github.com/plan-dashboard/go-retable/theme"
)

// DefaultResizeDebounce is used when resizeDebounce is not configured.
const DefaultResizeDebounce = 150 * time.Millisecond

// Config is the definition of a table.
type Config struct {
	ID             string             `yaml:"id"`
	Title          string             `yaml:"title"`
	Columns        []datatable.Column `yaml:"columns"`
	Order          Order              `yaml:"order"`
	PageSize       int                `yaml:"pageSize"`
	RowKey         string             `yaml:"rowKey"`
	NightMode      bool               `yaml:"nightMode"`
	Accent         theme.Color        `yaml:"accent"`
	ResizeDebounce time.Duration      `yaml:"resizeDebounce"`
	Source         Source             `yaml:"source"`

	// dir is the directory relative source paths are resolved against.
	dir fs.File
}

// Order is the default sort in YAML notation [columnIndex, asc|desc].
type Order struct {
	datatable.Order
}

func (o *Order) UnmarshalYAML(node *yaml.Node) error {
	var pair []string
	if err := node.Decode(&pair); err != nil {
		return fmt.Errorf("order must be [columnIndex, asc|desc]: %w", err)
	}
	if len(pair) == 0 || len(pair) > 2 {
		return fmt.Errorf("order must be [columnIndex, asc|desc], got %d values", len(pair))
	}
	col, err := strconv.Atoi(pair[0])
	if err != nil {
		return fmt.Errorf("order column index: %w", err)
	}
	o.Column = col
	o.Descending = false
	if len(pair) == 2 {
		switch strings.ToLower(pair[1]) {
		case "asc":
		case "desc":
			o.Descending = true
		default:
			return fmt.Errorf("order direction must be asc or desc, got %q", pair[1])
		}
	}
	return nil
}

func (o Order) MarshalYAML() (any, error) {
	dir := "asc"
	if o.Descending {
		dir = "desc"
	}
	return []any{o.Column, dir}, nil
}

// Load reads and validates a YAML config file.
// Relative source paths are resolved against the directory of file.
func Load(file fs.File) (*Config, error) {
	data, err := file.ReadAll()
	if err != nil {
		return nil, err
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file.Name(), err)
	}
	c.dir = file.Dir()
	return c, nil
}

// Parse decodes and validates a YAML config.
func Parse(data []byte) (*Config, error) {
	c := new(Config)
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, err
	}
	if c.ResizeDebounce == 0 {
		c.ResizeDebounce = DefaultResizeDebounce
	}
	if c.PageSize == 0 {
		c.PageSize = datatable.PageSizes[0]
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the config for consistency.
func (c *Config) Validate() error {
	var errs []error
	for i, col := range c.Columns {
		if col.Key == "" {
			errs = append(errs, fmt.Errorf("column %d has no key", i))
		}
	}
	if len(c.Columns) > 0 && (c.Order.Column < 0 || c.Order.Column >= len(c.Columns)) {
		errs = append(errs, fmt.Errorf("%w: column %d of %d", datatable.ErrInvalidOrder, c.Order.Column, len(c.Columns)))
	}
	if c.pageSizeIndex() < 0 {
		errs = append(errs, fmt.Errorf("pageSize must be one of %v, got %d", datatable.PageSizes, c.PageSize))
	}
	if c.ResizeDebounce < 0 {
		errs = append(errs, fmt.Errorf("negative resizeDebounce %s", c.ResizeDebounce))
	}
	if err := c.Source.Validate(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (c *Config) pageSizeIndex() int {
	return slices.Index(datatable.PageSizes[:], c.PageSize)
}

// Theme returns the display theme of the table.
func (c *Config) Theme() theme.Theme {
	return theme.Theme{NightMode: c.NightMode, Accent: c.Accent}
}

// TableOptions returns the options for datatable.New.
func (c *Config) TableOptions() []datatable.Option {
	options := []datatable.Option{datatable.WithPageSizeIndex(c.pageSizeIndex())}
	if c.RowKey != "" {
		options = append(options, datatable.WithRowKey(datatable.KeyField(c.RowKey)))
	}
	return options
}

// Data combines the configured columns and order with loaded rows.
// Without configured columns one column per source key is used.
func (c *Config) Data(rows []retable.Record, keys []string) *datatable.Data {
	if len(c.Columns) == 0 {
		data := datatable.DataFromRecords(c.Title, rows, keys, c.Order.Order)
		return &data
	}
	return &datatable.Data{
		Title:   c.Title,
		Columns: c.Columns,
		Rows:    rows,
		Order:   c.Order.Order,
	}
}
