package config

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	fs "github.com/ungerik/go-fs"
	_ "modernc.org/sqlite" // registers the "sqlite" database/sql driver

	retable "github.com/plan-dashboard/go-retable"
	"github.com/plan-dashboard/go-retable/csvtable"
	"github.com/plan-dashboard/go-retable/datatable"
	"github.com/plan-dashboard/go-retable/exceltable"
	"github.com/plan-dashboard/go-retable/sqltable"
)

// Source configures where the rows of a table are loaded from.
// Exactly one of CSV, XLSX, or SQLite has to be set.
type Source struct {
	CSV    string `yaml:"csv,omitempty"`
	XLSX   string `yaml:"xlsx,omitempty"`
	Sheet  string `yaml:"sheet,omitempty"`
	SQLite string `yaml:"sqlite,omitempty"`
	Query  string `yaml:"query,omitempty"`
}

// Validate checks that exactly one source is configured.
func (s *Source) Validate() error {
	n := 0
	for _, path := range []string{s.CSV, s.XLSX, s.SQLite} {
		if path != "" {
			n++
		}
	}
	switch {
	case n == 0:
		return errors.New("source needs one of csv, xlsx, sqlite")
	case n > 1:
		return errors.New("source must have only one of csv, xlsx, sqlite")
	case s.SQLite != "" && s.Query == "":
		return errors.New("sqlite source needs a query")
	}
	return nil
}

// file resolves a source path against the config directory.
func (c *Config) file(path string) fs.File {
	if filepath.IsAbs(path) || c.dir == "" {
		return fs.File(path)
	}
	return c.dir.Join(path)
}

// LoadRecords reads the rows of the configured source
// and the keys of the source columns in source order.
func (c *Config) LoadRecords(ctx context.Context) (records []retable.Record, keys []string, err error) {
	switch s := &c.Source; {
	case s.CSV != "":
		return csvtable.ReadFileRecords(c.file(s.CSV), nil)

	case s.XLSX != "":
		file := c.file(s.XLSX)
		data, err := file.ReadAll()
		if err != nil {
			return nil, nil, err
		}
		records, keys, err = exceltable.ReadRecords(bytes.NewReader(data), s.Sheet)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", file.Name(), err)
		}
		return records, keys, nil

	case s.SQLite != "":
		file := c.file(s.SQLite)
		if !file.Exists() {
			return nil, nil, fmt.Errorf("sqlite database %s does not exist", file)
		}
		db, err := sql.Open("sqlite", file.LocalPath())
		if err != nil {
			return nil, nil, err
		}
		defer db.Close()
		return sqltable.QueryRecords(ctx, db, s.Query)
	}
	return nil, nil, c.Source.Validate()
}

// LoadFunc returns a datatable.LoadFunc for the configured source.
func (c *Config) LoadFunc() datatable.LoadFunc {
	return func(ctx context.Context) (*datatable.Data, error) {
		rows, keys, err := c.LoadRecords(ctx)
		if err != nil {
			return nil, err
		}
		return c.Data(rows, keys), nil
	}
}
