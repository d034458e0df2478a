// Command retable loads a table definition and serves it
// as HTML widget, runs it in the terminal, or exports
// the matching rows as CSV or XLSX.
//
//	retable -config table.yaml serve -addr :8080
//	retable -config table.yaml tui
//	retable -config table.yaml export -format xlsx -out players.xlsx -query "q=fin&sort=1&dir=desc"
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	fs "github.com/ungerik/go-fs"

	"github.com/plan-dashboard/go-retable/config"
	"github.com/plan-dashboard/go-retable/csvtable"
	"github.com/plan-dashboard/go-retable/datatable"
	"github.com/plan-dashboard/go-retable/exceltable"
	"github.com/plan-dashboard/go-retable/htmltable"
	"github.com/plan-dashboard/go-retable/tuitable"
)

// logLevel is lowered to debug by the -debug flag.
var logLevel = new(slog.LevelVar)

func main() {
	os.Exit(realMain())
}

// realMain returns the exit code after its deferred cleanups ran.
func realMain() int {
	configPath := flag.String("config", "table.yaml", "Path of the YAML table definition")
	debug := flag.Bool("debug", false, "Enable debug logging")
	logPath := flag.String("log", "", "Log file, required to see logs of the tui command")
	flag.Usage = usage
	flag.Parse()

	if *debug {
		logLevel.Set(slog.LevelDebug)
	}
	logOut := os.Stderr
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			return 1
		}
		defer f.Close()
		logOut = f
	}
	log := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx, log, *configPath, flag.Args())
	if err != nil {
		log.Error("Command failed", "err", err)
		if *logPath != "" {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		return 1
	}
	return 0
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] serve|tui|export [command flags]\n\nFlags:\n", os.Args[0])
	flag.PrintDefaults()
}

func run(ctx context.Context, log *slog.Logger, configPath string, args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}
	cfg, err := config.Load(fs.File(configPath))
	if err != nil {
		return err
	}
	log = log.With("table", cfg.ID)
	log.Debug("Loaded config", "path", configPath, "columns", len(cfg.Columns))

	loader := datatable.NewLoader(cfg.LoadFunc())

	switch command, args := args[0], args[1:]; command {
	case "serve":
		return serve(ctx, log, cfg, loader, args)
	case "tui":
		return runTUI(ctx, cfg, loader, args)
	case "export":
		return export(ctx, log, cfg, loader, args)
	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func serve(ctx context.Context, log *slog.Logger, cfg *config.Config, loader *datatable.Loader, args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.String("addr", ":8080", "TCP address to listen on")
	_ = flags.Parse(args)

	// Start loading before the first request
	loader.Start(ctx)

	writer := htmltable.NewTableWriter(cfg.ID, cfg.Theme())
	mux := http.NewServeMux()
	mux.Handle("/", htmltable.NewHandler(loader, writer, log, cfg.TableOptions()...))

	server := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("Serving table", "addr", *addr)
	err := server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func runTUI(ctx context.Context, cfg *config.Config, loader *datatable.Loader, args []string) error {
	flags := flag.NewFlagSet("tui", flag.ExitOnError)
	_ = flags.Parse(args)

	model := tuitable.New(loader, cfg.Theme(),
		tuitable.WithResizeDebounce(cfg.ResizeDebounce),
		tuitable.WithTableOptions(cfg.TableOptions()...),
	)
	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}

func export(ctx context.Context, log *slog.Logger, cfg *config.Config, loader *datatable.Loader, args []string) error {
	flags := flag.NewFlagSet("export", flag.ExitOnError)
	format := flags.String("format", "csv", "Export format: csv or xlsx")
	out := flags.String("out", "", "Output file, stdout if empty")
	query := flags.String("query", "", "Table state as URL query like the HTML widget links")
	delimiter := flags.String("delimiter", ",", "CSV field delimiter")
	_ = flags.Parse(args)

	data, err := loader.Wait(ctx)
	if err != nil {
		return fmt.Errorf("loading table data: %w", err)
	}
	table, err := datatable.New(*data, cfg.TableOptions()...)
	if err != nil {
		return err
	}
	if *query != "" {
		values, err := url.ParseQuery(strings.TrimPrefix(*query, "?"))
		if err != nil {
			return fmt.Errorf("parsing -query: %w", err)
		}
		table.ApplyQuery(values)
	}
	view := table.MatchingView()

	var buf bytes.Buffer
	switch strings.ToLower(*format) {
	case "csv":
		delim := []rune(*delimiter)
		if len(delim) != 1 {
			return fmt.Errorf("invalid -delimiter %q", *delimiter)
		}
		err = csvtable.NewWriter().
			WithHeaderRow(true).
			WithDelimiter(delim[0]).
			WriteView(ctx, &buf, view)
	case "xlsx":
		if *out == "" {
			return errors.New("xlsx export needs -out")
		}
		err = exceltable.WriteView(ctx, &buf, view)
	default:
		return fmt.Errorf("unsupported -format %q", *format)
	}
	if err != nil {
		return err
	}

	if *out == "" {
		_, err = os.Stdout.Write(buf.Bytes())
		return err
	}
	err = fs.File(*out).WriteAll(buf.Bytes())
	if err != nil {
		return err
	}
	log.Info("Exported table", "file", *out, "rows", view.NumRows(), "columns", len(view.Columns()))
	return nil
}
