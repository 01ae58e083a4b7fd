package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/rivo/tview"
	"golang.org/x/term"

	"goocsv/pkg/config"
	"goocsv/pkg/csvio"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "goocsv: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("goocsv", flag.ContinueOnError)
	cfgPath := fs.String("config", config.DefaultPath(), "config file (TOML)")
	writeCfg := fs.Bool("write-config", false, "write the default config to -config (or stdout if empty) and exit")
	logPath := fs.String("log", "", "log file (overrides [log] file)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: goocsv [flags] [file.csv]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *writeCfg {
		if *cfgPath == "" {
			return config.Write(os.Stdout, config.Default())
		}
		return config.WriteFile(*cfgPath, config.Default())
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	if *logPath != "" {
		cfg.Log.File = *logPath
	}
	theme, err := cfg.Theme()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closeLog()

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("stdout is not a terminal")
	}

	doc := csvio.Sample()
	filename := ""
	if fs.NArg() > 0 {
		filename = fs.Arg(0)
		doc, err = csvio.Load(filename)
		if err != nil {
			return err
		}
	}

	app := tview.NewApplication()
	u := newUI(app, cfg, theme, logger)
	u.loadDocument(filename, doc)
	logger.Info("started", "file", filename, "rows", len(doc.Rows), "columns", len(doc.Headers))

	return app.SetRoot(u.pages, true).EnableMouse(true).Run()
}

// newLogger writes to path when set. The terminal belongs to the UI, so
// without a file the logger discards everything.
func newLogger(path, level string) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closeFn := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("log level %q: %w", level, err)
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "goocsv",
		Level:           lvl,
	})
	return logger, closeFn, nil
}
