package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"goocsv/pkg/config"
	"goocsv/pkg/search"
)

func TestCollapseMsg(t *testing.T) {
	if got := collapseMsg("saved", 1); got != "saved" {
		t.Fatalf("got %q", got)
	}
	if got := collapseMsg("saved", 3); got != "saved (x3)" {
		t.Fatalf("got %q", got)
	}
}

func TestMarkMatches(t *testing.T) {
	spans := []search.Span{{Start: 1, End: 4}, {Start: 6, End: 9}}
	got := markMatches("xabcyzabc", spans, 1, "yellow", "orange")
	want := `x["m0"][black:yellow]abc[-:-][""]yz["m1"][black:orange]abc[-:-][""]`
	if got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}

func TestMarkMatchesRuneOffsets(t *testing.T) {
	got := markMatches("Straße ß", []search.Span{{Start: 7, End: 8}}, 0, "yellow", "orange")
	if !strings.HasPrefix(got, "Straße ") || !strings.Contains(got, "orange]ß[") {
		t.Fatalf("got %s", got)
	}
}

func TestMarkMatchesEscapesTags(t *testing.T) {
	if got := markMatches("[red]", nil, -1, "yellow", "orange"); strings.Contains(got, "[red]") {
		t.Fatalf("text not escaped: %s", got)
	}
}

func TestCapitalize(t *testing.T) {
	if got := capitalize("table has no rows"); got != "Table has no rows" {
		t.Fatalf("got %q", got)
	}
	if capitalize("") != "" {
		t.Fatalf("empty string changed")
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "goocsv.log")
	logger, closeLog, err := newLogger(path, "debug")
	if err != nil {
		t.Fatalf("newLogger: %v", err)
	}
	logger.Debug("row moved", "row", 2)
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "row moved") {
		t.Fatalf("log=%q", data)
	}
}

func TestNewLoggerRejectsLevel(t *testing.T) {
	if _, _, err := newLogger("", "loud"); err == nil {
		t.Fatalf("expected level error")
	}
}

func TestRunWriteConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg", "config.toml")
	if err := run([]string{"-config", path, "-write-config"}); err != nil {
		t.Fatalf("run: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != config.Default() {
		t.Fatalf("written config differs from defaults")
	}
}
