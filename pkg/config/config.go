package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/gdamore/tcell/v2"
)

type Colors struct {
	Background string `toml:"background"`
	Surface    string `toml:"surface"`
	HeaderBg   string `toml:"header_bg"`
	Text       string `toml:"text"`
	SubtleText string `toml:"subtle_text"`
	Accent     string `toml:"accent"`
	Warm       string `toml:"warm"`
	Danger     string `toml:"danger"`
	Selection  string `toml:"selection"`
	InputBg    string `toml:"input_bg"`
	Match      string `toml:"match"`
	Current    string `toml:"current_match"`
}

type Config struct {
	Colors Colors `toml:"colors"`
	Log    struct {
		File  string `toml:"file"`
		Level string `toml:"level"`
	} `toml:"log"`
	Editor struct {
		WordWrap bool `toml:"word_wrap"`
		// LabelWidth caps the width of a column label in the visibility bar.
		LabelWidth int `toml:"label_width"`
	} `toml:"editor"`
}

func Default() Config {
	var c Config
	c.Colors = Colors{
		Background: "#0f0f14",
		Surface:    "#11131a",
		HeaderBg:   "#181c26",
		Text:       "#e7e7eb",
		SubtleText: "#9aa0b2",
		Accent:     "#2fb4ad",
		Warm:       "#ffb347",
		Danger:     "#ff6b6b",
		Selection:  "#1f6f78",
		InputBg:    "#151824",
		Match:      "yellow",
		Current:    "orange",
	}
	c.Log.Level = "info"
	c.Editor.WordWrap = true
	c.Editor.LabelWidth = 18
	return c
}

func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "goocsv", "config.toml")
}

// Load reads path over the defaults. A missing file or an empty path yields
// the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	if _, err := cfg.Theme(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

func WriteFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return Write(f, cfg)
}

type Theme struct {
	Background tcell.Color
	Surface    tcell.Color
	HeaderBg   tcell.Color
	Text       tcell.Color
	SubtleText tcell.Color
	Accent     tcell.Color
	Warm       tcell.Color
	Danger     tcell.Color
	Selection  tcell.Color
	InputBg    tcell.Color
	Match      tcell.Color
	Current    tcell.Color
}

// Theme resolves the color names. Names follow tcell.GetColor: W3C color
// names or #rrggbb.
func (c Config) Theme() (Theme, error) {
	var th Theme
	fields := []struct {
		name string
		val  string
		dst  *tcell.Color
	}{
		{"background", c.Colors.Background, &th.Background},
		{"surface", c.Colors.Surface, &th.Surface},
		{"header_bg", c.Colors.HeaderBg, &th.HeaderBg},
		{"text", c.Colors.Text, &th.Text},
		{"subtle_text", c.Colors.SubtleText, &th.SubtleText},
		{"accent", c.Colors.Accent, &th.Accent},
		{"warm", c.Colors.Warm, &th.Warm},
		{"danger", c.Colors.Danger, &th.Danger},
		{"selection", c.Colors.Selection, &th.Selection},
		{"input_bg", c.Colors.InputBg, &th.InputBg},
		{"match", c.Colors.Match, &th.Match},
		{"current_match", c.Colors.Current, &th.Current},
	}
	for _, f := range fields {
		col := tcell.GetColor(f.val)
		if col == tcell.ColorDefault {
			return Theme{}, fmt.Errorf("colors.%s: unknown color %q", f.name, f.val)
		}
		*f.dst = col
	}
	return th, nil
}
