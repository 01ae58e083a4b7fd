package csvio

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

const DefaultHeader = "Column 1"

type Document struct {
	Headers []string
	Rows    [][]string
	// Created is set when the file did not exist and a default document was
	// supplied in its place.
	Created bool
}

func Load(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return defaultDocument(), nil
		}
		return Document{}, err
	}
	defer f.Close()

	doc, err := Read(f)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// Read parses CSV text. The first record is the header row.
func Read(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return Document{}, err
	}
	if len(records) == 0 || len(records[0]) == 0 {
		return defaultDocument(), nil
	}
	return Document{Headers: records[0], Rows: records[1:]}, nil
}

func defaultDocument() Document {
	return Document{Headers: []string{DefaultHeader}, Created: true}
}

func Write(w io.Writer, headers []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	for _, rec := range append([][]string{headers}, rows...) {
		// encoding/csv writes a lone empty field as a blank line, which
		// readers skip. Quote it so one-column tables keep their blank rows.
		if len(rec) == 1 && rec[0] == "" {
			cw.Flush()
			if err := cw.Error(); err != nil {
				return err
			}
			if _, err := io.WriteString(w, "\"\"\n"); err != nil {
				return err
			}
			continue
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Save writes to a temporary file next to path and renames it into place.
func Save(path string, headers []string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, headers, rows); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if info, err := os.Stat(path); err == nil {
		_ = os.Chmod(tmp.Name(), info.Mode().Perm())
	}
	return os.Rename(tmp.Name(), path)
}

// Sample is the table shown when the editor starts without a file.
func Sample() Document {
	return Document{
		Headers: []string{"Name", "Age", "City", "Occupation"},
		Rows: [][]string{
			{"John Doe", "30", "New York", "Engineer"},
			{"Jane Smith", "28", "San Francisco", "Designer"},
			{"Bob Johnson", "35", "Chicago", "Manager"},
			{"Alice Brown", "25", "Boston", "Developer"},
			{"Charlie Wilson", "40", "Seattle", "Architect"},
		},
	}
}
