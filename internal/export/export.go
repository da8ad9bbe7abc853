// Package export writes the logbook to JSON, YAML or TOML files.
package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/afero"
	yaml "gopkg.in/yaml.v3"
)

// Supported formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

const checksumSuffix = ".checksum"

// ErrChecksumMismatch is returned by Read when the file does not match its checksum.
var ErrChecksumMismatch = errors.New("checksum mismatch")

// Logbook is the document written to disk.
type Logbook struct {
	ExportedAt time.Time         `json:"exportedAt" yaml:"exportedAt" toml:"exportedAt"`
	Count      int               `json:"count" yaml:"count" toml:"count"`
	Snapshots  []models.Snapshot `json:"snapshots" yaml:"snapshots" toml:"snapshots"`
}

// ParseFormat normalises a format name. "yml" is accepted for YAML.
func ParseFormat(s string) (string, error) {
	switch f := strings.ToLower(strings.TrimSpace(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q: supported formats are json, yaml, toml", s)
	}
}

// FormatFromPath infers the format from a file extension, falling back to def.
func FormatFromPath(path, def string) string {
	if f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), ".")); err == nil {
		return f
	}
	return def
}

// Writer exports logbooks through an afero filesystem.
// Use afero.NewOsFs() for real files or afero.NewMemMapFs() for tests.
type Writer struct {
	fs afero.Fs
}

// NewWriter creates a Writer over fs.
func NewWriter(fs afero.Fs) *Writer {
	return &Writer{fs: fs}
}

// NewOSWriter creates a Writer over the real filesystem.
func NewOSWriter() *Writer {
	return NewWriter(afero.NewOsFs())
}

// Encode marshals a logbook in the given format.
func Encode(lb Logbook, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return json.MarshalIndent(lb, "", "  ")
	case FormatYAML:
		return yaml.Marshal(lb)
	case FormatTOML:
		buf := new(bytes.Buffer)
		if err := toml.NewEncoder(buf).Encode(lb); err != nil {
			return nil, fmt.Errorf("marshal TOML: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// Decode parses a logbook in the given format.
func Decode(data []byte, format string) (Logbook, error) {
	var lb Logbook
	var err error
	switch format {
	case FormatJSON:
		err = json.Unmarshal(data, &lb)
	case FormatYAML:
		err = yaml.Unmarshal(data, &lb)
	case FormatTOML:
		err = toml.Unmarshal(data, &lb)
	default:
		return lb, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return lb, fmt.Errorf("decode %s logbook: %w", format, err)
	}
	return lb, nil
}

// Write exports snaps to path with a sibling checksum file. The data file is
// written to a temporary name first and renamed into place.
func (w *Writer) Write(path, format string, snaps []models.Snapshot, now time.Time) error {
	if snaps == nil {
		snaps = []models.Snapshot{}
	}
	data, err := Encode(Logbook{ExportedAt: now, Count: len(snaps), Snapshots: snaps}, format)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	tmp := path + ".tmp"
	defer func() { _ = w.fs.Remove(tmp) }()

	if err := afero.WriteFile(w.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := w.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp, path, err)
	}
	if err := afero.WriteFile(w.fs, path+checksumSuffix, []byte(checksum(data)), 0o644); err != nil {
		return fmt.Errorf("write checksum for %s: %w", path, err)
	}
	return nil
}

// Read loads an exported logbook, verifying its checksum when one exists.
func (w *Writer) Read(path, format string) (Logbook, error) {
	data, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return Logbook{}, fmt.Errorf("read %s: %w", path, err)
	}

	sum, err := afero.ReadFile(w.fs, path+checksumSuffix)
	switch {
	case err == nil:
		if strings.TrimSpace(string(sum)) != checksum(data) {
			return Logbook{}, fmt.Errorf("%s: %w", path, ErrChecksumMismatch)
		}
	case !errors.Is(err, afero.ErrFileNotFound):
		return Logbook{}, fmt.Errorf("read checksum for %s: %w", path, err)
	}

	return Decode(data, format)
}

func checksum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
