package export

import (
	"testing"
	"time"

	"github.com/josephgoksu/DayWing/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func sampleSnapshots() []models.Snapshot {
	return []models.Snapshot{
		{
			ID:          "task-aaaa0001",
			Title:       "Quarterly taxes",
			Description: "paid online",
			Priority:    models.PriorityHigh,
			CompletedAt: time.Date(2025, 1, 15, 9, 30, 0, 0, time.UTC),
			CreatedAt:   time.Date(2025, 1, 2, 8, 0, 0, 0, time.UTC),
			Tags:        []string{"finance"},
			ArchivedAt:  now,
		},
		{
			ID:          "task-aaaa0002",
			Title:       "Fix bike",
			CompletedAt: time.Date(2025, 2, 1, 18, 0, 0, 0, time.UTC),
			CreatedAt:   time.Date(2025, 1, 20, 8, 0, 0, 0, time.UTC),
			ArchivedAt:  now,
		},
	}
}

func TestWriter_WriteAndRead(t *testing.T) {
	for _, format := range []string{FormatJSON, FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			w := NewWriter(fs)
			path := "/exports/logbook." + format

			require.NoError(t, w.Write(path, format, sampleSnapshots(), now))

			exists, err := afero.Exists(fs, path+".tmp")
			require.NoError(t, err)
			assert.False(t, exists, "temporary file must be renamed away")

			lb, err := w.Read(path, format)
			require.NoError(t, err)
			assert.Equal(t, 2, lb.Count)
			assert.True(t, now.Equal(lb.ExportedAt))
			require.Len(t, lb.Snapshots, 2)

			first := lb.Snapshots[0]
			assert.Equal(t, "task-aaaa0001", first.ID)
			assert.Equal(t, "Quarterly taxes", first.Title)
			assert.Equal(t, models.PriorityHigh, first.Priority)
			assert.Equal(t, []string{"finance"}, first.Tags)
			assert.True(t, sampleSnapshots()[0].CompletedAt.Equal(first.CompletedAt))
		})
	}
}

func TestWriter_EmptyLogbook(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	require.NoError(t, w.Write("empty.json", FormatJSON, nil, now))

	data, err := afero.ReadFile(fs, "empty.json")
	require.NoError(t, err)
	assert.Contains(t, string(data), `"snapshots": []`)
}

func TestWriter_DetectsTampering(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	require.NoError(t, w.Write("lb.json", FormatJSON, sampleSnapshots(), now))

	data, err := afero.ReadFile(fs, "lb.json")
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "lb.json", append(data, ' '), 0o644))

	_, err = w.Read("lb.json", FormatJSON)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestWriter_ReadWithoutChecksum(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	require.NoError(t, afero.WriteFile(fs, "hand.yaml", []byte("count: 0\nsnapshots: []\n"), 0o644))

	lb, err := w.Read("hand.yaml", FormatYAML)
	require.NoError(t, err)
	assert.Zero(t, lb.Count)
}

func TestWriter_UnsupportedFormat(t *testing.T) {
	w := NewWriter(afero.NewMemMapFs())
	assert.Error(t, w.Write("lb.xml", "xml", sampleSnapshots(), now))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "json", want: FormatJSON},
		{in: " YAML ", want: FormatYAML},
		{in: "yml", want: FormatYAML},
		{in: "Toml", want: FormatTOML},
		{in: "csv", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatTOML, FormatFromPath("out/logbook.toml", FormatJSON))
	assert.Equal(t, FormatYAML, FormatFromPath("logbook.yml", FormatJSON))
	assert.Equal(t, FormatJSON, FormatFromPath("logbook.txt", FormatJSON))
	assert.Equal(t, FormatYAML, FormatFromPath("logbook", FormatYAML))
}
