package csvlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const sampleLog = `# XENSIV PAS CO2 datalog
# device: COM3
Timestamp UTC [Unix],Timestamp Local [yyyy-MM-dd hh:mm:ss],CO2 ppm [COM3]
1752946561.00,2025-07-19 18:36:01,412.0
1752946571.00,2025-07-19 18:36:11,414.5
not-a-number,2025-07-19 18:36:21,417.0
1752946591.00,2025-07-19 18:36:31,419.5
`

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	assert.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRead(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "PAS_CO2_datalog_1.csv", sampleLog)

	samples, err := Read(path)
	assert.NoError(t, err)
	assert.Len(t, samples, 3)

	assert.InDelta(t, 1752946561.0, samples[0].Unix, 1e-6)
	assert.InDelta(t, 412.0, samples[0].CO2, 1e-9)
	assert.Equal(t, 2025, samples[0].At.Year())

	// malformed row dropped, later rows kept
	assert.InDelta(t, 419.5, samples[2].CO2, 1e-9)
}

func TestRead_MissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestRead_NoDataRows(t *testing.T) {
	path := writeTemp(t, t.TempDir(), "empty.csv",
		"# comment only\nTimestamp UTC [Unix],Timestamp Local [yyyy-MM-dd hh:mm:ss],CO2 ppm [COM3]\n")

	_, err := Read(path)
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}

func TestWriter_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PAS_CO2_datalog_rt.csv")

	w, err := NewWriter(path, "/dev/tty.usbmodem1101")
	assert.NoError(t, err)

	base := time.Date(2025, 7, 19, 18, 36, 1, 0, time.Local)
	assert.NoError(t, w.Append(base, 412.0))
	assert.NoError(t, w.Append(base.Add(10*time.Second), 414.5))
	assert.NoError(t, w.Close())

	samples, err := Read(path)
	assert.NoError(t, err)
	assert.Len(t, samples, 2)
	assert.InDelta(t, 412.0, samples[0].CO2, 1e-9)
	assert.InDelta(t, 10.0, samples[1].Unix-samples[0].Unix, 1e-6)
}

func TestWriter_AppendsToExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "PAS_CO2_datalog_app.csv")
	base := time.Date(2025, 7, 19, 18, 36, 1, 0, time.Local)

	w, err := NewWriter(path, "sim")
	assert.NoError(t, err)
	assert.NoError(t, w.Append(base, 412.0))
	assert.NoError(t, w.Close())

	// reopening must not write a second header
	w, err = NewWriter(path, "sim")
	assert.NoError(t, err)
	assert.NoError(t, w.Append(base.Add(10*time.Second), 414.5))
	assert.NoError(t, w.Close())

	samples, err := Read(path)
	assert.NoError(t, err)
	assert.Len(t, samples, 2)
}

func TestLatestFile(t *testing.T) {
	dir := t.TempDir()

	older := writeTemp(t, dir, "PAS_CO2_datalog_a.csv", sampleLog)
	newer := writeTemp(t, dir, "PAS_CO2_datalog_b.csv", sampleLog)
	writeTemp(t, dir, "unrelated.csv", sampleLog)

	past := time.Now().Add(-time.Hour)
	assert.NoError(t, os.Chtimes(older, past, past))

	got, err := LatestFile(dir, "PAS_CO2_datalog_")
	assert.NoError(t, err)
	assert.Equal(t, newer, got)
}

func TestLatestFile_NoMatch(t *testing.T) {
	_, err := LatestFile(t.TempDir(), "PAS_CO2_datalog_")
	assert.ErrorIs(t, err, ErrSourceUnavailable)
}
