package csvlog

import (
	"fmt"
	"os"
	"time"
)

// Writer appends samples to a datalog file in the schema Read understands.
// A new file gets a comment preamble and the header row; an existing file is
// appended to as-is.
type Writer struct {
	f *os.File
}

func NewWriter(path, source string) (*Writer, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open datalog %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat datalog %s: %w", path, err)
	}

	if info.Size() == 0 {
		preamble := fmt.Sprintf("# lunchbox CO2 datalog\n# started %s\n"+
			"Timestamp UTC [Unix],Timestamp Local [yyyy-MM-dd hh:mm:ss],CO2 ppm [%s]\n",
			time.Now().Format(timeLayout), source)
		if _, err := f.WriteString(preamble); err != nil {
			f.Close()
			return nil, fmt.Errorf("write datalog header: %w", err)
		}
	}

	return &Writer{f: f}, nil
}

func (w *Writer) Append(at time.Time, co2 float64) error {
	row := fmt.Sprintf("%.2f,%s,%.1f\n",
		float64(at.UnixNano())/1e9, at.Format(timeLayout), co2)
	if _, err := w.f.WriteString(row); err != nil {
		return fmt.Errorf("append datalog row: %w", err)
	}
	return nil
}

func (w *Writer) Close() error {
	return w.f.Close()
}
