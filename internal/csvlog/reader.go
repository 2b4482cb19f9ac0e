// Package csvlog reads and writes the datalog CSV schema shared by the
// sensor GUI and this tool: `#` comment lines, a header row, then one row
// per sample with a raw unix timestamp, a local timestamp string and the CO2
// concentration in ppm. The third column's name varies with the device port,
// so columns are addressed by position.
package csvlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/mdekauwe/lunchbox-photosynthesis/internal/entity"
)

const timeLayout = "2006-01-02 15:04:05"

var ErrSourceUnavailable = errors.New("no usable data source")

// Read parses a datalog file into raw samples. Rows need not be sorted;
// malformed rows are skipped. A missing file or a file without any parseable
// row is ErrSourceUnavailable.
func Read(path string) ([]entity.GasSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceUnavailable, err)
	}
	defer f.Close()

	samples, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%w: %s has no data rows", ErrSourceUnavailable, path)
	}

	return samples, nil
}

func parse(r io.Reader) ([]entity.GasSample, error) {
	cr := csv.NewReader(r)
	cr.Comment = '#'
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header := true
	var samples []entity.GasSample

	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return samples, nil
		}
		if err != nil {
			return nil, err
		}

		if header {
			header = false
			continue
		}
		if len(record) < 3 {
			continue
		}

		unix, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			continue
		}
		at, err := time.ParseInLocation(timeLayout, record[1], time.Local)
		if err != nil {
			continue
		}
		co2, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}

		samples = append(samples, entity.GasSample{
			At:   at,
			Unix: unix,
			CO2:  co2,
		})
	}
}
