package adapters

import (
	"encoding/csv"
	"os"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"refmap/internal/types"
)

// CSVValueAdapter loads a sensor log CSV once and serves column lookups
// from memory. The first row is the header; every other row is one
// sample. Cells that do not parse as numbers are skipped, so a column
// full of text simply has no reading.
type CSVValueAdapter struct {
	columns map[string]int
	header  []string
	values  map[string][]float64
}

func NewCSVValueAdapter(path string) (*CSVValueAdapter, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("sensor data file not found").
			WithCause(err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse sensor data csv").
			WithCause(err)
	}
	if len(records) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("sensor data csv has no header row")
	}

	adapter := &CSVValueAdapter{
		columns: make(map[string]int),
		values:  make(map[string][]float64),
	}
	for idx, name := range records[0] {
		trimmed := strings.TrimSpace(name)
		adapter.header = append(adapter.header, trimmed)
		if _, seen := adapter.columns[trimmed]; !seen {
			adapter.columns[trimmed] = idx
		}
	}
	for _, record := range records[1:] {
		for idx, cell := range record {
			if idx >= len(adapter.header) {
				break
			}
			parsed, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				continue
			}
			name := adapter.header[idx]
			adapter.values[name] = append(adapter.values[name], parsed)
		}
	}
	return adapter, nil
}

func (a *CSVValueAdapter) ColumnExists(name string) bool {
	_, ok := a.columns[name]
	return ok
}

func (a *CSVValueAdapter) ColumnIndex(name string) (int, bool) {
	idx, ok := a.columns[name]
	return idx, ok
}

func (a *CSVValueAdapter) Columns() []string {
	return append([]string(nil), a.header...)
}

func (a *CSVValueAdapter) Value(name string, aggregation types.Aggregation) (float64, bool) {
	samples := a.values[name]
	if len(samples) == 0 {
		return 0, false
	}
	switch aggregation {
	case types.AggregationMaximum:
		max := samples[0]
		for _, v := range samples[1:] {
			if v > max {
				max = v
			}
		}
		return max, true
	case types.AggregationMinimum:
		min := samples[0]
		for _, v := range samples[1:] {
			if v < min {
				min = v
			}
		}
		return min, true
	case types.AggregationLast:
		return samples[len(samples)-1], true
	default:
		sum := 0.0
		for _, v := range samples {
			sum += v
		}
		return sum / float64(len(samples)), true
	}
}
