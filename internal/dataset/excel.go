// Copyright 2025 Lincoln Institute of Land Policy
// SPDX-License-Identifier: Apache-2.0

package dataset

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/internetofwater/housing/internal/opentelemetry"
	"github.com/internetofwater/housing/pkg"

	"github.com/rocketlaunchr/dataframe-go"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// ReadOptions control which part of a workbook is read
type ReadOptions struct {
	// sheet to read; empty means the first sheet in the workbook
	Sheet string
}

// ReadExcel reads one sheet of a workbook into a dataframe.
// The first row is the header. A column whose non empty cells all
// parse as numbers becomes a float series, anything else becomes a
// string series; empty cells are stored as missing values.
// Cells are read as raw values, so dates arrive as Excel serial
// numbers and are treated as numeric columns
func ReadExcel(ctx context.Context, path string, opts ReadOptions) (*dataframe.DataFrame, error) {
	span, _ := opentelemetry.SubSpanFromCtx(ctx)
	defer span.End()

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", pkg.ErrDataNotFound, path)
		}
		return nil, fmt.Errorf("%w: %s: %w", pkg.ErrDataNotFound, path, err)
	}

	workbook, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", pkg.ErrDataParse, path, err)
	}
	defer func() {
		if err := workbook.Close(); err != nil {
			log.Errorf("failed to close workbook %s: %v", path, err)
		}
	}()

	sheet := opts.Sheet
	if sheet == "" {
		sheets := workbook.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s contains no sheets", pkg.ErrDataParse, path)
		}
		sheet = sheets[0]
	}

	// raw values so number formats like "1,234" or "12%" do not hide numeric columns
	rows, err := workbook.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: sheet %q: %w", pkg.ErrDataParse, path, sheet, err)
	}
	if len(rows) == 0 || tableWidth(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: sheet %q has no header row", pkg.ErrDataParse, path, sheet)
	}

	df := newDataFrame(rows[0], rows[1:])
	log.Debugf("Read %d rows and %d columns from sheet %q of %s", df.NRows(), len(df.Series), sheet, path)
	return df, nil
}

// tableWidth is the length of the longest row; excelize trims every
// row after its last non empty cell, the header included
func tableWidth(rows [][]string) int {
	width := 0
	for _, row := range rows {
		width = max(width, len(row))
	}
	return width
}

// build one series per column, inferring the type of each column.
// Columns past the end of the header get blank names
func newDataFrame(header []string, records [][]string) *dataframe.DataFrame {
	width := max(len(header), tableWidth(records))
	padded := make([]string, width)
	copy(padded, header)
	names := columnNames(padded)
	series := make([]dataframe.Series, len(names))

	for col, name := range names {
		cells := make([]string, len(records))
		for i, record := range records {
			// rows are trimmed after their last non empty cell
			if col < len(record) {
				cells[i] = strings.TrimSpace(record[col])
			}
		}

		if numbers, ok := parseNumeric(cells); ok {
			series[col] = dataframe.NewSeriesFloat64(name, nil, numbers...)
		} else {
			series[col] = dataframe.NewSeriesString(name, nil, stringValues(cells)...)
		}
	}

	return dataframe.NewDataFrame(series...)
}

// parseNumeric returns the cells as float64 values (nil for empty cells)
// if every non empty cell is a number
func parseNumeric(cells []string) ([]interface{}, bool) {
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		if cell == "" {
			values[i] = nil
			continue
		}
		f, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, false
		}
		values[i] = f
	}
	return values, true
}

func stringValues(cells []string) []interface{} {
	values := make([]interface{}, len(cells))
	for i, cell := range cells {
		if cell == "" {
			values[i] = nil
			continue
		}
		values[i] = cell
	}
	return values
}

// columnNames names blank headers "Unnamed: <index>" and
// suffixes repeated names with .1, .2 and so on so every
// series in the frame has a unique name
func columnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, raw := range header {
		name := strings.TrimSpace(raw)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		candidate := name
		if _, dup := seen[name]; dup {
			for n := seen[name] + 1; ; n++ {
				candidate = name + "." + strconv.Itoa(n)
				if _, taken := seen[candidate]; !taken {
					seen[name] = n
					break
				}
			}
		}
		seen[candidate] = 0
		names[i] = candidate
	}
	return names
}
