// Command xptcreate builds a SAS XPORT Version 5 file from a CSV input
// and a column-type hint file, the flat-dataset analogue of building
// an ISO image from a directory tree.
package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/bgrewell/usage"
	"github.com/go-xport/xport-kit/pkg/logging"
	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/go-xport/xport-kit/pkg/xport"
	"github.com/theckman/yacspin"
	"golang.org/x/term"
)

// columnHint describes one CSV column's target variable, read from a
// "name,type,length" hint file (type is NUMERIC or CHARACTER).
type columnHint struct {
	name     string
	numeric  bool
	length   int
}

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("xptcreate"),
		usage.WithApplicationDescription("xptcreate builds a SAS XPORT Version 5 file from a CSV input and a column-type hint file."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	datasetName := u.AddArgument(1, "dataset-name", "Dataset name (1-8 SAS identifier characters)", "DATASET")
	csvPath := u.AddArgument(2, "csv-path", "Path to the input CSV file (first row is the header)", "")
	hintPath := u.AddArgument(3, "hints-path", "Path to the column hint file (name,type,length per line)", "")
	outPath := u.AddArgument(4, "xpt-path", "Path to the .xpt file to write", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if *csvPath == "" || *hintPath == "" || *outPath == "" {
		u.PrintError(fmt.Errorf("csv-path, hints-path, and xpt-path must all be provided"))
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_INFO, term.IsTerminal(int(os.Stderr.Fd()))))

	hints, err := loadHints(*hintPath)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	variables := make([]xport.Variable, len(hints))
	for i, h := range hints {
		if h.numeric {
			variables[i] = xport.Variable{Name: h.name, Type: xport.Numeric, Length: h.length}
		} else {
			variables[i] = xport.Variable{Name: h.name, Type: xport.Character, Length: h.length}
		}
	}

	now := time.Now()
	lib := xport.LibraryDescription{
		SourceOperatingSystem: "LINUX",
		SourceSasVersion:      "9.4",
		CreateTime:            now,
		ModifiedTime:          now,
		Dataset: xport.DatasetDescription{
			Name:                  *datasetName,
			SourceOperatingSystem: "LINUX",
			SourceSasVersion:      "9.4",
			CreateTime:            now,
			ModifiedTime:          now,
			Variables:             variables,
		},
	}

	out, err := os.Create(*outPath)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer out.Close()

	ex, err := xport.ExportTransport(lib, out, option.WithExportLogger(logger))
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	in, err := os.Open(*csvPath)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer in.Close()

	spinner, err := yacspin.New(yacspin.Config{
		Frequency:       100 * time.Millisecond,
		CharSet:         yacspin.CharSets[9],
		Suffix:          " streaming observations",
		SuffixAutoColon: true,
		Message:         "starting",
	})
	if err == nil {
		_ = spinner.Start()
		defer spinner.Stop()
	}

	rows, err := streamObservations(in, hints, ex, spinner)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	if err := ex.Close(); err != nil {
		u.PrintError(err)
		os.Exit(1)
	}

	if spinner != nil {
		_ = spinner.Stop()
	}
	logger.Info("wrote xport file", "path", *outPath, "rows", rows)
}

func loadHints(path string) ([]columnHint, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 3
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}

	hints := make([]columnHint, 0, len(records))
	for _, rec := range records {
		length, err := strconv.Atoi(strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("hint file: invalid length %q for column %q", rec[2], rec[0])
		}
		hints = append(hints, columnHint{
			name:    strings.TrimSpace(rec[0]),
			numeric: strings.EqualFold(strings.TrimSpace(rec[1]), "NUMERIC"),
			length:  length,
		})
	}
	return hints, nil
}

func streamObservations(r io.Reader, hints []columnHint, ex *xport.Exporter, spinner *yacspin.Spinner) (int, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = len(hints)

	// Skip the CSV header row.
	if _, err := csvReader.Read(); err != nil {
		if err == io.EOF {
			return 0, nil
		}
		return 0, err
	}

	rows := 0
	for {
		record, err := csvReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, err
		}

		values := make([]any, len(hints))
		for i, h := range hints {
			if h.numeric {
				v, err := strconv.ParseFloat(strings.TrimSpace(record[i]), 64)
				if err != nil {
					return rows, fmt.Errorf("row %d column %q: %w", rows+1, h.name, err)
				}
				values[i] = v
			} else {
				values[i] = record[i]
			}
		}

		if err := ex.AppendObservation(values); err != nil {
			return rows, fmt.Errorf("row %d: %w", rows+1, err)
		}
		rows++
		if spinner != nil {
			spinner.Message(fmt.Sprintf("%d rows written", rows))
		}
	}
	return rows, nil
}
