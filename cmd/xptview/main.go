// Command xptview inspects a SAS XPORT Version 5 file: its dataset
// metadata, variable table, row count, and missing-value histogram.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/bgrewell/usage"
	"github.com/go-xport/xport-kit/pkg/ibmfloat"
	"github.com/go-xport/xport-kit/pkg/logging"
	"github.com/go-xport/xport-kit/pkg/option"
	"github.com/go-xport/xport-kit/pkg/xport"
	"golang.org/x/term"
)

func main() {
	u := usage.NewUsage(
		usage.WithApplicationName("xptview"),
		usage.WithApplicationDescription("xptview inspects a SAS XPORT Version 5 transport file: dataset metadata, the variable table, row count, and a missing-value histogram."),
	)

	help := u.AddBooleanOption("h", "help", false, "Show this help message", "optional", nil)
	verbose := u.AddBooleanOption("v", "verbose", false, "Print the full variable table", "", nil)
	basic := u.AddBooleanOption("b", "basic", false, "Parse in BASIC strictness mode instead of FDA_SUBMISSION", "", nil)
	path := u.AddArgument(1, "xpt-path", "Path to the .xpt file to inspect", "")
	parsed := u.Parse()

	if !parsed {
		u.PrintError(fmt.Errorf("failed to parse arguments"))
		os.Exit(1)
	}
	if *help {
		u.PrintUsage()
		os.Exit(0)
	}
	if path == nil || *path == "" {
		u.PrintError(fmt.Errorf("path to the .xpt file must be provided"))
		os.Exit(1)
	}

	logger := logging.NewLogger(logging.NewSimpleLogger(os.Stderr, logging.LEVEL_INFO, term.IsTerminal(int(os.Stderr.Fd()))))

	f, err := os.Open(*path)
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer f.Close()

	mode := option.FdaSubmission
	if *basic {
		mode = option.Basic
	}

	im, err := xport.ImportTransport(f, option.WithImportLogger(logger), option.WithImportStrictness(mode))
	if err != nil {
		u.PrintError(err)
		os.Exit(1)
	}
	defer im.Close()

	displayDataset(im, *verbose)
}

func displayDataset(im *xport.Importer, verbose bool) {
	desc := im.Description()
	ds := desc.Dataset

	fmt.Println("=== Dataset ===")
	fmt.Printf("Name: %s\n", ds.Name)
	fmt.Printf("Label: %s\n", ds.Label)
	fmt.Printf("Type: %s\n", ds.Type)
	fmt.Printf("Source OS: %s\n", desc.SourceOperatingSystem)
	fmt.Printf("Source SAS version: %s\n", desc.SourceSasVersion)
	fmt.Printf("Created: %s\n", ds.CreateTime)
	fmt.Printf("Modified: %s\n", ds.ModifiedTime)
	fmt.Printf("Variables: %d\n", len(ds.Variables))

	if verbose {
		fmt.Println("\n=== Variables ===")
		for _, v := range ds.Variables {
			fmt.Printf("  #%-4d %-8s %-9s len=%-5d label=%s\n", v.Number, v.Name, typeName(v), v.Length, v.Label)
		}
	}

	missing := map[ibmfloat.MissingValue]int{}
	rows := 0
	for {
		obs, err := im.NextObservation()
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, "error reading observation:", err)
			os.Exit(1)
		}
		rows++
		for _, value := range obs.Values() {
			if mv, ok := value.(ibmfloat.MissingValue); ok {
				missing[mv]++
			}
		}
	}

	fmt.Printf("\nObservations: %d\n", rows)
	if len(missing) > 0 {
		fmt.Println("\n=== Missing values ===")
		for _, mv := range ibmfloat.All28() {
			if n := missing[mv]; n > 0 {
				fmt.Printf("  %s: %d\n", mv.String(), n)
			}
		}
	}
}

func typeName(v xport.Variable) string {
	if v.IsCharacter() {
		return "CHARACTER"
	}
	return "NUMERIC"
}
