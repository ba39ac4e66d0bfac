/*
Package main converts CSV records into a paginated Gantt chart.

Records are grouped and colored according to a YAML run configuration,
laid out by the gantt compiler into a backend-neutral vector document and
written as PDF, PNG, SVG or the raw JSON instruction stream. The same
document can be previewed in the terminal.
*/
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"timeline2pdf/internal/gantt"
	"timeline2pdf/internal/logging"
	"timeline2pdf/internal/render/termcanvas"
	"timeline2pdf/internal/source"
)

func main() {
	// Parse command line arguments
	debugFlag := flag.Bool("debug", false, "Enable debug mode for verbose output")
	csvFile := flag.String("csv", "", "CSV file with timeline data (required)")
	configFile := flag.String("config", "", "YAML configuration file (optional)")
	outputFile := flag.String("output", "", "Output filename (optional)")
	formatFlag := flag.String("format", "", "Output format: pdf, png, svg or json (optional)")
	titleFlag := flag.String("title", "", "Document title (optional)")
	previewFlag := flag.Bool("preview", false, "Preview the chart in the terminal instead of writing a file")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		fmt.Fprintf(os.Stderr, "  --debug             Enable debug mode for verbose output\n")
		fmt.Fprintf(os.Stderr, "  --csv <file>        CSV file with timeline data (required)\n")
		fmt.Fprintf(os.Stderr, "  --config <file>     YAML configuration file (optional)\n")
		fmt.Fprintf(os.Stderr, "  --output <file>     Output filename (optional)\n")
		fmt.Fprintf(os.Stderr, "  --format <name>     pdf, png, svg or json (default from config, else pdf)\n")
		fmt.Fprintf(os.Stderr, "  --title <text>      Document title (optional)\n")
		fmt.Fprintf(os.Stderr, "  --preview           Show the chart in the terminal\n")
		fmt.Fprintf(os.Stderr, "\nThe CSV file needs group, start and end columns; see the columns section\n")
		fmt.Fprintf(os.Stderr, "of the configuration file to rename them.\n")
		fmt.Fprintf(os.Stderr, "If no config file is specified, default settings will be used.\n")
		fmt.Fprintf(os.Stderr, "If no output file is specified, the CSV filename with the format's extension will be used.\n")
		fmt.Fprintf(os.Stderr, "PNG and SVG documents with several pages are written one file per page.\n")
		fmt.Fprintf(os.Stderr, "\nExample:\n")
		fmt.Fprintf(os.Stderr, "  %s --csv plan.csv --config plan.yaml --output plan.pdf\n", os.Args[0])
	}

	flag.Parse()

	if *debugFlag {
		logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	// Validate required arguments
	if *csvFile == "" {
		fmt.Fprintf(os.Stderr, "Error: CSV file is required. Use --csv to specify the file.\n\n")
		flag.Usage()
		os.Exit(1)
	}

	// Load configuration
	config, err := source.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *titleFlag != "" {
		config.Document.Title = *titleFlag
	}
	if *formatFlag != "" {
		config.Output.Format = *formatFlag
	}
	format := strings.ToLower(config.Output.Format)
	if !knownFormat(format) {
		fmt.Fprintf(os.Stderr, "Error: unknown output format %q\n", config.Output.Format)
		os.Exit(1)
	}
	logging.Logger().Debug("configuration loaded",
		"format", format, "hpages", config.Document.HPages, "vpages", config.Document.VPages)

	cfg, err := config.GanttConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error in configuration: %v\n", err)
		os.Exit(1)
	}

	// Parse CSV file
	table, err := source.LoadCSV(*csvFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing CSV file: %v\n", err)
		os.Exit(1)
	}
	if err := config.Check(table); err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing CSV file: %v\n", err)
		os.Exit(1)
	}

	groups := config.Groups(table.Records, cfg.Location)
	if len(groups) == 0 {
		fmt.Fprintf(os.Stderr, "Error: No usable records found in CSV file\n")
		os.Exit(1)
	}

	fmt.Printf("Loaded %d records in %d groups from %s\n", len(table.Records), len(groups), *csvFile)

	// Generate the chart
	doc, err := gantt.Generate(groups, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error generating chart: %v\n", err)
		os.Exit(1)
	}

	if *previewFlag {
		if err := termcanvas.Preview(doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error previewing chart: %v\n", err)
			os.Exit(1)
		}
		return
	}

	outputPath := getOutputFilename(*csvFile, *outputFile, format)
	written, err := writeDocument(doc, format, outputPath, config.Output.DPI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %s output: %v\n", format, err)
		os.Exit(1)
	}

	fmt.Printf("Timeline %s generated successfully (%d pages): %s\n",
		strings.ToUpper(format), len(doc.Pages), strings.Join(written, ", "))
}
