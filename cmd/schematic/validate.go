package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aretw0/schematic"
	"github.com/aretw0/schematic/internal/presentation/tui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"
)

// errInvalid makes the command exit non-zero once the report is printed.
var errInvalid = errors.New("entity is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate <kind> [file|-]",
	Short: "Validate a YAML or JSON document against a kind",
	Long: `Reads field values from a file (or Stdin when the file is "-" or omitted),
resolves them against the kind and prints the resulting report.

The report is rendered for humans when Stdout is a terminal and printed as JSON
otherwise. The command exits with status 1 when the entity is invalid.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		catalog, _, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		source := "-"
		if len(args) == 2 {
			source = args[1]
		}
		data, err := readDocument(cmd.InOrStdin(), source)
		if err != nil {
			return err
		}

		report, err := catalog.Validate(args[0], data)
		if err != nil {
			return err
		}

		if output == "auto" {
			output = "json"
			if f, ok := cmd.OutOrStdout().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
				output = "pretty"
			}
		}
		if err := writeReport(cmd.OutOrStdout(), catalog, report, output); err != nil {
			return err
		}
		if !report.Valid {
			return errInvalid
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringP("output", "o", "auto", "Output format: auto, json or pretty")
}

// readDocument decodes a YAML or JSON object. JSON is read by the YAML
// decoder as well.
func readDocument(stdin io.Reader, source string) (map[string]any, error) {
	var raw []byte
	var err error
	if source == "-" {
		raw, err = io.ReadAll(stdin)
	} else {
		raw, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	var data map[string]any
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode document %s: expected an object: %w", source, err)
	}
	return data, nil
}

func writeReport(w io.Writer, catalog *schematic.Catalog, report schematic.Report, output string) error {
	switch output {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	case "pretty":
		k, err := catalog.Registry().Lookup(report.Kind)
		if err != nil {
			return err
		}
		render, err := tui.NewRenderer(80)
		if err != nil {
			return err
		}
		out, err := render(tui.ReportMarkdown(report, k.Schema.Fields()))
		if err != nil {
			return fmt.Errorf("failed to render report: %w", err)
		}
		fmt.Fprint(w, out)
		fmt.Fprintf(w, "%s is %s\n", report.Kind, tui.Status(report.Valid))
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want auto, json or pretty)", output)
	}
}
