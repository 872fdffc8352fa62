package main

import (
	"encoding/json"
	"fmt"

	"github.com/aretw0/schematic/internal/presentation/graph"
	"github.com/aretw0/schematic/pkg/declare"
	"github.com/aretw0/schematic/pkg/ports"
	"github.com/spf13/cobra"
)

var describeCmd = &cobra.Command{
	Use:   "describe [kind]",
	Short: "Describe one kind, or every kind when none is given",
	Long: `Prints kind declarations.

Formats:
- json (default): the declarations as loaded.
- openapi: OpenAPI 3 schema components; nested kinds are $ref links.
- mermaid: a class diagram of the kinds and their compositions.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		catalog, _, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		var decls []*declare.Declaration
		if len(args) == 1 {
			decl, err := catalog.Describe(args[0])
			if err != nil {
				return err
			}
			decls = []*declare.Declaration{decl}
		} else {
			if decls, err = ports.Declarations(catalog); err != nil {
				return err
			}
		}

		out := cmd.OutOrStdout()
		switch format {
		case "mermaid":
			fmt.Fprint(out, graph.GenerateMermaid(decls))
			return nil
		case "openapi":
			return printJSON(cmd, declare.Components(decls...))
		case "json":
			if len(decls) == 1 {
				return printJSON(cmd, decls[0])
			}
			return printJSON(cmd, decls)
		default:
			return fmt.Errorf("unknown format %q (want json, openapi or mermaid)", format)
		}
	},
}

func init() {
	rootCmd.AddCommand(describeCmd)
	describeCmd.Flags().StringP("format", "f", "json", "Output format: json, openapi or mermaid")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
