package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/germanamz/hubmcp/pkg/hubtools"
	"github.com/spf13/cobra"
)

func toolsCmd() *cobra.Command {
	var schema bool

	cmd := &cobra.Command{
		Use:   "tools",
		Short: "List the tool catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if schema {
				return printSchemas(cmd.OutOrStdout())
			}
			return printCatalog(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&schema, "schema", false, "print each tool's JSON Schema")

	return cmd
}

func printCatalog(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "NAME\tREQUIRED\tOPTIONAL\tDESCRIPTION")
	for _, d := range hubtools.Catalog() {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.Name, joinOrDash(d.Required()), joinOrDash(d.Optional()), d.Description)
	}

	return tw.Flush()
}

func printSchemas(w io.Writer) error {
	type toolSchema struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		InputSchema json.RawMessage `json:"inputSchema"`
	}

	catalog := hubtools.Catalog()
	out := make([]toolSchema, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, toolSchema{Name: d.Name, Description: d.Description, InputSchema: d.Schema()})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}

func joinOrDash(names []string) string {
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, ",")
}
