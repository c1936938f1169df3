package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ezrec/asmls/register"
	"github.com/ezrec/asmls/translate"
)

// ErrFormat is an unsupported output format.
type ErrFormat string

func (err ErrFormat) Error() string {
	return translate.From("unknown format %q", string(err))
}

// writeRegisters prints the registers matching prefix in the given format.
func writeRegisters(w io.Writer, cat *register.Catalog, format string, prefix string) (err error) {
	regs := slices.Collect(cat.WithPrefix(prefix))

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(regs)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err = enc.Encode(regs)
		if err == nil {
			err = enc.Close()
		}
	case "text":
		tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tBITS\tCLASS\tDESCRIPTION")
		for _, reg := range regs {
			summary, _, _ := strings.Cut(reg.Description, "\n")
			fmt.Fprintf(tw, "%v\t%d\t%v\t%v\n", reg.Name, reg.Bits, reg.Class, summary)
		}
		err = tw.Flush()
	default:
		err = ErrFormat(format)
	}

	return
}

func registersCmd() *cobra.Command {
	var format string
	var prefix string

	cmd := &cobra.Command{
		Use:   "registers",
		Short: "Print the register catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeRegisters(cmd.OutOrStdout(), register.Build(), format, prefix)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "Only registers starting with this prefix")

	return cmd
}
