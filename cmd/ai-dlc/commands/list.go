package commands

import (
	"encoding/json"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/walteh/aidlc/cmd/ai-dlc/opts"
	"github.com/walteh/aidlc/pkg/log"
	"github.com/walteh/aidlc/pkg/scaffold"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"
)

// NewListCmd creates a new list command
func NewListCmd(opts *opts.RootOpts) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the bundled providers",
		Long: `List prints every provider bundled into the binary, the hidden directory
used by hidden mode (if any) and the number of template files it holds.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := opts.Catalog()
			if err != nil {
				return errors.Errorf("loading catalog: %w", err)
			}

			summaries := scaffold.Describe(cat)
			out := cmd.OutOrStdout()

			switch format {
			case "table":
				rows := make([][]string, 0, len(summaries))
				for _, s := range summaries {
					hidden := s.HiddenDir
					if hidden == "" {
						hidden = "-"
					}
					rows = append(rows, []string{s.Name, hidden, strconv.Itoa(s.Files)})
				}
				if err := log.FromContext(cmd.Context()).Table([]string{"PROVIDER", "HIDDEN DIR", "FILES"}, rows); err != nil {
					return errors.Errorf("printing providers: %w", err)
				}
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(summaries); err != nil {
					return errors.Errorf("encoding providers as yaml: %w", err)
				}
				if err := enc.Close(); err != nil {
					return errors.Errorf("closing yaml encoder: %w", err)
				}
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(summaries); err != nil {
					return errors.Errorf("encoding providers as json: %w", err)
				}
			default:
				return errors.Errorf("unknown format %q, expected table, yaml or json", format)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "table", "output format, table, yaml or json")

	return cmd
}
