package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/category"
	"github.com/gabrieliussalyga/LLMtranscriptionNERproject/internal/tool"
)

func newNormalizeCmd() *cobra.Command {
	var (
		resultPath string
		only       string
		asJSON     bool
	)
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Print the categorized statements of an extraction result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var (
				data []byte
				err  error
			)
			if resultPath == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(resultPath)
			}
			if err != nil {
				return fmt.Errorf("read result: %w", err)
			}

			result, err := tool.LoadResult(data)
			if err != nil {
				return err
			}
			out, err := tool.Normalize(result, only, category.Default())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			for _, s := range out.Sections {
				fmt.Fprintf(tw, "%s (%d)\n", s.Label, len(s.Statements))
				for _, st := range s.Statements {
					fmt.Fprintf(tw, "  %s\t%v\n", st.Text, st.Provenance)
				}
			}
			if out.Total == 0 {
				fmt.Fprintln(tw, "Nėra išgautų duomenų")
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVar(&resultPath, "result", "-", "extraction result JSON file, - for stdin")
	cmd.Flags().StringVar(&only, "category", "", "restrict output to one category key")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of text")
	return cmd
}
