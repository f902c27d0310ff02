package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/output"
)

func newListCmd(a *app) *cobra.Command {
	var (
		asJSON bool
		pretty bool
	)

	cmd := &cobra.Command{
		Use:   "list <input.xlsx>",
		Short: "List the tables and guests of a seating sheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			roster, err := mesacheck.ParseFile(args[0], a.options())
			if err != nil {
				return err
			}

			view := output.NewRosterView(roster, nil)
			view.FileName = filepath.Base(args[0])

			if !asJSON {
				return output.WriteText(cmd.OutOrStdout(), view)
			}
			data, err := output.ToJSON(view, pretty)
			if err != nil {
				return fmt.Errorf("serialization failed: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of text")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	return cmd
}
