package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/models"
	"go.uber.org/zap"
)

func newRenderCmd(a *app) *cobra.Command {
	var (
		outputPath        string
		confirm           []string
		confirmationsPath string
	)

	cmd := &cobra.Command{
		Use:   "render <input.xlsx>",
		Short: "Write the sheet with names re-cased and confirmations highlighted",
		Example: `  mesacheck render convidados.xlsx --confirm R2C1 --confirm R5C3
  mesacheck render convidados.xlsx --confirmations confirmados.yaml -o final.xlsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := mesacheck.ReadFile(args[0])
			if err != nil {
				return err
			}
			roster, err := mesacheck.Parse(data, a.options())
			if err != nil {
				return err
			}

			confirmed, err := collectConfirmations(roster, confirm, confirmationsPath)
			if err != nil {
				return err
			}

			out, err := mesacheck.Render(data, confirmed, a.options())
			if err != nil {
				return fmt.Errorf("render failed: %w", err)
			}

			if outputPath == "" {
				outputPath = a.cfg.OutputName
			}
			if err := os.WriteFile(outputPath, out, 0644); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}

			a.logger.Info("workbook rendered",
				zap.String("input", args[0]),
				zap.String("output", outputPath),
				zap.Int("confirmed", confirmed.Len()))
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Confirmados: %d/%d -> %s\n", confirmed.Len(), roster.Len(), outputPath)
			return err
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: confirmacao_atualizada.xlsx)")
	cmd.Flags().StringSliceVar(&confirm, "confirm", nil, "Confirmed cell, e.g. R2C1 (repeatable)")
	cmd.Flags().StringVar(&confirmationsPath, "confirmations", "", "YAML file listing confirmed cells")
	return cmd
}

// collectConfirmations merges coordinates given as flags with those of a
// confirmations file. Every coordinate must name a guest of roster.
func collectConfirmations(roster *models.Roster, keys []string, path string) (*models.ConfirmedSet, error) {
	coords := make([]models.Coord, 0, len(keys))
	for _, k := range keys {
		c, err := models.ParseCoord(k)
		if err != nil {
			return nil, err
		}
		coords = append(coords, c)
	}

	if path != "" {
		fromFile, err := mesacheck.LoadConfirmations(path)
		if err != nil {
			return nil, err
		}
		coords = append(coords, fromFile...)
	}

	for _, c := range coords {
		if _, ok := roster.Item(c); !ok {
			return nil, fmt.Errorf("%w: %s", mesacheck.ErrUnknownItem, c)
		}
	}
	return models.NewConfirmedSet(coords...), nil
}
