package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/tui"
	"github.com/ukaji3/mesacheck-go/pkg/mesacheck/watch"
)

func newTUICmd(a *app) *cobra.Command {
	var (
		outputPath        string
		confirmationsPath string
		watchInput        bool
	)

	cmd := &cobra.Command{
		Use:   "tui <input.xlsx>",
		Short: "Confirm guests interactively in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			data, err := mesacheck.ReadFile(input)
			if err != nil {
				return err
			}

			session := mesacheck.NewSession(a.options(), a.logger)
			if _, err := session.Load(filepath.Base(input), data); err != nil {
				return err
			}
			if err := restoreConfirmations(session, confirmationsPath); err != nil {
				return err
			}

			if outputPath == "" {
				outputPath = a.cfg.OutputName
			}
			opts := tui.Options{
				Input:         input,
				Output:        outputPath,
				Confirmations: confirmationsPath,
				Logger:        a.logger,
			}

			if watchInput {
				w, err := watch.New(input, a.logger)
				if err != nil {
					return err
				}
				if err := w.Start(cmd.Context()); err != nil {
					w.Stop()
					return err
				}
				defer w.Stop()
				opts.Changes = w.Changes()
			}

			p := tea.NewProgram(tui.New(session, opts), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("tui: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output file path (default: confirmacao_atualizada.xlsx)")
	cmd.Flags().StringVar(&confirmationsPath, "confirmations", "", "YAML file to restore confirmations from and save them to")
	cmd.Flags().BoolVar(&watchInput, "watch", false, "Reload the input when it changes on disk (clears confirmations)")
	return cmd
}

// restoreConfirmations confirms the cells listed in path. A missing file
// is not an error; it is created on the first save.
func restoreConfirmations(session *mesacheck.Session, path string) error {
	if path == "" {
		return nil
	}
	coords, err := mesacheck.LoadConfirmations(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, c := range coords {
		if session.IsConfirmed(c) {
			continue
		}
		if _, err := session.Toggle(c); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}
