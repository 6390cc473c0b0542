package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/haithamsoil/nasgh/internal/domain"
)

func newTargetsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "targets <plant> <stage>",
		Short: "Resolve ideal soil ranges for a plant and growth stage",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			stage, err := domain.ParseStage(args[1])
			if err != nil {
				return err
			}

			resolution, err := app.Resolver.Resolve(cmd.Context(), args[0], stage, nil)
			if err != nil {
				return fmt.Errorf("resolving targets: %w", err)
			}

			out, err := json.MarshalIndent(resolution, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
