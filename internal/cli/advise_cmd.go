package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/haithamsoil/nasgh/internal/advisor"
	"github.com/haithamsoil/nasgh/internal/domain"
)

func newAdviseCmd(app *App) *cobra.Command {
	var (
		plant string
		stage string
		file  string
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Classify a soil reading and print advisory text",
		Long: "Reads a soil reading as JSON (from --file or stdin), resolves the ideal\n" +
			"ranges for the given plant and stage, classifies each parameter and asks\n" +
			"the advisory backend for recommendations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			reading, err := readReading(cmd, file)
			if err != nil {
				return err
			}
			if len(reading) == 0 {
				return fmt.Errorf("reading contains no recognized sensor values")
			}

			parsedStage, err := domain.ParseStage(stage)
			if err != nil {
				return err
			}

			resolution, err := app.Resolver.Resolve(cmd.Context(), plant, parsedStage, reading)
			if err != nil {
				return fmt.Errorf("resolving targets: %w", err)
			}

			summary := advisor.Summarize(reading, resolution.Targets)
			for _, entry := range advisor.Entries(reading, resolution.Targets) {
				fmt.Fprintf(cmd.OutOrStdout(), "%-22s %v (%s)\n",
					entry.Parameter.WireKey(), entry.Value, entry.Status)
			}

			text, err := app.Advisor.Advise(cmd.Context(), advisor.AdviceRequest{
				Reading:       reading,
				PlantName:     plant,
				StageLabel:    stage,
				StatusSummary: summary,
			})
			if err != nil {
				return fmt.Errorf("advisory backend: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}

	cmd.Flags().StringVar(&plant, "plant", "", "plant name (Arabic or English)")
	cmd.Flags().StringVar(&stage, "stage", "vegetative", "growth stage")
	cmd.Flags().StringVar(&file, "file", "", "read soil JSON from file instead of stdin")
	_ = cmd.MarkFlagRequired("plant")
	return cmd
}

func readReading(cmd *cobra.Command, file string) (domain.Reading, error) {
	var raw []byte
	var err error
	if file != "" {
		raw, err = os.ReadFile(file)
	} else {
		raw, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return nil, fmt.Errorf("reading soil input: %w", err)
	}

	var reading domain.Reading
	if err := json.Unmarshal(raw, &reading); err != nil {
		return nil, fmt.Errorf("parsing soil input: %w", err)
	}
	return reading, nil
}
