package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"ai-playground/internal/logger"
	"ai-playground/internal/service"
)

func newGenerateCmd() *cobra.Command {
	var prompt string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run one generation from the command line",
		Long: `Runs a single prediction with the same fixed parameters as the web page
and prints the result as JSON.`,
		Example: `  ai-playground generate --prompt "a cat wearing a hat while sat on a mat"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig(logger.WithDefaultOutput("stderr"))
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			a, err := newApp(cfg, log)
			if err != nil {
				return err
			}
			return runGenerate(cmd.Context(), a.imageService, prompt, cmd.OutOrStdout(), log)
		},
	}

	cmd.Flags().StringVar(&prompt, "prompt", "", "Prompt to generate an image for")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

func runGenerate(ctx context.Context, svc service.ImageService, prompt string, w io.Writer, log *zap.Logger) error {
	outcome := svc.Generate(ctx, prompt)
	if outcome.Failed() {
		if outcome.Err == nil {
			return fmt.Errorf("generation returned no result")
		}
		return outcome.Err
	}

	if len(outcome.Result.Output) == 0 {
		log.Warn("No result produced", zap.Int("promptLen", len(prompt)))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(outcome.Result); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
