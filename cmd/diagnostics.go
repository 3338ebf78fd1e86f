// file: cmd/diagnostics.go
// version: 1.1.0
// guid: 5f6a7b8c-9d0e-1f2a-3b4c-5d6e7f8a9bff

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkurosawa/honne/internal/config"
	"github.com/mkurosawa/honne/internal/models"
	"github.com/mkurosawa/honne/internal/server"
	"github.com/mkurosawa/honne/internal/textnorm"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging helpers",
		Long:  "Diagnostic utilities for inspecting configuration and exercising the matching engine.",
	}

	configDumpCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.AppConfig
			cfg.OpenAI.APIKey = "" // never print credentials
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(cfg)
		},
	}

	normalizeCmd = &cobra.Command{
		Use:   "normalize <text>",
		Short: "Show how a string normalizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("full:     %q\n", textnorm.Normalize(args[0]))
			fmt.Printf("light:    %q\n", textnorm.NormalizeLight(args[0]))
			fmt.Printf("flexible: %q\n", textnorm.NormalizeFlexible(args[0]))
			return nil
		},
	}

	selftestCmd = &cobra.Command{
		Use:   "selftest",
		Short: "Run a built-in matching scenario and print cache stats",
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := newEngine()
			text := "職種：ＩＴエンジニア\n給与：年俸５００万円〜\nアットホームな職場です。"
			findings := []models.Finding{
				{
					OriginalPhrase:     "ITエンジニア",
					PotentialRealities: []string{"職務範囲が曖昧なまま何でも任される可能性"},
					PointsToCheck:      []string{"担当業務の具体的な範囲"},
				},
				{
					OriginalPhrase:     "アットホームな職場",
					PotentialRealities: []string{"公私の境界が曖昧な労働環境"},
					PointsToCheck:      []string{"残業時間の実態"},
				},
			}
			matches := engine.FindMatches(context.Background(), text, findings, server.DefaultOptionsFromConfig())
			if err := printMatches("selftest", text, matches); err != nil {
				return err
			}
			stats := engine.CacheStats()
			fmt.Printf("match cache: %d/%d, similarity cache: %d/%d\n",
				stats.MatchCacheSize, stats.MatchCacheLimit,
				stats.SimilarityCacheSize, stats.SimilarityCacheLimit)
			return nil
		},
	}
)

func init() {
	diagnosticsCmd.AddCommand(configDumpCmd)
	diagnosticsCmd.AddCommand(normalizeCmd)
	diagnosticsCmd.AddCommand(selftestCmd)
	rootCmd.AddCommand(diagnosticsCmd)
}
