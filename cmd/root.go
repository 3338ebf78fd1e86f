// file: cmd/root.go
// version: 2.0.0
// guid: 4e5f6a7b-8c9d-0e1f-2a3b-4c5d6e7f8afe

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mkurosawa/honne/internal/ai"
	"github.com/mkurosawa/honne/internal/config"
	"github.com/mkurosawa/honne/internal/matcher"
	"github.com/mkurosawa/honne/internal/models"
	"github.com/mkurosawa/honne/internal/server"
)

var cfgFile string
var outputJSON bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "honne",
	Short: "Analyze Japanese job postings for euphemistic phrases",
	Long: `Honne reads Japanese job postings, asks an LLM which phrases are
euphemisms hiding something, and locates the exact spans of those phrases in
the original text despite full-width/half-width variation, punctuation
differences and inexact LLM phrasing.`,
}

// analyzeCmd analyzes posting files end to end: LLM findings + span matching.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file...]",
	Short: "Analyze job posting files with the LLM and locate phrase spans",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := ai.NewFindingsClient(
			config.AppConfig.OpenAI.APIKey,
			config.AppConfig.OpenAI.Model,
			config.AppConfig.OpenAI.RequestsPerMinute,
		)
		if !client.IsEnabled() {
			return fmt.Errorf("no OpenAI API key configured (set openai.api_key or HONNE_OPENAI_API_KEY)")
		}

		engine := newEngine()
		opts := server.DefaultOptionsFromConfig()

		var bar *progressbar.ProgressBar
		if len(args) > 1 && !outputJSON {
			bar = progressbar.Default(int64(len(args)), "analyzing")
		}

		for _, path := range args {
			text, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read posting %s: %w", path, err)
			}

			findings, err := client.AnalyzePosting(context.Background(), string(text))
			if err != nil {
				return fmt.Errorf("analysis of %s failed: %w", path, err)
			}

			matches := engine.FindMatches(context.Background(), string(text), findings, opts)
			if err := printMatches(path, string(text), matches); err != nil {
				return err
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}
		return nil
	},
}

// matchCmd runs the matching engine offline against findings from a file.
var matchCmd = &cobra.Command{
	Use:   "match <posting-file> <findings-file>",
	Short: "Locate finding phrases in a posting without calling the LLM",
	Long: `Match reads a posting and a findings file (JSON or YAML) produced by an
earlier analysis and locates each finding's phrase in the posting text.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		text, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read posting %s: %w", args[0], err)
		}

		findings, err := loadFindings(args[1])
		if err != nil {
			return err
		}

		engine := newEngine()
		opts := server.DefaultOptionsFromConfig()
		if fuzzy, _ := cmd.Flags().GetBool("fuzzy"); fuzzy {
			opts.EnableFuzzyMatching = true
		}

		matches := engine.FindMatches(context.Background(), string(text), findings, opts)
		return printMatches(args[0], string(text), matches)
	},
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := ai.NewFindingsClient(
			config.AppConfig.OpenAI.APIKey,
			config.AppConfig.OpenAI.Model,
			config.AppConfig.OpenAI.RequestsPerMinute,
		)
		if !client.IsEnabled() {
			fmt.Println("Warning: no OpenAI API key configured, /api/v1/analyze will be unavailable")
		}

		srv := server.NewServer(newEngine(), client)
		cfg := server.GetDefaultServerConfig()
		cfg.Host = config.AppConfig.Server.Host
		cfg.Port = config.AppConfig.Server.Port
		if config.AppConfig.Server.ReadTimeout > 0 {
			cfg.ReadTimeout = config.AppConfig.Server.ReadTimeout
		}
		if config.AppConfig.Server.WriteTimeout > 0 {
			cfg.WriteTimeout = config.AppConfig.Server.WriteTimeout
		}
		if config.AppConfig.Server.IdleTimeout > 0 {
			cfg.IdleTimeout = config.AppConfig.Server.IdleTimeout
		}

		// Command line flags take precedence
		if port := cmd.Flag("port").Value.String(); cmd.Flag("port").Changed {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); cmd.Flag("host").Changed {
			cfg.Host = host
		}

		fmt.Printf("Starting honne API server on %s:%s\n", cfg.Host, cfg.Port)
		return srv.Start(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func newEngine() *matcher.Engine {
	return matcher.NewEngine(
		config.AppConfig.Matching.MatchCacheSize,
		config.AppConfig.Matching.SimilarityCacheSize,
	)
}

// loadFindings reads a findings file, accepting either JSON or YAML and
// either a bare array or a {"findings": [...]} envelope.
func loadFindings(path string) ([]models.Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read findings %s: %w", path, err)
	}

	var envelope struct {
		Findings []models.Finding `json:"findings" yaml:"findings"`
	}
	var list []models.Finding

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &envelope); err == nil && len(envelope.Findings) > 0 {
			return envelope.Findings, nil
		}
		if err := yaml.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to parse findings %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(data, &envelope); err == nil && len(envelope.Findings) > 0 {
			return envelope.Findings, nil
		}
		if err := json.Unmarshal(data, &list); err != nil {
			return nil, fmt.Errorf("failed to parse findings %s: %w", path, err)
		}
	}
	return list, nil
}

func printMatches(path, text string, matches []models.EnhancedPhraseMatch) error {
	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(map[string]any{"file": path, "matches": matches})
	}

	fmt.Printf("%s: %d match(es)\n", path, len(matches))
	for _, m := range matches {
		fmt.Printf("  [%d:%d] %q (%s, %.2f)", m.StartIndex, m.EndIndex, m.Phrase, m.MatchType, m.Confidence)
		if m.Finding != nil && len(m.Finding.PotentialRealities) > 0 {
			fmt.Printf(" -> %s", m.Finding.PotentialRealities[0])
		}
		fmt.Println()
	}
	return nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.honne.yaml)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "emit JSON instead of human-readable output")
	rootCmd.PersistentFlags().String("openai-key", "", "OpenAI API key (overrides config)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable matcher debug logging")

	viper.BindPFlag("openai.api_key", rootCmd.PersistentFlags().Lookup("openai-key"))
	viper.BindPFlag("matching.debug", rootCmd.PersistentFlags().Lookup("debug"))

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(matchCmd)
	rootCmd.AddCommand(serveCmd)

	matchCmd.Flags().Bool("fuzzy", false, "enable fuzzy matching")

	serveCmd.Flags().String("port", "8080", "port to run the API server on")
	serveCmd.Flags().String("host", "localhost", "host to bind the API server to")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".honne")
	}

	viper.SetEnvPrefix("HONNE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	config.InitConfig()
}
