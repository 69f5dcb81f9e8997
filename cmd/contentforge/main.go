// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the contentforge CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anilsoylu/ContentForge/internal/config"
	"github.com/anilsoylu/ContentForge/internal/generate"
	"github.com/anilsoylu/ContentForge/internal/llm"
	"github.com/anilsoylu/ContentForge/internal/retry"
	"github.com/anilsoylu/ContentForge/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

const defaultTemplatePath = "config.yaml"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the live generation run; --preview and --init branch off it.
var rootCmd = &cobra.Command{
	Use:   "contentforge",
	Short: "Generate SEO articles from a YAML template via parallel LLM calls",
	Long: `contentforge reads a declarative YAML article template, fans out one
generation request per document fragment (intro, body sections, comparison
table, conclusion) to an OpenRouter-compatible API under a concurrency
ceiling, and assembles the results into a single HTML or Markdown file.

Run with --preview to see the document structure and cost estimate without
making any API call, or --init to write an example template.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
	RunE: runRoot,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().StringP("config", "c", defaultTemplatePath, "article template path")
	rootCmd.Flags().BoolP("preview", "p", false, "print structure and cost estimate, make no API calls")
	rootCmd.Flags().Bool("init", false, "write an example template and exit")
	rootCmd.Flags().String("output-dir", "", "directory for the generated document (default: content/)")
	rootCmd.Flags().Int("concurrency", 0, "maximum simultaneous API requests (default 4)")
}

// initConfig wires tool-level settings: an optional contentforge.yaml plus
// CONTENTFORGE_* environment variables. The article template stays a
// separate, explicit document.
func initConfig() {
	viper.SetConfigName("contentforge")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, ".config", "contentforge"))
	}

	viper.SetDefault("concurrency", 4)
	viper.SetDefault("output_dir", generate.DefaultOutputDir)
	viper.SetDefault("cost.max_usd", 0.0)
	viper.SetDefault("retry.max_attempts", retry.DefaultMaxAttempts)
	viper.SetDefault("retry.base_delay", retry.DefaultBaseDelay)
	viper.SetDefault("retry.max_delay", retry.DefaultMaxDelay)
	viper.SetDefault("retry.jitter", true)

	viper.SetEnvPrefix("CONTENTFORGE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func runRoot(cmd *cobra.Command, args []string) error {
	templatePath, _ := cmd.Flags().GetString("config")

	if doInit, _ := cmd.Flags().GetBool("init"); doInit {
		if err := config.WriteExample(templatePath); err != nil {
			return err
		}
		fmt.Printf("Example template created: %s\n", templatePath)
		return nil
	}

	cfg, err := config.Load(templatePath)
	if err != nil {
		return err
	}

	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		return generate.Preview(os.Stdout, cfg)
	}

	// Fail fast on a missing key before any job is built.
	apiKey := secrets.APIKey(viper.GetString("api_key"), loadedSecrets)
	if apiKey == "" {
		return errors.New("API key missing: set CONTENTFORGE_API_KEY or create .secrets/" + secrets.APIKeyFile)
	}

	transport, err := llm.NewOpenRouter(apiKey, cfg.Model, cfg.Site.URL)
	if err != nil {
		return err
	}

	opts := generate.Options{
		OutputDir:   viper.GetString("output_dir"),
		Concurrency: viper.GetInt("concurrency"),
		MaxCostUSD:  viper.GetFloat64("cost.max_usd"),
		Policy: retry.Policy{
			MaxAttempts: viper.GetInt("retry.max_attempts"),
			BaseDelay:   viper.GetDuration("retry.base_delay"),
			MaxDelay:    viper.GetDuration("retry.max_delay"),
			Jitter:      viper.GetBool("retry.jitter"),
		},
	}
	if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
		opts.OutputDir = dir
	}
	if c, _ := cmd.Flags().GetInt("concurrency"); c > 0 {
		opts.Concurrency = c
	}

	// Interrupt stops admitting new jobs; in-flight requests observe the
	// cancelled context through the transport.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	summary, err := generate.Run(ctx, os.Stdout, cfg, transport, opts)
	if err != nil {
		return err
	}

	report := summary.Report
	fmt.Println()
	fmt.Printf("Run %s finished in %s: %d/%d jobs succeeded\n",
		report.RunID, report.Finished.Sub(report.Started).Round(time.Millisecond),
		report.Succeeded(), len(report.JobIDs))
	fmt.Printf("   File: %s\n", summary.Path)
	fmt.Printf("   Target: ~%d words, generated: %d words\n", summary.TargetWords, summary.WordCount)

	if !report.AllOK() {
		return fmt.Errorf("%d job(s) failed; document written with placeholders", report.Failed())
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
