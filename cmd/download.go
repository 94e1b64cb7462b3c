// Package cmd — download command.
// Wires the orchestrator to the terminal: flags and the optional YAML config
// build the RunConfig, then progress events stream to stdout until the run
// ends.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gaurav-prasanna/coursepipe/config"
	"github.com/gaurav-prasanna/coursepipe/core/render"
	"github.com/gaurav-prasanna/coursepipe/orchestrate"
)

// Flag variables.
var (
	flagCookie      string
	flagHost        string
	flagOutputDir   string
	flagFormats     []string
	flagCallouts    bool
	flagEmbedImages bool
	flagPipeTables  bool
	flagFrontmatter bool
	flagDelay       time.Duration
	flagThreshold   int
	flagConfig      string
	flagVerbose     bool
)

var downloadCmd = &cobra.Command{
	Use:   "download <url>...",
	Short: "Download course pages and render them to the selected formats",
	Long: `Download fetches each URL (expanding course URLs into their section
pages), sanitizes and classifies the content, and writes one file per
requested format into the output directory.

Examples:
  coursepipe download https://learn.example.com/course/go-101 --cookie "session_id=abc"
  coursepipe download https://learn.example.com/course/go-101/intro --formats markdown,html
  coursepipe download https://learn.example.com/course/sql --no-callouts --delay 2s`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)

	downloadCmd.Flags().StringVar(&flagCookie, "cookie", "", "Session cookie string (required; must include session_id)")
	downloadCmd.Flags().StringVar(&flagHost, "host", "", "Expected host for all URLs (default: host of the first URL)")
	downloadCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
	downloadCmd.Flags().StringSliceVar(&flagFormats, "formats", []string{"markdown"}, "Output formats: markdown, html, text, pdf")
	downloadCmd.Flags().BoolVar(&flagCallouts, "callouts", true, "Render classified sections as callout blocks")
	downloadCmd.Flags().BoolVar(&flagEmbedImages, "embed-images", false, "Render images as ![[name]] embeds instead of links")
	downloadCmd.Flags().BoolVar(&flagPipeTables, "pipe-tables", true, "Render tables as markdown pipe tables")
	downloadCmd.Flags().BoolVar(&flagFrontmatter, "frontmatter", false, "Prepend a metadata block to markdown output")
	downloadCmd.Flags().DurationVar(&flagDelay, "delay", time.Second, "Delay between requests (0 disables)")
	downloadCmd.Flags().IntVar(&flagThreshold, "failure_threshold", 0, "Consecutive failures before aborting (default 3)")
	downloadCmd.Flags().StringVar(&flagConfig, "config", config.DefaultConfigFile, "Path to YAML config file")
	downloadCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Enable debug logging")
}

func runDownload(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg := config.RunConfig{
		Credential:       flagCookie,
		AllowedHost:      flagHost,
		OutputDir:        flagOutputDir,
		RequestDelay:     flagDelay,
		FailureThreshold: flagThreshold,
		Logger:           logger,
		Render: render.Config{
			Callouts:      flagCallouts,
			CalloutTokens: render.DefaultCalloutTokens(),
			EmbedImages:   flagEmbedImages,
			PipeTables:    flagPipeTables,
			Frontmatter:   flagFrontmatter,
		},
	}
	for _, name := range flagFormats {
		format, err := render.ParseFormat(name)
		if err != nil {
			return err
		}
		cfg.Render.Formats = append(cfg.Render.Formats, format)
	}

	fileCfg, err := config.LoadFile(flagConfig, logger)
	if err != nil {
		return err
	}
	if err := fileCfg.Apply(&cfg, explicitFlags(cmd.Flags())); err != nil {
		return err
	}

	orc := orchestrate.New(cfg)
	if err := orc.Start(context.Background(), args); err != nil {
		return err
	}

	exitErr := error(nil)
	for ev := range orc.Events() {
		switch ev.Status {
		case orchestrate.StatusDownloading:
			fmt.Fprintf(os.Stdout, "[%d/%d] Downloading %s\n", ev.Current, ev.Total, ev.URL)
		case orchestrate.StatusCompleted:
			fmt.Fprintf(os.Stdout, "  ✓ Written: %s\n", ev.Filename)
		case orchestrate.StatusError:
			fmt.Fprintf(os.Stderr, "  ✗ Error: %s\n", ev.Err)
		case orchestrate.StatusCircuitOpen:
			fmt.Fprintf(os.Stderr, "\nAborted: %s\n", ev.Err)
			exitErr = fmt.Errorf("%s", ev.Err)
		case orchestrate.StatusRunCompleted:
			fmt.Fprintf(os.Stdout, "\nDone: %d processed, %d failed or skipped\n", ev.Processed, ev.Failed)
		}
	}
	return exitErr
}

// explicitFlags names the flags present on the command line, so config-file
// values only fill in the settings the user did not set.
func explicitFlags(fs *pflag.FlagSet) map[string]bool {
	explicit := make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) { explicit[f.Name] = true })
	return explicit
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
