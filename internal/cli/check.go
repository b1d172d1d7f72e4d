package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/trustbuddy/internal/pipeline"
)

var (
	checkJSON    bool
	checkTimeout time.Duration
	textFile     string
	imageMD      string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check a single claim, link or image",
	Long: `Check runs one analyzer and prints its verdict.

Example:
  trustbuddy check text "vaccines cause autism"
  trustbuddy check text --file post.txt --json
  trustbuddy check url https://www.example.com/article
  trustbuddy check image photo.jpg --md report.md`,
}

var checkTextCmd = &cobra.Command{
	Use:   "text [claim]",
	Short: "Match a claim against known misinformation patterns",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheckText,
}

var checkURLCmd = &cobra.Command{
	Use:   "url <url>",
	Short: "Rate a link by its domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckURL,
}

var checkImageCmd = &cobra.Command{
	Use:   "image <path>",
	Short: "Score an image for signs of AI generation",
	Args:  cobra.ExactArgs(1),
	RunE:  runCheckImage,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.AddCommand(checkTextCmd, checkURLCmd, checkImageCmd)

	checkCmd.PersistentFlags().BoolVar(&checkJSON, "json", false, "print the raw JSON verdict")
	checkCmd.PersistentFlags().DurationVar(&checkTimeout, "timeout", time.Minute, "overall check timeout")
	checkTextCmd.Flags().StringVar(&textFile, "file", "", "read the claim from a file ('-' for stdin)")
	checkImageCmd.Flags().StringVar(&imageMD, "md", "", "also write a Markdown report to this path")
}

// newAnalyzer loads configuration and builds the analysis facade
func newAnalyzer() (*pipeline.Analyzer, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() { _ = logger.Sync() }
	return pipeline.NewAnalyzer(cfg, pipeline.WithLogger(logger)), cleanup, nil
}

func runCheckText(cmd *cobra.Command, args []string) error {
	text, err := claimText(args)
	if err != nil {
		return err
	}

	a, cleanup, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	verdict, err := a.AnalyzeText(ctx, text)
	if err != nil {
		return fmt.Errorf("check text: %w", err)
	}

	r := pipeline.NewRenderer(cmd.OutOrStdout())
	if checkJSON {
		return r.RenderJSON(verdict, "-")
	}
	r.RenderClaim(verdict)
	return nil
}

// claimText returns the claim from the argument or --file
func claimText(args []string) (string, error) {
	switch {
	case textFile == "-":
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	case textFile != "":
		data, err := os.ReadFile(textFile)
		if err != nil {
			return "", fmt.Errorf("read claim file: %w", err)
		}
		return string(data), nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("provide a claim argument or --file")
	}
}

func runCheckURL(cmd *cobra.Command, args []string) error {
	a, cleanup, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	report, err := a.ScanURL(ctx, args[0])
	if err != nil {
		return fmt.Errorf("check url: %w", err)
	}

	r := pipeline.NewRenderer(cmd.OutOrStdout())
	if checkJSON {
		return r.RenderJSON(report, "-")
	}
	r.RenderURL(report)
	return nil
}

func runCheckImage(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read image: %w", err)
	}

	a, cleanup, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer cleanup()

	ctx, cancel := context.WithTimeout(cmd.Context(), checkTimeout)
	defer cancel()

	verdict, err := a.AnalyzeImage(ctx, data, filepath.Base(path))
	if err != nil {
		return fmt.Errorf("check image: %w", err)
	}

	r := pipeline.NewRenderer(cmd.OutOrStdout())
	if imageMD != "" {
		if err := r.RenderImageMarkdown(verdict, imageMD); err != nil {
			return err
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "✓ Wrote Markdown: %s\n", imageMD)
		}
	}
	if checkJSON {
		return r.RenderJSON(verdict, "-")
	}
	r.RenderImage(verdict)
	return nil
}
