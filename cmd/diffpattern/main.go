// Command diffpattern groups the hunks of a commit or commit range into
// repeated edit patterns and writes a report.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fwojciec/diffpattern"
	"github.com/fwojciec/diffpattern/bubbletea"
	"github.com/fwojciec/diffpattern/chroma"
	"github.com/fwojciec/diffpattern/clipboard"
	"github.com/fwojciec/diffpattern/fs"
	"github.com/fwojciec/diffpattern/git"
	"github.com/fwojciec/diffpattern/gitdiff"
	"github.com/fwojciec/diffpattern/gogit"
	"github.com/fwojciec/diffpattern/jsonl"
	"github.com/fwojciec/diffpattern/lipgloss"
	"github.com/fwojciec/diffpattern/pathfilter"
	"github.com/fwojciec/diffpattern/pattern"
	"github.com/fwojciec/diffpattern/report"
	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// envPrefix prefixes environment variables that override flags,
// e.g. DIFFPATTERN_FORMAT=json.
const envPrefix = "DIFFPATTERN"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	os.Exit(Execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// Execute runs the command line and returns the process exit code.
// Empty change sets print a message and succeed.
func Execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCommand(stdin, stdout, stderr)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	switch {
	case err == nil:
		return 0
	case errors.Is(err, diffpattern.ErrNoChanges):
		fmt.Fprintf(stdout, "%s.\n", upperFirst(err.Error()))
		return 0
	default:
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
}

// options are the resolved flag, environment and config file values.
type options struct {
	Input      Input
	RepoPath   string
	Output     string
	Format     string
	Include    string
	Exclude    string
	XMLMode    bool
	Threshold  float64
	GitBinary  string
	Theme      string
	Verbose    bool
	ReportFile string
}

func loadOptions(v *viper.Viper) options {
	return options{
		Input: Input{
			Commit:      v.GetString("commit"),
			CommitRange: v.GetString("commit-range"),
			DiffFile:    v.GetString("diff-file"),
		},
		RepoPath:   v.GetString("repo-path"),
		Output:     v.GetString("output"),
		Format:     v.GetString("format"),
		Include:    v.GetString("include"),
		Exclude:    v.GetString("exclude"),
		XMLMode:    v.GetBool("xml-mode"),
		Threshold:  v.GetFloat64("similarity-threshold"),
		GitBinary:  v.GetString("git-binary"),
		Theme:      v.GetString("theme"),
		Verbose:    v.GetBool("verbose"),
		ReportFile: v.GetString("report"),
	}
}

var analyzeExamples = `
  # Analyze the latest commit
  diffpattern analyze --commit HEAD

  # Analyze a range with markup-aware grouping, JSON output
  diffpattern analyze --commit-range v1.0..v1.1 --xml-mode --format json

  # Analyze a saved diff, only XML files
  git diff main | diffpattern analyze --diff-file - --include '*.xml'
`

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	config := viper.New()

	rootCmd := &cobra.Command{
		Use:           "diffpattern",
		Short:         "Group repeated edit patterns in git changes",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if path := config.GetString("config"); path != "" {
				config.SetConfigFile(path)
				if err := config.ReadInConfig(); err != nil {
					return fmt.Errorf("read config: %w", err)
				}
			}
			return nil
		},
	}

	// flags
	pf := rootCmd.PersistentFlags()
	pf.StringP("commit", "c", "", "Single commit to analyze")
	pf.StringP("commit-range", "r", "", "Commit range to analyze (e.g., commit1..commit3)")
	pf.String("diff-file", "", "Unified diff file to analyze ('-' reads stdin)")
	pf.String("repo-path", "", "Path to git repository (defaults to current directory)")
	pf.StringP("output", "o", fs.DefaultOutputDir, "Output directory for analysis reports")
	pf.StringP("format", "f", string(diffpattern.FormatMarkdown), "Output format: markdown, json, csv, html, jsonl or yaml")
	pf.StringP("include", "i", "", "File patterns to include (e.g., '*.xml,*.cs')")
	pf.StringP("exclude", "e", "", "File patterns to exclude")
	pf.Bool("xml-mode", false, "Enable markup-aware analysis")
	pf.Float64("similarity-threshold", diffpattern.DefaultSimilarityThreshold, "Similarity threshold for grouping changes (0.0-1.0)")
	pf.String("git-binary", "", "Read commits by running this git executable instead of in-process")
	pf.String("theme", "dark", "Color theme: dark or light")
	pf.BoolP("verbose", "v", false, "Enable verbose output")
	pf.String("config", "", "Config file (YAML) with flag values")

	// bind flags to config
	_ = config.BindPFlags(pf)
	config.SetEnvPrefix(envPrefix)
	config.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	config.AutomaticEnv()

	analyze := buildAnalyzeCmd(config, stdin, stdout, stderr)
	rootCmd.RunE = analyze.RunE
	rootCmd.Example = strings.Trim(analyzeExamples, "\n")
	rootCmd.AddCommand(analyze)
	rootCmd.AddCommand(buildBrowseCmd(config, stdin, stdout, stderr))

	return rootCmd
}

func buildAnalyzeCmd(config *viper.Viper, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	return &cobra.Command{
		Use:     "analyze",
		Short:   "Analyze changes and write a report",
		Example: strings.Trim(analyzeExamples, "\n"),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOptions(config)
			app, err := newApp(opts, stdin, stdout, stderr)
			if err != nil {
				return err
			}
			_, err = app.Run(cmd.Context())
			return err
		},
	}
}

func buildBrowseCmd(config *viper.Viper, stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	browse := &cobra.Command{
		Use:   "browse",
		Short: "Browse change groups interactively",
		Long:  "Analyze changes, or load a saved JSONL report with --report, and page through the groups.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := loadOptions(config)
			if opts.ReportFile != "" {
				rep, err := jsonl.NewLoader().Load(opts.ReportFile)
				if err != nil {
					return err
				}
				return newViewer(opts).View(cmd.Context(), rep)
			}
			app, err := newApp(opts, stdin, stdout, stderr)
			if err != nil {
				return err
			}
			return app.Browse(cmd.Context())
		},
	}
	browse.Flags().String("report", "", "JSONL report to browse instead of analyzing")
	_ = config.BindPFlags(browse.Flags())
	return browse
}

// newApp wires the production collaborators for opts.
func newApp(opts options, stdin io.Reader, stdout, stderr io.Writer) (*App, error) {
	cfg := diffpattern.Config{
		SimilarityThreshold: opts.Threshold,
		MarkupAware:         opts.XMLMode,
		Verbose:             opts.Verbose,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Input.Validate(); err != nil {
		return nil, err
	}
	format, err := diffpattern.ParseFormat(opts.Format)
	if err != nil {
		return nil, err
	}

	log := newLogger(stderr, opts.Verbose)

	repoPath := opts.RepoPath
	if repoPath == "" {
		repoPath = "."
	}
	if abs, err := filepath.Abs(repoPath); err == nil {
		repoPath = abs
	}

	log.V(1).Info("starting analysis",
		"repository", repoPath,
		"format", format,
		"xmlMode", cfg.MarkupAware,
		"similarityThreshold", cfg.SimilarityThreshold,
		"outputDir", opts.Output)

	var source diffpattern.DiffSource
	if opts.Input.NeedsRepository() {
		source, err = newSource(repoPath, opts.GitBinary)
		if err != nil {
			return nil, err
		}
	}

	var renderer diffpattern.Renderer
	if format == diffpattern.FormatJSONL {
		renderer = jsonl.NewRenderer()
	} else if renderer, err = report.New(format); err != nil {
		return nil, err
	}

	summary := lipgloss.NewSummary(nil, themeByName(opts.Theme))
	summary.Verbose = opts.Verbose

	return &App{
		Stdin:    stdin,
		Stdout:   stdout,
		FS:       afero.NewOsFs(),
		Source:   source,
		Parser:   gitdiff.NewParser().WithLogger(log),
		Filter:   pathfilter.New(opts.Include, opts.Exclude).WithLogger(log),
		Analyzer: pattern.NewAnalyzer(cfg, pattern.WithLogger(log)),
		Renderer: renderer,
		Writer:   fs.NewOsWriter(opts.Output),
		Format:   format,
		Summary:  summary,
		Viewer:   newViewer(opts),
		Log:      log,
		RepoPath: repoPath,
		Input:    opts.Input,
	}, nil
}

func newSource(repoPath, gitBinary string) (diffpattern.DiffSource, error) {
	if gitBinary != "" {
		r := git.NewRunner(repoPath)
		r.Binary = gitBinary
		return r, nil
	}
	src, err := gogit.Open(repoPath)
	if err != nil {
		return nil, fmt.Errorf("'%s' is not a valid Git repository: %w", repoPath, err)
	}
	return src, nil
}

func newViewer(opts options) *bubbletea.Viewer {
	theme := themeByName(opts.Theme)
	return bubbletea.NewViewer(
		bubbletea.WithTheme(theme),
		bubbletea.WithHighlighter(chroma.NewHighlighter(theme, nil)),
		bubbletea.WithClipboard(clipboard.NewSystem()),
	)
}

func themeByName(name string) *lipgloss.Theme {
	if strings.EqualFold(name, "light") {
		return lipgloss.LightTheme()
	}
	return lipgloss.DarkTheme()
}

// newLogger returns a zap-backed logger writing console lines to w.
// Verbose enables V(1) progress messages.
func newLogger(w io.Writer, verbose bool) logr.Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), zapcore.AddSync(w), level)
	return zapr.NewLogger(zap.New(core))
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
