package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/substratelabs/lensrun/internal/backend"
	"github.com/substratelabs/lensrun/internal/catalog"
	"github.com/substratelabs/lensrun/internal/record"
	"github.com/substratelabs/lensrun/internal/runner"
)

const (
	defaultModel  = "haiku"
	defaultOutDir = "output"
)

var (
	verbose     bool
	outDir      string
	catalogPath string
	outExt      string
	binary      string
	summaryPath string
	dryRun      bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lensrun",
	Short: "Run lens prompts against a fixed task catalog on a model backend",
	Long: `lensrun expands a (model, task, lens) selection into individual model
invocations, runs them sequentially through the backend CLI, and records
each raw response under a deterministic filename for later analysis.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var runCmd = &cobra.Command{
	Use:   "run [model] [task] [lens]",
	Short: "Execute the selected lens/task cross-product",
	Long: `Executes every selected lens/task pair on the chosen model, one at a
time. Each positional selector defaults when omitted: model "` + defaultModel + `",
task "` + catalog.All + `", lens "` + catalog.All + `". A selector other than "` + catalog.All + `" must name a
catalog entry exactly.`,
	Args: cobra.MaximumNArgs(3),
	RunE: runExperiments,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the lens and task catalogs and model aliases",
	RunE:  listCatalog,
}

func runExperiments(cmd *cobra.Command, args []string) error {
	opts := runner.Options{
		Model:        defaultModel,
		TaskFilter:   catalog.All,
		PromptFilter: catalog.All,
		DryRun:       dryRun,
		SummaryPath:  summaryPath,
	}
	if len(args) > 0 {
		opts.Model = args[0]
	}
	if len(args) > 1 {
		opts.TaskFilter = args[1]
	}
	if len(args) > 2 {
		opts.PromptFilter = args[2]
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	scratch, cleanup, err := runner.Scratch()
	if err != nil {
		return err
	}
	defer cleanup()

	r := &runner.Runner{
		Catalog: cat,
		Backend: &backend.CLIRunner{
			Binary:  binary,
			Workdir: scratch,
			Log:     logger,
		},
		Recorder: &record.Recorder{Dir: outDir, Ext: outExt},
		Out:      cmd.OutOrStdout(),
		Log:      logger,
	}

	_, err = r.Run(cmd.Context(), opts)
	return err
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

func listCatalog(cmd *cobra.Command, args []string) error {
	cat, err := loadCatalog()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, headingStyle.Render("Lenses"))
	for _, p := range cat.Prompts {
		fmt.Fprintf(out, "  %s  %s\n", nameStyle.Render(p.Name), detailStyle.Render(p.Path))
	}

	fmt.Fprintln(out, headingStyle.Render("Tasks"))
	for _, t := range cat.Tasks {
		fmt.Fprintf(out, "  %s  %s\n", nameStyle.Render(t.Name), detailStyle.Render(preview(t.Text)))
	}

	if len(cat.Models) > 0 {
		fmt.Fprintln(out, headingStyle.Render("Models"))
		for _, m := range cat.Models {
			fmt.Fprintf(out, "  %s  %s\n", nameStyle.Render(m.Name), detailStyle.Render(m.ID))
		}
	}
	return nil
}

// preview reduces a task's text to its first line for catalog listings.
func preview(text string) string {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	if len(line) > 72 {
		line = line[:69] + "..."
	}
	return line
}

func loadCatalog() (*catalog.Catalog, error) {
	if catalogPath != "" {
		return catalog.Load(catalogPath)
	}
	return catalog.Default()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&catalogPath, "catalog", "", "catalog YAML (default: embedded catalog)")

	runCmd.Flags().StringVar(&outDir, "out", defaultOutDir, "output directory for recorded responses")
	runCmd.Flags().StringVar(&outExt, "ext", "", "extension appended to output filenames")
	runCmd.Flags().StringVar(&binary, "binary", "", "backend CLI binary override")
	runCmd.Flags().StringVar(&summaryPath, "summary", "", "write a JSON run summary to this path")
	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "list resolved units without invoking the backend")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
