// Package main provides the CLI entrypoint for hanzistats.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/verte-zerg/hanzistats/internal/collection"
	"github.com/verte-zerg/hanzistats/internal/config"
	"github.com/verte-zerg/hanzistats/internal/model"
	"github.com/verte-zerg/hanzistats/internal/refdata"
	"github.com/verte-zerg/hanzistats/internal/report"
	"github.com/verte-zerg/hanzistats/internal/stats"
	"github.com/verte-zerg/hanzistats/internal/statsui"
)

const (
	defaultFieldMode = "sortField"
	fallbackWidth    = 80
)

var (
	flagCollection string
	flagDatasets   string
	flagDeck       int64
	flagSubdecks   bool
	flagField      string
	flagFields     []string
	flagCategories bool
	flagSplitBands bool
	flagJSON       bool
	flagChars      bool
	flagVerbose    bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hanzistats",
		Short:         "Hanzi statistics for Anki decks",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runBrowseCmd,
	}

	addReportFlags(rootCmd)
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newDecksCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagCollection, "collection", "", "path to the Anki collection file")
	cmd.Flags().StringVar(&flagDatasets, "datasets", "", "directory with reference data CSVs")
	cmd.Flags().Int64Var(&flagDeck, "deck", model.AllDecksID, "deck id (0 = all decks)")
	cmd.Flags().BoolVar(&flagSubdecks, "subdecks", true, "include subdecks")
	cmd.Flags().StringVar(&flagField, "field", defaultFieldMode, "field mode: all, sortField, or a 1-based index")
	cmd.Flags().StringSliceVar(&flagFields, "fields", nil, "combine several field modes (overrides --field)")
	cmd.Flags().BoolVar(&flagCategories, "categories", true, "compute HSK/frequency breakdowns")
	cmd.Flags().BoolVar(&flagSplitBands, "split-bands", false, "keep HSK 2021 bands 7-9 separate")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "verbose diagnostics")
}

func runBrowseCmd(cmd *cobra.Command, _ []string) error {
	batch, cleanup, err := computeBatch(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	browser := statsui.NewModel(batch)
	program := tea.NewProgram(browser, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run report browser: %w", err)
	}
	return nil
}

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the report to stdout",
		Args:  cobra.NoArgs,
		RunE:  runReportCmd,
	}
	addReportFlags(cmd)
	cmd.Flags().BoolVar(&flagJSON, "json", false, "emit JSON instead of text")
	cmd.Flags().BoolVar(&flagChars, "chars", false, "list the not-yet-reviewed characters per deck")
	return cmd
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	batch, cleanup, err := computeBatch(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	out := cmd.OutOrStdout()
	if flagJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(batch); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}

	if err := report.RenderBatch(out, batch); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if flagChars {
		width := terminalWidth()
		for _, deck := range batch.Decks {
			if len(deck.Missing) == 0 {
				continue
			}
			if _, err := fmt.Fprintf(out, "\n%s: not yet reviewed\n", deck.Name); err != nil {
				return err
			}
			for _, line := range wrapChars(deck.Missing, width) {
				if _, err := fmt.Fprintln(out, line); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func newDecksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decks",
		Short: "List decks in the collection",
		Args:  cobra.NoArgs,
		RunE:  runDecksCmd,
	}
	cmd.Flags().StringVar(&flagCollection, "collection", "", "path to the Anki collection file")
	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "verbose diagnostics")
	return cmd
}

func runDecksCmd(cmd *cobra.Command, _ []string) error {
	log := newLogger()
	defer syncLogger(log)

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "collection", &flagCollection, fileCfg.Paths.Collection)

	st, err := openCollection(log)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close collection: %v\n", cerr)
		}
	}()

	decks, err := st.Decks(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list decks: %w", err)
	}
	for _, deck := range decks {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", deck.ID, deck.Name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// computeBatch loads config, opens the collection, builds the reference
// index and computes the requested batch report.
func computeBatch(cmd *cobra.Command) (report.BatchReport, func(), error) {
	noop := func() {}
	log := newLogger()

	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		syncLogger(log)
		return report.BatchReport{}, noop, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "collection", &flagCollection, fileCfg.Paths.Collection)
	applyStringConfig(cmd, "datasets", &flagDatasets, fileCfg.Paths.Datasets)
	applyStringConfig(cmd, "field", &flagField, fileCfg.Report.Field)
	applyBoolConfig(cmd, "subdecks", &flagSubdecks, fileCfg.Report.IncludeSubdecks)
	applyBoolConfig(cmd, "categories", &flagCategories, fileCfg.Report.ShowCategories)
	applyBoolConfig(cmd, "split-bands", &flagSplitBands, fileCfg.Report.SplitBands79)

	datasets := flagDatasets
	if datasets == "" {
		datasets = config.DefaultDatasetsDir()
	}
	index := refdata.Load(datasets, refdata.Options{
		SplitBands79: flagSplitBands,
		Logger:       log,
	})

	st, err := openCollection(log)
	if err != nil {
		syncLogger(log)
		return report.BatchReport{}, noop, err
	}
	cleanup := func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close collection: %v\n", cerr)
		}
		syncLogger(log)
	}

	reportCfg := model.ReportConfig{
		FieldMode:       model.ParseFieldSelector(flagField),
		IncludeSubdecks: flagSubdecks,
		ShowCategories:  flagCategories,
	}
	if cats := fileCfg.Report.CategoriesToShow; cats != nil {
		reportCfg.CategoriesToShow = *cats
	}

	calc := stats.NewCalculator(st, index, log)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	batch := buildBatch(ctx, calc, st, reportCfg)
	batch = report.FilterCategories(batch, reportCfg.CategoriesToShow)
	return batch, cleanup, nil
}

func buildBatch(ctx context.Context, calc *stats.Calculator, st *collection.Store, cfg model.ReportConfig) report.BatchReport {
	if flagDeck == model.AllDecksID && len(flagFields) == 0 {
		return calc.AllDecksReport(ctx, cfg)
	}
	if len(flagFields) == 0 {
		return report.BuildBatchReport([]report.DeckReport{calc.DeckReport(ctx, flagDeck, cfg)})
	}

	// Several field modes combined into one report entry.
	selectors := make([]model.FieldSelector, 0, len(flagFields))
	for _, mode := range flagFields {
		selectors = append(selectors, model.ParseFieldSelector(strings.TrimSpace(mode)))
	}
	sel := model.DeckSelection{DeckID: flagDeck, Subdecks: model.SubdecksNone}
	if cfg.IncludeSubdecks {
		sel.Subdecks = model.SubdecksAll
	}
	sets := calc.ComputeCombinedFieldSets(ctx, sel, selectors)
	name, err := st.DeckName(ctx, flagDeck)
	if err != nil || name == "" {
		name = fmt.Sprintf("Deck %d", flagDeck)
	}
	deckReport := report.BuildDeckReport(flagDeck, name, sets.Total, sets.Reviewed, calc.Index(), cfg.ShowCategories)
	return report.BuildBatchReport([]report.DeckReport{deckReport})
}

func openCollection(log *zap.Logger) (*collection.Store, error) {
	path := flagCollection
	if path == "" {
		path = config.DefaultCollectionPath()
	}
	st, err := collection.Open(path, log)
	if err != nil {
		return nil, collectionOpenError(path, err)
	}
	return st, nil
}

func collectionOpenError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to open collection: %v", err),
		fmt.Sprintf("expected collection at: %s", path),
		"Point --collection (or [paths].collection in the config) at your collection.anki2.",
		"Close Anki first: the collection is locked while it runs.",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

// wrapChars lays characters out in terminal-width rows, accounting for
// double-width Hanzi cells.
func wrapChars(chars []string, width int) []string {
	if width <= 0 {
		width = fallbackWidth
	}
	var lines []string
	var b strings.Builder
	lineWidth := 0
	for _, ch := range chars {
		w := runewidth.StringWidth(ch) + 1
		if lineWidth+w > width && lineWidth > 0 {
			lines = append(lines, strings.TrimRight(b.String(), " "))
			b.Reset()
			lineWidth = 0
		}
		b.WriteString(ch)
		b.WriteByte(' ')
		lineWidth += w
	}
	if b.Len() > 0 {
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return lines
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if !flagVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func syncLogger(log *zap.Logger) {
	if err := log.Sync(); err != nil {
		// Stderr sync is best-effort.
		_ = err
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# hanzistats configuration
# Uncomment a value to enable it. CLI flags override config values.

[report]
# field = %q             # Field mode: all, sortField, or a 1-based index
# show-categories = true  # Compute HSK/frequency breakdowns
# include-subdecks = true # Fold subdecks into their parent deck
# split-bands-7-9 = false # Keep HSK 2021 bands 7-9 separate
# categories-to-show = ["HSK (2012)", "HSK (2021)", "Top 500", "Top 1000", "Top 1500", "Top 2000"]

[paths]
# collection = %q
# datasets = %q
`,
		defaultFieldMode,
		config.DefaultCollectionPath(),
		config.DefaultDatasetsDir(),
	)
}
