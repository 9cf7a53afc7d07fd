// stringsync keeps Android string resources in sync: it labels new resource
// keys in English and machine-translates what each locale is missing.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/minios-linux/stringsync/android"
	"github.com/minios-linux/stringsync/config"
	"github.com/minios-linux/stringsync/i18n"
	"github.com/minios-linux/stringsync/langmeta"
	"github.com/minios-linux/stringsync/lockfile"
	"github.com/minios-linux/stringsync/pipeline"
	"github.com/minios-linux/stringsync/settings"
	"github.com/minios-linux/stringsync/translate"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	blue   = color.New(color.FgBlue).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.Bold, color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	cyan   = color.New(color.Bold, color.FgCyan).SprintFunc()
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, blue("[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, green("[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, yellow("[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, red("[ERROR]")+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir    string
	configPath string
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	var flags syncFlags

	root := &cobra.Command{
		Use:   "stringsync",
		Short: "Keep Android string resources labelled and translated",
		Long: `stringsync — keeps Android strings.xml files in sync.

For every configured key (e.g. apply_changes) it adds an English label
("Apply changes") to values/strings.xml, then translates each English
string a locale is missing into values-<locale>/strings.xml. Existing
entries are never changed, so running it again is always safe.

Running stringsync without a command is the same as "stringsync sync".

Commands:
  init      Write a .stringsync.yaml for this project
  sync      Label new keys and translate missing strings
  status    Show per-locale translation progress
  format    Re-indent strings.xml files
  auth      Manage provider API keys

Translation providers:
  google        Google Translate web endpoint (default, no key)
  google-cloud  Google Cloud Translation API (API key)
  openai        OpenAI chat completions (API key)
  ollama        Ollama or any OpenAI-compatible server`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), cmd.Flags(), &flags)
		},
	}

	// Global persistent flags, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: <root>/"+config.FileName+")")
	addSyncFlags(root.Flags(), &flags)

	root.AddCommand(
		newInitCmd(),
		newSyncCmd(),
		newStatusCmd(),
		newFormatCmd(),
		newAuthCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(err)
		os.Exit(1)
	}
}

// reportError prints err with a hint for the failures a user can act on.
func reportError(err error) {
	logError("%v", err)

	var pe *android.ParseError
	var te *translate.Error
	switch {
	case errors.As(err, &pe):
		logWarning(i18n.T("Fix the XML in %s and run again; no files were written"), pe.Path)
	case errors.As(err, &te):
		logWarning(i18n.T("Files written so far are kept; run again to retry the missing strings"))
	case errors.Is(err, context.Canceled):
		logWarning(i18n.T("Interrupted; run again to finish"))
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("stringsync version %s\n", version)
			fmt.Printf("  commit:    %s\n", commit)
			fmt.Printf("  built:     %s\n", date)
		},
	}
}

// ---------------------------------------------------------------------------
// sync (the default action)
// ---------------------------------------------------------------------------

// langList is a repeatable, comma-separated list of BCP-47 codes, stored
// in canonical form.
type langList []string

var _ pflag.Value = (*langList)(nil)

func (l *langList) String() string { return strings.Join(*l, ",") }

func (l *langList) Set(v string) error {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		norm, err := langmeta.Normalize(part)
		if err != nil {
			return err
		}
		*l = append(*l, norm)
	}
	return nil
}

func (l *langList) Type() string { return "langs" }

type syncFlags struct {
	resDir string
	keys   []string
	langs  langList

	provider string
	apiKey   string
	baseURL  string
	model    string

	timeout time.Duration
	retries int
	delay   time.Duration

	onlyConfigured bool
	noProgress     bool
	verbose        bool
}

func addSyncFlags(fs *pflag.FlagSet, f *syncFlags) {
	fs.StringVar(&f.resDir, "res-dir", "", "Android res directory (default: "+config.DefaultResDir+")")
	fs.StringSliceVar(&f.keys, "key", nil, "Resource key to label (repeatable, replaces configured keys)")
	fs.Var(&f.langs, "lang", "Target language (repeatable or comma-separated, replaces configured languages)")

	fs.StringVar(&f.provider, "provider", "", "Translation provider: "+strings.Join(translate.ProviderIDs(), ", "))
	fs.StringVar(&f.apiKey, "api-key", "", "API key (or "+settings.EnvAPIKey+" env var)")
	fs.StringVar(&f.baseURL, "base-url", "", "Custom API base URL (chat providers)")
	fs.StringVar(&f.model, "model", "", "Model name (chat providers)")

	fs.DurationVar(&f.timeout, "timeout", 0, "Request timeout (0 = provider default)")
	fs.IntVar(&f.retries, "retries", config.DefaultMaxRetries, "Extra attempts per string after a failed request")
	fs.DurationVar(&f.delay, "delay", 0, "Pause between translation requests")

	fs.BoolVar(&f.onlyConfigured, "only-configured", false, "Translate only the configured keys")
	fs.BoolVar(&f.noProgress, "no-progress", false, "Disable the progress bar")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Log every translated string")
}

func newSyncCmd() *cobra.Command {
	var flags syncFlags

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Label new keys and translate missing strings",
		Long: `Label new keys in English and translate missing strings.

Steps:
  1. Format every configured key as an English label.
  2. Load values/strings.xml and every target locale file (a malformed
     file stops the run before anything is written).
  3. Add the labels whose keys are not present yet, re-indent, write.
  4. For each locale, translate the translatable English strings it is
     missing, add them, re-indent, write.

Examples:
  # Default run: keys and languages from .stringsync.yaml
  stringsync

  # Add two keys and translate into Arabic and Brazilian Portuguese
  stringsync sync --key apply_changes --key discard_changes --lang ar,pt-BR

  # Use a local Ollama model
  stringsync sync --provider ollama --model qwen2.5`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSync(cmd.Context(), cmd.Flags(), &flags)
		},
	}

	addSyncFlags(cmd.Flags(), &flags)

	_ = cmd.RegisterFlagCompletionFunc("provider", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"google\tGoogle Translate web endpoint (no key)",
			"google-cloud\tGoogle Cloud Translation (API key)",
			"openai\tOpenAI (API key)",
			"ollama\tOllama local server",
		}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

// loadConfig loads .env and the config file of the project root.
func loadConfig() (*config.File, error) {
	if err := config.LoadEnv(rootDir); err != nil {
		return nil, err
	}
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDir(rootDir)
}

// applySyncFlags overrides cfg with the flags given on the command line
// and re-validates it.
func applySyncFlags(cfg *config.File, fs *pflag.FlagSet, f *syncFlags) error {
	if fs.Changed("res-dir") {
		cfg.ResDir = f.resDir
	}
	if fs.Changed("key") {
		cfg.Keys = f.keys
	}
	if fs.Changed("lang") {
		cfg.Languages = f.langs
	}
	if fs.Changed("only-configured") {
		cfg.OnlyConfigured = f.onlyConfigured
	}
	if fs.Changed("provider") {
		cfg.Provider.Name = f.provider
	}
	if fs.Changed("base-url") {
		cfg.Provider.BaseURL = f.baseURL
	}
	if fs.Changed("model") {
		cfg.Provider.Model = f.model
	}
	if fs.Changed("timeout") {
		cfg.Provider.Timeout = f.timeout
	}
	if fs.Changed("retries") {
		retries := f.retries
		cfg.Provider.MaxRetries = &retries
	}
	if fs.Changed("delay") {
		cfg.Provider.RequestDelay = f.delay
	}
	return cfg.Validate()
}

func resolveResDir(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(rootDir, dir)
}

// resolveProvider builds the provider from the config file, the flags and
// the stored credentials.
func resolveProvider(cfg *config.File, flagKey string) translate.Provider {
	p := cfg.Provider
	prov := translate.Provider{
		ID:         p.Name,
		BaseURL:    p.BaseURL,
		Model:      p.Model,
		SourceLang: cfg.SourceLang,
		Timeout:    p.Timeout,
		APIKey:     settings.ResolveAPIKey(p.Name, flagKey, p.APIKey),
	}
	if prov.BaseURL == "" {
		if info := settings.Get(p.Name); info != nil {
			prov.BaseURL = info.BaseURL
		}
	}
	return prov
}

func runSync(ctx context.Context, fs *pflag.FlagSet, f *syncFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applySyncFlags(cfg, fs, f); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	resDir := resolveResDir(cfg.ResDir)
	prov := resolveProvider(cfg, f.apiKey)

	tr, err := translate.New(ctx, prov)
	if err != nil {
		return err
	}
	if c, ok := tr.(io.Closer); ok {
		defer c.Close()
	}
	if chat, ok := tr.(*translate.Chat); ok && cfg.Provider.Prompt != "" {
		chat.Prompt = cfg.Provider.Prompt
	}

	lf, err := lockfile.Load(rootDir)
	if err != nil {
		return err
	}

	logInfo(i18n.T("Resource directory: %s"), resDir)
	logInfo(i18n.T("Provider: %s"), cyan(prov.ID))
	logInfo(i18n.T("Languages: %s"), describeLanguages(cfg.Languages))

	var bar *progressbar.ProgressBar
	opts := pipeline.Options{
		ResDir:         resDir,
		Languages:      cfg.Languages,
		Keys:           cfg.Keys,
		OnlyConfigured: cfg.OnlyConfigured,
		Lock:           lf,
		Root:           rootDir,
		MaxRetries:     cfg.Provider.Retries(),
		RequestDelay:   cfg.Provider.RequestDelay,
		Verbose:        f.verbose,
		OnLog: func(format string, args ...any) {
			if bar != nil && !bar.IsFinished() {
				fmt.Fprintln(os.Stderr)
			}
			logInfo(i18n.T(format), args...)
		},
	}
	if !f.noProgress && !f.verbose {
		opts.OnLocaleStart = func(lang string, total int) {
			bar = newProgressBar(total, fmt.Sprintf("%s (%s)", langmeta.Name(lang), lang))
		}
		opts.OnProgress = func(lang string, done, total int) {
			if bar != nil {
				_ = bar.Set(done)
			}
		}
	}

	result, err := pipeline.Run(ctx, tr, opts)
	if err != nil {
		return err
	}

	translated := 0
	for _, lr := range result.Locales {
		translated += len(lr.Added)
	}
	logSuccess(i18n.T("Sync complete: %d new English string(s), %d new translation(s)"), len(result.SourceAdded), translated)
	return nil
}

// describeLanguages renders "ar (العربية), de (Deutsch)".
func describeLanguages(langs []string) string {
	parts := make([]string, len(langs))
	for i, l := range langs {
		parts[i] = fmt.Sprintf("%s (%s)", l, langmeta.NativeName(l))
	}
	return strings.Join(parts, ", ")
}

func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(os.Stderr),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", description)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(os.Stderr)
		}),
	)
}

// ---------------------------------------------------------------------------
// init (write .stringsync.yaml)
// ---------------------------------------------------------------------------

func newInitCmd() *cobra.Command {
	var (
		resDirFlag string
		langs      langList
		keys       []string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .stringsync.yaml for this project",
		Long: `Write .stringsync.yaml in the project root.

Target languages default to the values-* directories that already contain
a strings.xml; with none found, Arabic is used. An existing file is only
replaced with --force.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := configPath
			if path == "" {
				path = filepath.Join(rootDir, config.FileName)
			}
			return runInit(path, resDirFlag, langs, keys, force)
		},
	}

	cmd.Flags().StringVar(&resDirFlag, "res-dir", config.DefaultResDir, "Android res directory, relative to --root")
	cmd.Flags().VarP(&langs, "lang", "l", "Target languages (comma-separated, default: detected)")
	cmd.Flags().StringSliceVarP(&keys, "key", "k", nil, "Resource keys to label (default: apply_changes)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}

func runInit(path, resDir string, langs, keys []string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	cfg := config.Default()
	cfg.ResDir = resDir
	if len(keys) > 0 {
		cfg.Keys = keys
	}
	var detected []string
	for _, lang := range android.DetectLanguages(resolveResDir(resDir)) {
		if norm, err := langmeta.Normalize(lang); err == nil && norm != cfg.SourceLang {
			detected = append(detected, norm)
		}
	}
	switch {
	case len(langs) > 0:
		cfg.Languages = langs
	case len(detected) > 0:
		cfg.Languages = detected
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.Save(path); err != nil {
		return err
	}

	logSuccess(i18n.T("Wrote %s"), cfg.Path())
	logInfo(i18n.T("Languages: %s"), describeLanguages(cfg.Languages))
	return nil
}

// ---------------------------------------------------------------------------
// status (read-only: per-locale translation progress)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show per-locale translation progress",
		Long: `Show translation progress for every configured or detected locale.

Locales are taken from .stringsync.yaml and from the values-* directories
that contain a strings.xml. A translation is "stale" when its English
source text changed after it was made. Does not modify any files.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(verbose)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "List missing and stale keys")
	return cmd
}

func runStatus(verbose bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	resDir := resolveResDir(cfg.ResDir)
	langs := mergeLanguages(cfg.Languages, android.DetectLanguages(resDir))

	lf, err := lockfile.Load(rootDir)
	if err != nil {
		return err
	}
	statuses, err := pipeline.Status(resDir, langs, lf, rootDir)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s\n", cyan(i18n.T("Resource directory:")), resDir)
	if cfg.Path() != "" {
		fmt.Printf("%s %s\n", cyan(i18n.T("Config:")), cfg.Path())
	}
	if targets, _ := lf.Stats(); targets > 0 {
		fmt.Printf("%s %s (%s)\n", cyan(i18n.T("Lock file:")), lf.Path(), lf.Summary())
	}
	if len(statuses) == 0 {
		fmt.Println(i18n.T("No target locales configured or found."))
		return nil
	}
	fmt.Printf("%s %d\n\n", cyan(i18n.T("Translatable English strings:")), statuses[0].Total)

	width := langColumnWidth(langs)
	for _, st := range statuses {
		line := fmt.Sprintf("  %-*s  %-22s %s  %d/%d", width, st.Lang, langmeta.Name(st.Lang),
			percentBar(st.Percent(), 20), st.Translated, st.Total)
		if n := len(st.Stale); n > 0 {
			line += "  " + yellow(fmt.Sprintf(i18n.N("%d stale", "%d stale", n), n))
		}
		if !st.Exists {
			line += "  " + red(i18n.T("(no file)"))
		}
		fmt.Println(line)

		if verbose {
			for _, name := range st.Missing {
				fmt.Printf("  %*s    %s %s\n", width, "", red("-"), name)
			}
			for _, name := range st.Stale {
				fmt.Printf("  %*s    %s %s\n", width, "", yellow("~"), name)
			}
		}
	}
	return nil
}

// percentBar renders a fixed-width bar colored by completeness.
func percentBar(percent, width int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := percent * width / 100
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	paint := yellow
	switch {
	case percent == 100:
		paint = green
	case percent == 0:
		paint = red
	}
	return fmt.Sprintf("%s %3d%%", paint(bar), percent)
}

func langColumnWidth(langs []string) int {
	w := 0
	for _, l := range langs {
		if len(l) > w {
			w = len(l)
		}
	}
	return w
}

// mergeLanguages returns configured followed by the detected languages
// that were not configured.
func mergeLanguages(configured, detected []string) []string {
	seen := make(map[string]bool, len(configured))
	out := make([]string, 0, len(configured)+len(detected))
	for _, l := range append(append([]string{}, configured...), detected...) {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

// ---------------------------------------------------------------------------
// format (pretty-print only)
// ---------------------------------------------------------------------------

func newFormatCmd() *cobra.Command {
	var resDirFlag string

	cmd := &cobra.Command{
		Use:   "format",
		Short: "Re-indent strings.xml files",
		Long: `Re-indent values/strings.xml and every locale's strings.xml in place
with four spaces per level. Nothing is added or translated. Running it
twice changes nothing the second time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if resDirFlag != "" {
				cfg.ResDir = resDirFlag
			}
			resDir := resolveResDir(cfg.ResDir)

			changed, err := pipeline.Format(resDir, mergeLanguages(cfg.Languages, android.DetectLanguages(resDir)))
			if err != nil {
				return err
			}
			if len(changed) == 0 {
				logInfo(i18n.T("All files are already formatted"))
				return nil
			}
			for _, path := range changed {
				logSuccess(i18n.T("Formatted %s"), path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&resDirFlag, "res-dir", "", "Android res directory (default: from config)")
	return cmd
}

// ---------------------------------------------------------------------------
// auth (stored API keys)
// ---------------------------------------------------------------------------

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage provider API keys",
		Long: `Manage API keys stored in ` + "$XDG_DATA_HOME/stringsync/auth.json" + `.

Lookup order when translating:
  1. --api-key flag
  2. ` + settings.EnvAPIKey + ` environment variable
  3. provider variable (OPENAI_API_KEY, GOOGLE_API_KEY)
  4. stored key (this command)
  5. provider.api_key in .stringsync.yaml

Examples:
  stringsync auth set openai sk-...       Store an OpenAI key
  stringsync auth set google-cloud        Read the key from stdin
  stringsync auth list                    Show stored keys (masked)
  stringsync auth remove openai           Remove one key
  stringsync auth remove                  Remove all keys`,
	}

	cmd.AddCommand(newAuthSetCmd(), newAuthListCmd(), newAuthRemoveCmd())
	return cmd
}

func newAuthSetCmd() *cobra.Command {
	var baseURL string

	cmd := &cobra.Command{
		Use:   "set <provider> [key]",
		Short: "Store an API key for a provider",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			providerID := args[0]
			if _, ok := translate.DefaultProviders()[providerID]; !ok {
				return fmt.Errorf("unknown provider %q (valid: %s)", providerID, strings.Join(translate.ProviderIDs(), ", "))
			}

			var key string
			if len(args) == 2 {
				key = args[1]
			} else {
				fmt.Fprintf(os.Stderr, i18n.T("API key for %s: "), providerID)
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && !errors.Is(err, io.EOF) {
					return fmt.Errorf("reading key: %w", err)
				}
				key = strings.TrimSpace(line)
			}
			if key == "" {
				return fmt.Errorf("empty API key")
			}

			if err := settings.SetAPIKey(providerID, key, baseURL); err != nil {
				return err
			}
			logSuccess(i18n.T("Stored key %s for %s in %s"), settings.MaskKey(key), providerID, settings.FilePath())
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Custom endpoint saved with the key")
	return cmd
}

func newAuthListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show stored keys",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			store := settings.Load()

			fmt.Fprintf(os.Stderr, "\n%s  %s\n", blue(i18n.T("Stored Credentials")), settings.FilePath())
			fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))
			for _, id := range store.Providers() {
				info := store[id]
				if info == nil || info.Key == "" {
					continue
				}
				fmt.Fprintf(os.Stderr, "  %-14s %s (key: %s)\n", id, green(i18n.T("configured")), settings.MaskKey(info.Key))
				if info.BaseURL != "" {
					fmt.Fprintf(os.Stderr, "  %14s endpoint: %s\n", "", info.BaseURL)
				}
			}
			for _, id := range translate.ProviderIDs() {
				if info := store[id]; info == nil || info.Key == "" {
					fmt.Fprintf(os.Stderr, "  %-14s %s\n", id, red(i18n.T("not configured")))
				}
			}

			fmt.Fprintf(os.Stderr, "\n  %s\n", yellow(i18n.T("Environment Variables")))
			for _, env := range []string{settings.EnvAPIKey, "OPENAI_API_KEY", "GOOGLE_API_KEY"} {
				if v := os.Getenv(env); v != "" {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", env, green(settings.MaskKey(v)))
				} else {
					fmt.Fprintf(os.Stderr, "  %s: %s\n", env, red(i18n.T("not set")))
				}
			}
			fmt.Fprintln(os.Stderr)
		},
	}
}

func newAuthRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove [provider]",
		Aliases: []string{"rm", "logout"},
		Short:   "Remove a stored key (all keys without an argument)",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := settings.RemoveAll(); err != nil {
					return err
				}
				logSuccess(i18n.T("Removed all stored keys"))
				return nil
			}
			if err := settings.Remove(args[0]); err != nil {
				return err
			}
			logSuccess(i18n.T("Removed stored key for %s"), args[0])
			return nil
		},
	}
}
