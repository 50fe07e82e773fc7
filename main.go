// parrot — interactive translation lookup for the terminal, backed by
// the Youdao text-translation API.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/kunpehx/parrot/copymode"
	"github.com/kunpehx/parrot/i18n"
	"github.com/kunpehx/parrot/language"
	"github.com/kunpehx/parrot/prefs"
	"github.com/kunpehx/parrot/reformat"
	"github.com/kunpehx/parrot/session"
	"github.com/kunpehx/parrot/ui"
	"github.com/kunpehx/parrot/youdao"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[0;31m"
	colorGreen  = "\033[0;32m"
	colorYellow = "\033[1;33m"
	colorBlue   = "\033[0;34m"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorBlue+"[INFO]"+colorReset+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorGreen+"[OK]"+colorReset+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorYellow+"[WARN]"+colorReset+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, colorRed+"[ERROR]"+colorReset+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "parrot",
		Short: "Interactive translation lookup (Youdao)",
		Long: `parrot — interactive translation lookup for the terminal.

Run without arguments to open the interactive search: results update as
you type, the target language auto-pivots between your two preferred
languages based on the detected source, and enter copies the selected
row to the clipboard.

Query prefixes select a casing transform for copies:
  >text    copy as lowerCamelCase
  >>text   copy as UPPERCASE

Credentials come from the config file or the PARROT_APP_ID and
PARROT_APP_KEY environment variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive()
		},
	}

	root.AddCommand(
		newTranslateCmd(),
		newLangsCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")
	if err := newRootCmd().Execute(); err != nil {
		logError("%v", err)
		os.Exit(1)
	}
}

func runInteractive() error {
	p, err := prefs.Load()
	if err != nil {
		return err
	}
	// The language conflict renders as the blocking view inside the
	// program; every other validation error aborts here.
	if err := p.Validate(); err != nil && !errors.Is(err, prefs.ErrLanguageConflict) {
		return err
	}

	_, err = tea.NewProgram(ui.New(p), tea.WithAltScreen()).Run()
	return err
}

// ---------------------------------------------------------------------------
// translate (one-shot lookup)
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	var targetID string

	cmd := &cobra.Command{
		Use:   "translate <text>",
		Short: "One-shot lookup printed to the terminal",
		Long: `Translate the given text once and print the result sections.

Without --to the target language auto-pivots exactly as in interactive
mode, just without the pivot delay.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(strings.Join(args, " "), targetID)
		},
	}

	cmd.Flags().StringVar(&targetID, "to", "", "Pin the target language id (disables auto-pivot)")

	return cmd
}

func runTranslate(text, targetID string) error {
	p, err := prefs.Load()
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	sess := session.New(language.Lookup(p.Lang1), language.Lookup(p.Lang2))
	client := &youdao.Client{Credentials: youdao.Credentials{AppID: p.AppID, AppKey: p.AppKey}}

	gen := sess.SetQuery(text)
	if gen < 0 {
		return errors.New("nothing to translate")
	}
	if targetID != "" {
		target := language.Lookup(targetID)
		if target.IsEmpty() || target.ID == "auto" {
			return fmt.Errorf("unknown target language %q (see 'parrot langs')", targetID)
		}
		gen = sess.PinTarget(target)
	}

	// One pivot can follow another (degenerate detection first, then an
	// unexpected source); bound the chain like the interactive timers do.
	for attempt := 0; attempt < 3; attempt++ {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		resp, err := client.Translate(ctx, sess.Query, sess.Target.ID)
		cancel()
		if err != nil {
			sess.HandleFailure(gen)
			return err
		}

		d := sess.HandleResponse(gen, resp)
		if d.Kind != session.Pivot {
			break
		}
		logInfo("detected %s, switching target to %s", resp.L, d.NewTarget.Title)
		var ok bool
		if gen, ok = sess.CompletePivot(gen, d.NewTarget); !ok {
			break
		}
	}

	switch code := sess.LastErrorCode; code {
	case youdao.CodeSuccess:
	case youdao.CodeWarning:
		logWarning("API warning %s; result may be partial", code)
	default:
		logError("lookup failed with code %s (see %s)", code, ui.HelpURL)
		return fmt.Errorf("error code %s", code)
	}

	printSections(sess.Sections, sess.Mode)
	return nil
}

func printSections(sections []reformat.Section, mode copymode.Mode) {
	for _, s := range sections {
		if len(s.Items) == 0 {
			continue
		}
		if s.Hint != "" {
			header := colorBlue + s.Hint + colorReset
			if s.LanguageLabel != "" {
				header += "  " + s.LanguageLabel
			}
			fmt.Println(header)
		}
		for _, item := range s.Items {
			line := "  " + copymode.Apply(item.Title, mode)
			if item.Subtitle != "" {
				line += "  " + item.Subtitle
			}
			if item.AccessoryLabel != "" {
				line += "  " + colorGreen + item.AccessoryLabel + colorReset
			}
			fmt.Println(line)
		}
		fmt.Println()
	}
}

// ---------------------------------------------------------------------------
// langs (catalog listing)
// ---------------------------------------------------------------------------

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported languages",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%-8s %-24s %s\n", "ID", "Language", "Voices")
			fmt.Println(strings.Repeat("-", 56))
			for _, e := range language.Catalog {
				fmt.Printf("%-8s %-24s %s\n", e.ID, e.Title, strings.Join(e.Voices, ", "))
			}
		},
	}
}

// ---------------------------------------------------------------------------
// config (show / set preferences)
// ---------------------------------------------------------------------------

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or set preferences and credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow()
		},
	}

	cmd.AddCommand(newConfigSetCmd())

	return cmd
}

func runConfigShow() error {
	path, err := prefs.Path()
	if err != nil {
		return err
	}
	p, err := prefs.Load()
	if err != nil {
		return err
	}

	fmt.Printf("Config file:      %s\n", path)
	fmt.Printf("Language 1:       %s (%s)\n", p.Lang1, language.Lookup(p.Lang1).Title)
	fmt.Printf("Language 2:       %s (%s)\n", p.Lang2, language.Lookup(p.Lang2).Title)
	fmt.Printf("App id:           %s\n", p.AppID)
	fmt.Printf("App key:          %s\n", maskSecret(p.AppKey))
	fmt.Printf("Selection paste:  %v\n", p.SelectionPaste)

	if err := p.Validate(); err != nil {
		logWarning("%v", err)
	}
	return nil
}

func maskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}

func newConfigSetCmd() *cobra.Command {
	var (
		lang1, lang2   string
		appID, appKey  string
		selectionPaste bool
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update preferences",
		Long: `Update preferences. Only the given flags change; everything else is
kept. Credentials are stored with owner-only file permissions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := prefs.Load()
			if err != nil {
				return err
			}

			if lang1 != "" {
				p.Lang1 = lang1
			}
			if lang2 != "" {
				p.Lang2 = lang2
			}
			if appID != "" {
				p.AppID = appID
			}
			if appKey != "" {
				p.AppKey = appKey
			}
			if cmd.Flags().Changed("selection-paste") {
				p.SelectionPaste = selectionPaste
			}

			if p.Lang1 == p.Lang2 {
				return prefs.ErrLanguageConflict
			}
			if err := p.Save(); err != nil {
				return err
			}
			logSuccess("preferences saved")
			return nil
		},
	}

	cmd.Flags().StringVar(&lang1, "lang1", "", "Primary preferred language id")
	cmd.Flags().StringVar(&lang2, "lang2", "", "Secondary preferred language id")
	cmd.Flags().StringVar(&appID, "app-id", "", "API application id")
	cmd.Flags().StringVar(&appKey, "app-key", "", "API application secret")
	cmd.Flags().BoolVar(&selectionPaste, "selection-paste", false, "Auto-search the selected text on start")

	return cmd
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("parrot version %s\n", version)
			fmt.Printf("  commit: %s\n", commit)
			fmt.Printf("  built:  %s\n", date)
		},
	}
}
