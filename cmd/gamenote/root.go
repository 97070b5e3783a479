package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josegonzalez/gamenote/pkg/app"
	"github.com/josegonzalez/gamenote/pkg/config"
	"github.com/josegonzalez/gamenote/pkg/gamenote"
	"github.com/josegonzalez/gamenote/pkg/prompt"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath   string
	vault        string
	logLevel     string
	logFormat    string
	metricsFile  string
	noTokenCache bool
}

// lookupFlags only apply to the lookup itself.
type lookupFlags struct {
	posterPath string
	clipboard  bool
	output     string
	write      bool
	force      bool
	template   string
}

func newRootCommand() *cobra.Command {
	var global globalFlags
	var lookup lookupFlags

	cmd := &cobra.Command{
		Use:   "gamenote [query]",
		Short: "Look up a video game on IGDB and render it as a note",
		Long: `Prompts for a game title, searches IGDB, lets you pick a result and
renders the selected game as a note. The query prompt is pre-filled with
the positional arguments, or with the clipboard when --clipboard is set.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLookup(cmd, args, &global, &lookup)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&global.configPath, "config", "", "config file (default: $GAMENOTE_CONFIG, ./.gamenote.yaml or ~/.config/gamenote/config.{yaml,toml})")
	pf.StringVar(&global.vault, "vault", "", "vault root directory or afs URL")
	pf.StringVar(&global.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&global.logFormat, "log-format", "", "log format: text or json")
	pf.StringVar(&global.metricsFile, "metrics-textfile", "", "write prometheus counters to this file on exit")
	pf.BoolVar(&global.noTokenCache, "no-token-cache", false, "do not read or write the cached access token")

	f := cmd.Flags()
	f.StringVar(&lookup.posterPath, "poster-path", "", "vault directory for downloaded covers")
	f.BoolVar(&lookup.clipboard, "clipboard", false, "seed the query prompt from the clipboard")
	f.StringVarP(&lookup.output, "output", "o", app.OutputNote, "output format: note, yaml or json")
	f.BoolVarP(&lookup.write, "write", "w", false, "write the note into the vault instead of printing it")
	f.BoolVar(&lookup.force, "force", false, "overwrite an existing note")
	f.StringVar(&lookup.template, "template", "", "vault path of the note template")

	cmd.AddCommand(newTokenCommand(&global))
	cmd.AddCommand(newConfigCommand(&global))
	return cmd
}

// loadSettings reads the config file and applies flags that were set explicitly.
func loadSettings(cmd *cobra.Command, global *globalFlags, extra ...gamenote.Option) (gamenote.Settings, error) {
	settings, err := config.Load(global.configPath)
	if err != nil {
		return gamenote.Settings{}, err
	}

	flags := cmd.Flags()
	var opts []gamenote.Option
	if flags.Changed("vault") {
		opts = append(opts, gamenote.WithVault(global.vault))
	}
	opts = append(opts, gamenote.WithLogging(global.logLevel, global.logFormat))
	settings.Apply(append(opts, extra...)...)
	return settings, nil
}

func newApp(cmd *cobra.Command, global *globalFlags, extra ...gamenote.Option) (*app.App, error) {
	settings, err := loadSettings(cmd, global, extra...)
	if err != nil {
		return nil, err
	}
	return app.New(settings, app.Options{
		LogOutput:    cmd.ErrOrStderr(),
		NoTokenCache: global.noTokenCache,
	})
}

func runLookup(cmd *cobra.Command, args []string, global *globalFlags, lookup *lookupFlags) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	var extra []gamenote.Option
	if flags.Changed("poster-path") {
		extra = append(extra, gamenote.WithPosterPath(lookup.posterPath))
	}
	if flags.Changed("clipboard") {
		extra = append(extra, gamenote.WithClipboard(lookup.clipboard))
	}
	if flags.Changed("template") {
		extra = append(extra, gamenote.WithTemplate(lookup.template))
	}

	a, err := newApp(cmd, global, extra...)
	if err != nil {
		return err
	}
	defer func() {
		if werr := a.WriteMetrics(global.metricsFile); werr != nil {
			a.Logger().Warn("failed to write metrics", "path", global.metricsFile, "error", werr)
		}
	}()

	stderr := cmd.ErrOrStderr()
	term := prompt.NewTerminal(cmd.InOrStdin(), stderr)
	notifier := &trackingNotifier{next: prompt.NewLineNotifier(stderr)}
	sess := a.Session(term, notifier, prompt.SystemClipboard{}, strings.Join(args, " "))

	vars, err := sess.Run(ctx)
	if err != nil {
		if notifier.notified {
			return &reportedError{err: err}
		}
		return err
	}

	content, err := a.Render(ctx, vars, lookup.output)
	if err != nil {
		return err
	}

	if !lookup.write {
		return writeOut(cmd.OutOrStdout(), content)
	}
	path, err := a.WriteNote(ctx, vars, content, lookup.force)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}

// trackingNotifier remembers whether a notice reached the user.
type trackingNotifier struct {
	next     prompt.Notifier
	notified bool
}

func (n *trackingNotifier) Notify(message string) {
	n.notified = true
	n.next.Notify(message)
}

func writeOut(w io.Writer, content []byte) error {
	if _, err := w.Write(content); err != nil {
		return err
	}
	if len(content) > 0 && content[len(content)-1] != '\n' {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}
