// Package cli provides the consolectl command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"Admin-Console/internal/app/apiclient"
	"Admin-Console/internal/app/auth"
	"Admin-Console/internal/app/config"
	"Admin-Console/internal/app/i18n"
	"Admin-Console/internal/app/session"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// Output modes
const (
	outputTable = "table"
	outputJSON  = "json"
)

// consoleApp - состояние одного запуска CLI
type consoleApp struct {
	configName string
	apiURL     string
	token      string
	lang       string
	output     string
	verbose    bool

	cfg      *config.Config
	client   *apiclient.Client
	store    *session.Store
	locale   *i18n.ActiveLocale
	resolver *i18n.Resolver
	catalog  *i18n.Catalog

	// закрывается, когда восстановление сессии завершено (успешно или нет)
	restored chan struct{}
	cancel   context.CancelFunc
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	app := &consoleApp{}

	rootCmd := &cobra.Command{
		Use:   "consolectl",
		Short: "Admin console data layer from the terminal",
		Long: `consolectl talks to the admin console REST backend the same way the console does.

It lists tables with the console's paging and sorting rules, downloads exports,
switches the interface language and detects the font script of a text.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip setup for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			return app.setup(cmd)
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			if app.cancel != nil {
				app.cancel()
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&app.configName, "config", "", "config file name (default: config)")
	flags.StringVar(&app.apiURL, "api", "", "REST API base URL (default from config)")
	flags.StringVar(&app.token, "token", "", "bearer token (default: $CONSOLE_TOKEN)")
	flags.StringVar(&app.lang, "lang", "", "interface language (en|km)")
	flags.StringVarP(&app.output, "output", "o", outputTable, "Output format (table|json)")
	flags.BoolVarP(&app.verbose, "verbose", "v", false, "Verbose output")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{outputTable, outputJSON}, cobra.ShellCompDirectiveNoFileComp
	})
	_ = rootCmd.RegisterFlagCompletionFunc("lang", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		var codes []string
		for _, l := range i18n.GetAvailableLanguages() {
			codes = append(codes, l.Code)
		}
		return codes, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newListCommand(app))
	rootCmd.AddCommand(newExportCommand(app))
	rootCmd.AddCommand(newLangCommand(app))
	rootCmd.AddCommand(newFontCommand(app))

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

func (a *consoleApp) setup(cmd *cobra.Command) error {
	if a.verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.WarnLevel)
	}

	if a.output != outputTable && a.output != outputJSON {
		return fmt.Errorf("unknown output format %q", a.output)
	}

	if a.configName != "" {
		os.Setenv("CONFIG_NAME", a.configName)
	}
	cfg, err := config.NewConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if a.apiURL != "" {
		cfg.APIBaseURL = a.apiURL
	}
	a.cfg = cfg

	a.store = session.NewStore()
	a.client = apiclient.New(cfg.APIBaseURL,
		apiclient.WithTimeout(cfg.RequestTimeout),
		apiclient.WithTokens(a.store),
	)
	a.catalog = i18n.NewCatalog(a.client)

	initial := cfg.DefaultLocale
	if a.lang != "" {
		initial = a.lang
	}
	a.locale = i18n.NewActiveLocale(initial)
	a.store.SetActiveLocale(a.locale.Code())
	a.locale.Subscribe(a.store.SetActiveLocale)
	a.resolver = i18n.NewResolver(a.store, a.locale, a.client)

	a.startSession(cmd.Context())
	return nil
}

// startSession восстанавливает сессию в фоне и применяет язык профиля,
// если язык не задан флагом
func (a *consoleApp) startSession(parent context.Context) {
	a.restored = make(chan struct{})

	token := a.token
	if token == "" {
		token = os.Getenv("CONSOLE_TOKEN")
	}
	if token == "" {
		close(a.restored)
		return
	}

	ctx, cancel := context.WithCancel(parent)
	a.cancel = cancel

	go func() {
		defer close(a.restored)
		if err := auth.New(a.client).Restore(ctx, a.store, token); err != nil {
			// Инициализатору больше нечего ждать
			cancel()
		}
	}()

	if a.lang != "" {
		return
	}
	if _, err := i18n.NewInitializer(a.resolver).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logrus.Warnf("Language initialization failed: %v", err)
	}
}

// waitSession ждет окончания восстановления сессии
func (a *consoleApp) waitSession(ctx context.Context) error {
	select {
	case <-a.restored:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
