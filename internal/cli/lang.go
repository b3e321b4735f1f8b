package cli

import (
	"fmt"

	"Admin-Console/internal/app/i18n"

	"github.com/spf13/cobra"
)

func newLangCommand(app *consoleApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lang",
		Short: "Show or change the interface language",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List selectable languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			langs := app.resolver.GetAvailableLanguages()
			if app.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), langs)
			}
			renderLanguages(cmd.OutOrStdout(), langs, app.locale.Code())
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "get",
		Short: "Print the active language",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			current := app.resolver.GetCurrentLanguage()
			if app.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), current)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", current.Code, current.NativeName)
			return err
		},
	})

	var noPersist bool
	set := &cobra.Command{
		Use:   "set <code>",
		Short: "Switch the language and save it in the user profile",
		Example: `  # Switch to Khmer and save it in the profile
  consolectl lang set km --token $TOKEN

  # Switch for this run only
  consolectl lang set km --no-persist`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
			var codes []string
			for _, l := range i18n.GetAvailableLanguages() {
				codes = append(codes, l.Code)
			}
			return codes, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.waitSession(cmd.Context()); err != nil {
				return err
			}
			if err := app.resolver.SetLanguage(cmd.Context(), args[0], !noPersist); err != nil {
				return err
			}

			current := app.resolver.GetCurrentLanguage()
			if app.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), current)
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Language set to %s (%s)\n", current.Code, current.NativeName)
			return err
		},
	}
	set.Flags().BoolVar(&noPersist, "no-persist", false, "do not save the language in the user profile")
	cmd.AddCommand(set)

	return cmd
}
