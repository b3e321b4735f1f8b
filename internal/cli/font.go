package cli

import (
	"fmt"
	"strings"

	"Admin-Console/internal/app/i18n"

	"github.com/spf13/cobra"
)

func newFontCommand(app *consoleApp) *cobra.Command {
	return &cobra.Command{
		Use:     "font <text>",
		Short:   "Detect the script of a text and its font class",
		Example: `  consolectl font "សួស្តី"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			code := i18n.DetectLanguage(text)
			class := i18n.DetectScript(text)

			if app.output == outputJSON {
				return renderJSON(cmd.OutOrStdout(), map[string]string{
					"language":    code,
					"font_class":  string(class),
					"font_family": i18n.FontFamily(code),
				})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", code, class, i18n.FontFamily(code))
			return err
		},
	}
}
