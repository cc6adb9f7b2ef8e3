package main

import (
	"fmt"
	"time"

	"github.com/massiliadrive/backend/internal/config"
	"github.com/massiliadrive/backend/internal/lib/email"
	"github.com/massiliadrive/backend/internal/model/contact"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render an email template with sample data",
	Long: `Render one of the contact email templates with a sample VTC booking and
print it. No mail is sent.

Example:
  massiliadrive preview --template requester_confirmation --locale en
  massiliadrive preview --format eml > sample.eml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tmpl, _ := cmd.Flags().GetString("template")
		locale, _ := cmd.Flags().GetString("locale")
		format, _ := cmd.Flags().GetString("format")

		cfg, err := config.LoadConfig()
		if err != nil {
			// Previews do not need a complete mail setup.
			cfg = config.Default()
		}

		msg, err := email.Preview(cfg, email.Template(tmpl), contact.ResolveLocale(locale))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		switch format {
		case "html":
			fmt.Fprint(out, msg.HTML)
		case "text":
			fmt.Fprintf(out, "Subject: %s\n\n%s", msg.Subject, msg.Text)
		case "eml":
			raw, err := msg.Bytes("<preview@localhost>", time.Now())
			if err != nil {
				return err
			}
			_, _ = out.Write(raw)
		default:
			return fmt.Errorf("unknown format %q (html, text, eml)", format)
		}
		return nil
	},
}

func init() {
	previewCmd.Flags().String("template", string(email.TemplateOperatorNotification), "Template to render (operator_notification, requester_confirmation)")
	previewCmd.Flags().String("locale", "fr", "Locale (fr, en)")
	previewCmd.Flags().String("format", "html", "Output format (html, text, eml)")
}
