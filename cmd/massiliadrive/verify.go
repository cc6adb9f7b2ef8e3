package main

import (
	"context"
	"fmt"
	"time"

	"github.com/massiliadrive/backend/internal/lib/email"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the configured mail relay accepts a session",
	Long: `Open a session to the configured mail relay (SMTP or Resend), run the
same verification a contact submission does, and report the result.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		timeout, _ := cmd.Flags().GetDuration("timeout")
		ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
		defer cancel()

		start := time.Now()
		transport := email.NewTransportFactory(cfg.Mail)()
		if err := transport.Verify(ctx); err != nil {
			log.Error().Err(err).Str("provider", cfg.Mail.Provider).Msg("mail relay verification failed")
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "mail relay ok (%s, %s)\n", cfg.Mail.Provider, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	verifyCmd.Flags().Duration("timeout", 30*time.Second, "Abort the check after this duration")
}
