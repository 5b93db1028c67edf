package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teemow/maccal/internal/applescript"
	"github.com/teemow/maccal/internal/calendar"
	"github.com/teemow/maccal/internal/logging"
)

func newCheckCmd() *cobra.Command {
	var debugMode bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check Calendar automation access",
		Long: `Probe the Calendar application to verify that automation access is
authorized, then list the available calendars.

If access has not been granted, instructions for enabling it in System
Settings are printed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.Setup(os.Stderr, debugMode)
			client := calendar.NewClient(applescript.NewOsascript(logger), logger)
			ctx := cmd.Context()

			status := client.CheckPermissions(ctx)
			for _, diagnostic := range status.Diagnostics {
				fmt.Println(diagnostic)
			}
			if !status.Authorized {
				return fmt.Errorf("calendar access is not available")
			}

			cals, err := client.ListCalendars(ctx)
			if err != nil {
				return fmt.Errorf("failed to list calendars: %w", err)
			}

			fmt.Printf("\n%d calendars:\n", len(cals))
			for _, cal := range cals {
				access := "read-only"
				if cal.Writable {
					access = "writable"
				}
				fmt.Printf("  %s (%s)\n", cal.Name, access)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	return cmd
}
