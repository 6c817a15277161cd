package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/nbgate/internal/app/services"
)

func syncCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [site_tag...]",
		Short: "Record remote member ids from the member report",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			site, others, err := loadSites(cmd, e, args)
			if err != nil {
				return err
			}
			window, err := windowFlags(cmd)
			if err != nil {
				return err
			}

			result, err := services.NewReportSyncService(e.client(), e.store, e.log).SyncMembers(cmd.Context(), site, others, window)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Members: %d  Recorded: %d  Active: %d  Skipped: %d\n",
				result.Members, result.Recorded, result.Active, result.Skipped)
			return nil
		},
	}
	cmd.Flags().String("from", "", "Window start (YYYY-MM-DD, defaults to now)")
	cmd.Flags().String("to", "", "Window end (YYYY-MM-DD)")
	return cmd
}
