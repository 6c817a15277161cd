package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	"github.com/fr0stylo/nbgate/internal/netbilling"
)

func siteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "site",
		Short: "Manage configured NETbilling sites",
	}
	cmd.AddCommand(siteAddCmd(), siteListCmd(), siteDeleteCmd())
	return cmd
}

func siteAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add [site_tag]",
		Short: "Register a site",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			flags := cmd.Flags()
			entity, _ := flags.GetString("entity")
			account, _ := flags.GetString("account")
			access, _ := flags.GetString("access-keyword")
			retrieval, _ := flags.GetString("retrieval-keyword")
			integrity, _ := flags.GetString("integrity-key")

			site := ports.Site{
				EntityID: entity,
				SiteConfig: netbilling.SiteConfig{
					AccountID:        account,
					SiteTag:          args[0],
					AccessKeyword:    access,
					RetrievalKeyword: retrieval,
					IntegrityKey:     integrity,
				},
			}
			if err := e.store.CreateSite(cmd.Context(), site); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Site %s added\n", args[0])
			return nil
		},
	}

	cmd.Flags().String("entity", "", "Owning entity id")
	cmd.Flags().String("account", "", "NETbilling account id")
	cmd.Flags().String("access-keyword", "", "Control interface access keyword")
	cmd.Flags().String("retrieval-keyword", "", "Reporting retrieval keyword")
	cmd.Flags().String("integrity-key", "", "Hosted payment integrity key")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("access-keyword")
	_ = cmd.MarkFlagRequired("retrieval-keyword")

	return cmd
}

func siteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			sites, err := e.store.ListSites(cmd.Context())
			if err != nil {
				return err
			}
			if len(sites) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sites configured")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SITE_TAG\tACCOUNT\tENTITY\tINTEGRITY_KEY")
			for _, site := range sites {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", site.SiteTag, site.AccountID, site.EntityID, keyStatus(site.IntegrityKey))
			}
			return w.Flush()
		},
	}
}

func siteDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [site_tag]",
		Short: "Remove a site and its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.store.DeleteSite(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Site %s deleted\n", args[0])
			return nil
		},
	}
}

func keyStatus(key string) string {
	if key == "" {
		return "not set"
	}
	return "set"
}
