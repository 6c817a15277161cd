package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/nbgate/internal/netbilling"
)

func memberCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member [site_tag]",
		Short: "Query or update a member through the member update endpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			site, err := e.site(cmd, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			id, _ := flags.GetString("id")
			login, _ := flags.GetString("login")
			if id == "" && login == "" {
				return fmt.Errorf("one of --id or --login is required")
			}
			command, _ := flags.GetString("command")
			sets, _ := flags.GetStringArray("set")

			extra := netbilling.NewValues()
			for _, kv := range sets {
				key, value, ok := strings.Cut(kv, "=")
				if !ok || key == "" {
					return fmt.Errorf("invalid --set %q, want KEY=VALUE", kv)
				}
				extra.Add(key, value)
			}

			values, err := e.client().MemberUpdate(cmd.Context(), site, netbilling.MemberIdentifier{ID: id, Login: login}, command, extra)
			if err != nil {
				return err
			}
			for _, key := range values.Keys() {
				v, _ := values.Get(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%-28s %s\n", key+":", strings.Join(v.Strings(), ","))
			}
			return nil
		},
	}

	cmd.Flags().String("id", "", "NETbilling member id")
	cmd.Flags().String("login", "", "Member login")
	cmd.Flags().String("command", "GET", "C_COMMAND to send")
	cmd.Flags().StringArray("set", nil, "Extra request field as KEY=VALUE (repeatable)")

	return cmd
}
