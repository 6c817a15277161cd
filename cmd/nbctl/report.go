package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/fr0stylo/nbgate/internal/netbilling"
)

const windowLayout = "2006-01-02"

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Fetch NETbilling reports",
	}
	cmd.AddCommand(
		reportKindCmd("members", "Member report", netbilling.MemberReport),
		reportKindCmd("transactions", "Transaction report", netbilling.TransactionReport),
	)
	return cmd
}

func reportKindCmd(use, short string, kind netbilling.ReportKind) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use + " [site_tag...]",
		Short: short,
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
			records, err := e.client().Report(cmd.Context(), kind, site, others, window)
			if err != nil {
				return err
			}
			columns, _ := cmd.Flags().GetStringSlice("columns")
			return printRecords(cmd, records, columns)
		},
	}
	cmd.Flags().String("from", "", "Window start (YYYY-MM-DD, defaults to now)")
	cmd.Flags().String("to", "", "Window end (YYYY-MM-DD)")
	cmd.Flags().StringSlice("columns", nil, "Columns to print (default: all)")
	return cmd
}

// loadSites resolves the first tag as the primary site and, when more than
// one tag is given, every tag as the multi-site list.
func loadSites(cmd *cobra.Command, e *env, tags []string) (netbilling.SiteConfig, []netbilling.SiteConfig, error) {
	sites := make([]netbilling.SiteConfig, 0, len(tags))
	for _, tag := range tags {
		site, err := e.site(cmd, tag)
		if err != nil {
			return netbilling.SiteConfig{}, nil, err
		}
		sites = append(sites, site)
	}
	if len(sites) == 1 {
		return sites[0], nil, nil
	}
	return sites[0], sites, nil
}

func windowFlags(cmd *cobra.Command) (netbilling.ReportWindow, error) {
	var window netbilling.ReportWindow
	for name, target := range map[string]*time.Time{"from": &window.From, "to": &window.To} {
		raw, _ := cmd.Flags().GetString(name)
		if raw == "" {
			continue
		}
		parsed, err := time.Parse(windowLayout, raw)
		if err != nil {
			return netbilling.ReportWindow{}, fmt.Errorf("invalid --%s %q: %w", name, raw, err)
		}
		*target = parsed
	}
	return window, nil
}

func printRecords(cmd *cobra.Command, records map[string]netbilling.Record, columns []string) error {
	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No records")
		return nil
	}
	ids := make([]string, 0, len(records))
	for id := range records {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if len(columns) == 0 {
		seen := map[string]struct{}{}
		for _, record := range records {
			for column := range record {
				if _, ok := seen[column]; !ok {
					seen[column] = struct{}{}
					columns = append(columns, column)
				}
			}
		}
		sort.Strings(columns)
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\t"+strings.Join(columns, "\t"))
	for _, id := range ids {
		record := records[id]
		row := make([]string, 0, len(columns)+1)
		row = append(row, id)
		for _, column := range columns {
			v := record[column]
			row = append(row, strings.Join(v.Strings(), ","))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
