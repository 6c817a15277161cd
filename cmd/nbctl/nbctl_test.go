package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/fr0stylo/nbgate/internal/netbilling"
)

func newRoot(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	root := &cobra.Command{Use: "nbctl", SilenceUsage: true, SilenceErrors: true}
	root.PersistentFlags().String("db", filepath.Join(t.TempDir(), "nbctl-test"), "")
	root.AddCommand(siteCmd())
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(&bytes.Buffer{})
	return root, out
}

func TestSiteCommandsRoundTrip(t *testing.T) {
	t.Setenv("NBGATE_ENV", "test")

	root, out := newRoot(t)
	root.SetArgs([]string{"site", "add", "shop", "--account", "123456789012", "--access-keyword", "kw", "--retrieval-keyword", "rk"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "Site shop added")

	out.Reset()
	root.SetArgs([]string{"site", "list"})
	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "shop")
	require.Contains(t, out.String(), "not set")

	root.SetArgs([]string{"site", "add", "shop", "--account", "1", "--access-keyword", "a", "--retrieval-keyword", "b"})
	require.Error(t, root.Execute())

	out.Reset()
	root.SetArgs([]string{"site", "delete", "shop"})
	require.NoError(t, root.Execute())
	root.SetArgs([]string{"site", "delete", "shop"})
	require.Error(t, root.Execute())
}

func TestWindowFlags(t *testing.T) {
	t.Parallel()

	cmd := reportKindCmd("members", "", netbilling.MemberReport)
	require.NoError(t, cmd.Flags().Set("from", "2026-10-01"))
	window, err := windowFlags(cmd)
	require.NoError(t, err)
	require.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), window.From)
	require.True(t, window.To.IsZero())

	require.NoError(t, cmd.Flags().Set("to", "yesterday"))
	_, err = windowFlags(cmd)
	require.Error(t, err)
}

func TestPrintRecordsSortsRowsAndColumns(t *testing.T) {
	t.Parallel()

	records := map[string]netbilling.Record{
		"2": {"MEMBER_USER_NAME": netbilling.Scalar("bob"), "SITE_TAG": netbilling.List("a", "b")},
		"1": {"MEMBER_USER_NAME": netbilling.Scalar("alice"), "SITE_TAG": netbilling.Scalar("a")},
	}
	cmd := &cobra.Command{}
	out := &bytes.Buffer{}
	cmd.SetOut(out)

	require.NoError(t, printRecords(cmd, records, nil))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	require.True(t, strings.HasPrefix(lines[0], "ID"))
	require.Contains(t, lines[1], "alice")
	require.Contains(t, lines[2], "a,b")
}
