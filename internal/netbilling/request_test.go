package netbilling

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestEncodeFormEmitsListsAsRepeatedPairs(t *testing.T) {
	t.Parallel()

	vs := NewValues()
	vs.SetString("account_id", "123")
	vs.Set("site_tag", List("a", "b c"))
	vs.SetString("note", "x&y=z")

	require.Equal(t, "account_id=123&site_tag=a&site_tag=b+c&note=x%26y%3Dz", EncodeForm(vs))
}

func TestEncodeFormRoundTripsThroughDecode(t *testing.T) {
	t.Parallel()

	vs := NewValues()
	vs.Set("u", List("alice", "bob@example.com"))
	vs.SetString("n", "p@ss w+rd")

	decoded := Decode(EncodeForm(vs))
	u, _ := decoded.Get("u")
	require.Equal(t, []string{"alice", "bob@example.com"}, u.Strings())
	require.Equal(t, "p@ss w+rd", field(decoded, "n"))
}

func TestMemberUpdateParams(t *testing.T) {
	t.Parallel()

	extra := NewValues()
	extra.SetString("C_COMMAND", "ignored")
	extra.SetString("C_EXPIRE", "2026-12-31")

	params := MemberUpdateParams(testSite, MemberIdentifier{ID: "42", Login: "alice"}, "", extra)

	require.Equal(t, []string{"C_ACCOUNT", "C_CONTROL_KEYWORD", "C_COMMAND", "C_MEMBER_ID", "C_EXPIRE"}, params.Keys())
	require.Equal(t, "123456789012:shop", field(params, "C_ACCOUNT"))
	require.Equal(t, "kw", field(params, "C_CONTROL_KEYWORD"))
	require.Equal(t, "GET", field(params, "C_COMMAND"))
	require.Equal(t, "42", field(params, "C_MEMBER_ID"))

	params = MemberUpdateParams(SiteConfig{AccountID: "123"}, MemberIdentifier{Login: "alice"}, "SET", nil)
	require.Equal(t, "123", field(params, "C_ACCOUNT"))
	require.Equal(t, "SET", field(params, "C_COMMAND"))
	require.Equal(t, "alice", field(params, "C_MEMBER_LOGIN"))
	require.False(t, params.Has("C_MEMBER_ID"))
}

func TestReportingParamsSingleSite(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 15, 8, 0, 0, 0, time.FixedZone("EEST", 3*3600))
	params := ReportingParams(MemberReport, testSite, nil, ReportWindow{}, now)

	require.Equal(t, "123456789012", field(params, "account_id"))
	require.Equal(t, "shop", field(params, "site_tag"))
	require.Equal(t, "rk", field(params, "authorization"))
	require.Equal(t, "2026-10-15 05:00:00", field(params, "expire_after"))
	require.False(t, params.Has("expire_before"))
}

func TestReportingParamsMultipleSitesAndWindow(t *testing.T) {
	t.Parallel()

	sites := []SiteConfig{
		{SiteTag: "a", RetrievalKeyword: "ra"},
		{SiteTag: "b", RetrievalKeyword: "rb"},
	}
	window := ReportWindow{
		From: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	}
	params := ReportingParams(TransactionReport, SiteConfig{AccountID: "123"}, sites, window, time.Now())

	body, err := url.ParseQuery(EncodeForm(params))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, body["site_tag"])
	require.Equal(t, []string{"ra", "rb"}, body["authorization"])
	require.Equal(t, []string{"123"}, body["account_id"])
	require.Equal(t, []string{"2026-01-01 00:00:00"}, body["transactions_after"])
	require.Equal(t, []string{"2026-02-01 00:00:00"}, body["transactions_before"])
}

func TestSiteConfigValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, testSite.Validate())

	bad := testSite
	bad.SiteTag = "a:b"
	require.Error(t, bad.Validate())

	bad = testSite
	bad.AccessKeyword = " "
	require.Error(t, bad.Validate())

	noKey := testSite
	noKey.IntegrityKey = ""
	require.NoError(t, noKey.Validate())
}
