package netbilling

import (
	"net/url"
	"strings"
	"time"
)

// ReportingTimeFormat is the timestamp layout accepted by the reporting endpoints (UTC).
const ReportingTimeFormat = "2006-01-02 15:04:05"

// EncodeForm renders vs as an application/x-www-form-urlencoded body. List
// fields emit one pair per element, in order.
func EncodeForm(vs *Values) string {
	var b strings.Builder
	for _, key := range vs.Keys() {
		v, _ := vs.Get(key)
		for _, item := range v.Strings() {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(key))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(item))
		}
	}
	return b.String()
}

// MemberIdentifier selects one member for a member-update call. ID wins over Login.
type MemberIdentifier struct {
	ID    string
	Login string
}

// MemberUpdateParams builds the mupdate1.1 request parameters. An empty
// command defaults to GET, which is a read-only query.
func MemberUpdateParams(site SiteConfig, member MemberIdentifier, command string, extra *Values) *Values {
	if strings.TrimSpace(command) == "" {
		command = "GET"
	}
	account := site.AccountID
	if site.SiteTag != "" {
		account += ":" + site.SiteTag
	}

	params := NewValues()
	params.SetString("C_ACCOUNT", account)
	params.SetString("C_CONTROL_KEYWORD", site.AccessKeyword)
	params.SetString("C_COMMAND", command)
	switch {
	case member.ID != "":
		params.SetString("C_MEMBER_ID", member.ID)
	case member.Login != "":
		params.SetString("C_MEMBER_LOGIN", member.Login)
	}
	for _, key := range extra.Keys() {
		if params.Has(key) {
			continue
		}
		v, _ := extra.Get(key)
		params.Set(key, v)
	}
	return params
}

// ReportWindow bounds a reporting query. A zero From means "now".
type ReportWindow struct {
	From time.Time
	To   time.Time
}

// ReportingParams builds a member or transaction reporting request. When
// sites is non-empty the request covers each of those sites via parallel
// site_tag/authorization lists; otherwise it covers site alone. Empty values
// are dropped.
func ReportingParams(kind ReportKind, site SiteConfig, sites []SiteConfig, window ReportWindow, now time.Time) *Values {
	params := NewValues()
	if len(sites) > 0 {
		tags := make([]string, 0, len(sites))
		auths := make([]string, 0, len(sites))
		for _, s := range sites {
			tags = append(tags, s.SiteTag)
			auths = append(auths, s.RetrievalKeyword)
		}
		params.Set("site_tag", List(tags...))
		params.Set("authorization", List(auths...))
	}
	for _, kv := range [][2]string{
		{"account_id", site.AccountID},
		{"site_tag", site.SiteTag},
		{"authorization", site.RetrievalKeyword},
	} {
		if kv[1] == "" || params.Has(kv[0]) {
			continue
		}
		params.SetString(kv[0], kv[1])
	}

	prefix := "expire"
	if kind == TransactionReport {
		prefix = "transactions"
	}
	from := window.From
	if from.IsZero() {
		from = now
	}
	params.SetString(prefix+"_after", from.UTC().Format(ReportingTimeFormat))
	if !window.To.IsZero() {
		params.SetString(prefix+"_before", window.To.UTC().Format(ReportingTimeFormat))
	}
	return params
}
