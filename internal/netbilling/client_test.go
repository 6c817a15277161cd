package netbilling

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestClientMemberUpdatePostsFormAndDecodesReply(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/gw/native/mupdate1.1", r.URL.Path)
		require.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		require.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		form, err := url.ParseQuery(string(raw))
		require.NoError(t, err)
		require.Equal(t, "123456789012:shop", form.Get("C_ACCOUNT"))
		require.Equal(t, "alice", form.Get("C_MEMBER_LOGIN"))

		w.Header().Set("Content-Type", "application/x-www-form-urlencoded")
		_, _ = io.WriteString(w, "MEMBER_ID=42&MEMBER_STATUS=ACTIVE\n")
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL + "/"}, nil)
	reply, err := client.MemberUpdate(context.Background(), testSite, MemberIdentifier{Login: "alice"}, "", nil)
	require.NoError(t, err)
	require.Equal(t, "42", field(reply, "MEMBER_ID"))
	require.Equal(t, "ACTIVE", field(reply, "MEMBER_STATUS"))
}

func TestClientReportParsesCSV(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gw/reports/member1.5", r.URL.Path)
		require.NoError(t, r.ParseForm())
		require.Equal(t, "rk", r.PostForm.Get("authorization"))
		require.NotEmpty(t, r.PostForm.Get("expire_after"))
		w.Header().Set("Content-Type", "text/csv")
		_, _ = io.WriteString(w, "MEMBER_ID,MEMBER_USER_NAME,SITE_TAG\n1,alice,shop\n1,alice,other\n")
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, nil)
	records, err := client.Report(context.Background(), MemberReport, testSite, nil, ReportWindow{})
	require.NoError(t, err)
	require.Equal(t, []string{"shop", "other"}, records["1"].SiteTags())
}

func TestClientPlainTextBodyIsRemoteError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=iso-8859-1")
		_, _ = io.WriteString(w, "403 Invalid authorization for site_tag shop")
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, nil)
	_, err := client.Report(context.Background(), TransactionReport, testSite, nil, ReportWindow{})
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	require.Equal(t, "403", remote.Code)
	require.Equal(t, "Invalid authorization for site_tag shop", remote.Message)
}

func TestClientRetryAfterIsRateLimited(t *testing.T) {
	t.Parallel()

	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Header().Set("Retry-After", "120")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = io.WriteString(w, "busy")
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL}, nil)
	_, err := client.MemberUpdate(context.Background(), testSite, MemberIdentifier{ID: "1"}, "GET", nil)
	var limited *RateLimitedError
	require.True(t, errors.As(err, &limited))
	require.Equal(t, 2*time.Minute, limited.RetryAfter)
	require.Equal(t, "busy", limited.Message)
	require.Equal(t, 1, hits)
}

func TestClientHonoursTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	client := NewClient(ClientConfig{BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, nil)
	_, err := client.MemberUpdate(context.Background(), testSite, MemberIdentifier{ID: "1"}, "", nil)
	require.Error(t, err)
}

func TestClassifyResponse(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

	require.NoError(t, classifyResponse(http.StatusOK, http.Header{"Content-Type": {"text/csv"}}, "a,b", now))

	err := classifyResponse(http.StatusBadGateway, http.Header{}, "", now)
	var remote *RemoteError
	require.True(t, errors.As(err, &remote))
	require.Equal(t, "502", remote.Code)

	header := http.Header{"Retry-After": {now.Add(30 * time.Second).Format(http.TimeFormat)}}
	err = classifyResponse(http.StatusOK, header, "", now)
	var limited *RateLimitedError
	require.True(t, errors.As(err, &limited))
	require.Equal(t, 30*time.Second, limited.RetryAfter)

	err = classifyResponse(http.StatusOK, http.Header{"Content-Type": {"text/plain"}}, "ERR", now)
	require.True(t, errors.As(err, &remote))
	require.Equal(t, "ERR", remote.Code)
	require.Empty(t, remote.Message)
}
