package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	portmocks "github.com/fr0stylo/nbgate/internal/app/ports/mocks"
	"github.com/fr0stylo/nbgate/internal/netbilling"
)

type staticReports struct {
	records map[string]netbilling.Record
	err     error
	kind    netbilling.ReportKind
}

func (r *staticReports) Report(_ context.Context, kind netbilling.ReportKind, _ netbilling.SiteConfig, _ []netbilling.SiteConfig, _ netbilling.ReportWindow) (map[string]netbilling.Record, error) {
	r.kind = kind
	return r.records, r.err
}

func TestReportSyncService_RecordsKnownSitesOnly(t *testing.T) {
	records, err := netbilling.ParseReport(
		"MEMBER_ID,MEMBER_USER_NAME,MEMBER_STATUS,SITE_TAG\n"+
			"1,alice,ACTIVE/R,shop\n"+
			"1,alice,ACTIVE/R,foreign\n"+
			"2,bob,EXPIRED,shop\n",
		netbilling.MemberReport,
	)
	if err != nil {
		t.Fatalf("parse fixture: %v", err)
	}
	source := &staticReports{records: records}
	remote := portmocks.NewMockRemoteMemberStore(t)

	now := time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)
	svc := NewReportSyncService(source, remote, nil)
	svc.now = func() time.Time { return now }

	remote.EXPECT().RecordRemoteMembers(mock.Anything, []ports.RemoteMember{
		{RemoteID: "1", SiteTag: "shop", Username: "alice", Status: "active", SyncedAt: now},
		{RemoteID: "2", SiteTag: "shop", Username: "bob", Status: "expired", SyncedAt: now},
	}).Return(nil)

	result, err := svc.SyncMembers(context.Background(), shopSite, nil, netbilling.ReportWindow{})
	if err != nil {
		t.Fatalf("SyncMembers returned error: %v", err)
	}
	if source.kind != netbilling.MemberReport {
		t.Fatalf("expected member report, got %v", source.kind)
	}
	want := SyncResult{Members: 2, Recorded: 2, Active: 1, Skipped: 1}
	if result != want {
		t.Fatalf("unexpected result: got=%+v want=%+v", result, want)
	}
}

func TestReportSyncService_PropagatesFetchErrors(t *testing.T) {
	remote := portmocks.NewMockRemoteMemberStore(t)
	svc := NewReportSyncService(&staticReports{err: &netbilling.RemoteError{Code: "403"}}, remote, nil)

	_, err := svc.SyncMembers(context.Background(), shopSite, nil, netbilling.ReportWindow{})
	var remoteErr *netbilling.RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected wrapped RemoteError, got %v", err)
	}
}
