package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/fr0stylo/nbgate/internal/app/ports"
	"github.com/fr0stylo/nbgate/internal/netbilling"
)

// ReportSource fetches parsed NETbilling reports.
type ReportSource interface {
	Report(ctx context.Context, kind netbilling.ReportKind, site netbilling.SiteConfig, sites []netbilling.SiteConfig, window netbilling.ReportWindow) (map[string]netbilling.Record, error)
}

// SyncResult summarises one member report sync.
type SyncResult struct {
	Members  int
	Recorded int
	Active   int
	Skipped  int
}

// ReportSyncService learns remote member ids from member reports so later
// lookups by remote id resolve to the right site.
type ReportSyncService struct {
	reports ReportSource
	remote  ports.RemoteMemberStore
	log     *slog.Logger
	now     func() time.Time
}

// NewReportSyncService constructs the report sync service.
func NewReportSyncService(reports ReportSource, remote ports.RemoteMemberStore, log *slog.Logger) *ReportSyncService {
	if log == nil {
		log = slog.Default()
	}
	return &ReportSyncService{reports: reports, remote: remote, log: log, now: time.Now}
}

// SyncMembers pulls the member report for site (and sites, when given) and
// records every member row whose site tag is one of the requested sites.
func (s *ReportSyncService) SyncMembers(ctx context.Context, site netbilling.SiteConfig, sites []netbilling.SiteConfig, window netbilling.ReportWindow) (SyncResult, error) {
	records, err := s.reports.Report(ctx, netbilling.MemberReport, site, sites, window)
	if err != nil {
		return SyncResult{}, fmt.Errorf("fetch member report: %w", err)
	}

	known := map[string]struct{}{site.SiteTag: {}}
	for _, other := range sites {
		known[other.SiteTag] = struct{}{}
	}

	now := s.now()
	result := SyncResult{Members: len(records)}
	rows := make([]ports.RemoteMember, 0, len(records))
	for remoteID, record := range records {
		tags := record.SiteTags()
		if len(tags) == 0 {
			tags = []string{site.SiteTag}
		}
		status := netbilling.FlattenStatus(record.Get(netbilling.ColumnMemberStatus))
		if status == netbilling.StatusActive {
			result.Active++
		}
		for _, tag := range tags {
			if _, ok := known[tag]; !ok {
				result.Skipped++
				continue
			}
			rows = append(rows, ports.RemoteMember{
				RemoteID: remoteID,
				SiteTag:  tag,
				Username: record.Get(netbilling.ColumnMemberUserName),
				Status:   status,
				SyncedAt: now,
			})
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].RemoteID == rows[j].RemoteID {
			return rows[i].SiteTag < rows[j].SiteTag
		}
		return rows[i].RemoteID < rows[j].RemoteID
	})

	if err := s.remote.RecordRemoteMembers(ctx, rows); err != nil {
		return SyncResult{}, fmt.Errorf("record remote members: %w", err)
	}
	result.Recorded = len(rows)
	s.log.InfoContext(ctx, "Member report synced",
		"site_tag", site.SiteTag,
		"members", result.Members,
		"recorded", result.Recorded,
		"active", result.Active,
		"skipped", result.Skipped,
	)
	return result, nil
}
