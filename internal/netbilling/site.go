package netbilling

import (
	"fmt"
	"strings"
)

// SiteConfig holds the NETbilling credentials of one site tag.
type SiteConfig struct {
	AccountID        string
	SiteTag          string
	AccessKeyword    string
	RetrievalKeyword string
	IntegrityKey     string
}

// Validate checks the fields every stored site must carry.
func (s SiteConfig) Validate() error {
	switch {
	case strings.TrimSpace(s.AccountID) == "":
		return fmt.Errorf("account id is required")
	case strings.TrimSpace(s.SiteTag) == "":
		return fmt.Errorf("site tag is required")
	case strings.ContainsAny(s.SiteTag, ":/ "):
		return fmt.Errorf("site tag %q contains reserved characters", s.SiteTag)
	case strings.TrimSpace(s.AccessKeyword) == "":
		return fmt.Errorf("access keyword is required")
	case strings.TrimSpace(s.RetrievalKeyword) == "":
		return fmt.Errorf("retrieval keyword is required")
	}
	return nil
}

// AccountAndSitetag is the "account:site" form used by the hosted payment page.
func (s SiteConfig) AccountAndSitetag() string {
	return s.AccountID + ":" + s.SiteTag
}

const (
	// StatusActive is the flattened state of a live membership.
	StatusActive = "active"
	// StatusInactive is the flattened state of every other membership.
	StatusInactive = "expired"
)

// FlattenStatus maps a NETbilling member status to active/expired.
func FlattenStatus(status string) string {
	switch status {
	case "ACTIVE", "ACTIVE/R":
		return StatusActive
	default:
		return StatusInactive
	}
}
