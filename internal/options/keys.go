package options

import "strings"

// Family selects one of the two transient naming families.
type Family int

const (
	// FamilyPlain is the per-site family ("_transient_*").
	FamilyPlain Family = iota
	// FamilyNetwork is the network-wide family ("_site_transient_*").
	FamilyNetwork
)

// Key prefixes for the two transient families and the scheduler row.
const (
	TransientPrefix            = "_transient_"
	TransientTimeoutPrefix     = "_transient_timeout_"
	SiteTransientPrefix        = "_site_transient_"
	SiteTransientTimeoutPrefix = "_site_transient_timeout_"

	// CronKey names the scheduler blob. It is large, platform-owned, and
	// excluded from orphan inference.
	CronKey = "cron"
)

// String returns the family name used in reports and logs.
func (f Family) String() string {
	if f == FamilyNetwork {
		return "network"
	}
	return "plain"
}

// TimeoutPrefix returns the timeout-row key prefix for the family.
func (f Family) TimeoutPrefix() string {
	if f == FamilyNetwork {
		return SiteTransientTimeoutPrefix
	}
	return TransientTimeoutPrefix
}

// ValuePrefix returns the value-row key prefix for the family.
func (f Family) ValuePrefix() string {
	if f == FamilyNetwork {
		return SiteTransientPrefix
	}
	return TransientPrefix
}

// Families lists both transient families in report order.
func Families() []Family {
	return []Family{FamilyPlain, FamilyNetwork}
}

// TimeoutToValueKey derives a transient value-row name from its timeout-row
// name by removing the "timeout_" infix. Names that are not timeout rows are
// returned unchanged.
func TimeoutToValueKey(timeoutName string) string {
	return strings.Replace(timeoutName, "timeout_", "", 1)
}

// OrphanExcludedPrefixes returns the key prefixes the orphan candidate query
// must skip: transient rows have their own scanner and would otherwise
// dominate the size-ordered candidate pool.
func OrphanExcludedPrefixes() []string {
	return []string{TransientPrefix, SiteTransientPrefix}
}
