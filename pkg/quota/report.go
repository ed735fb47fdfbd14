package quota

import "github.com/signcast/signcast/internal/bytesize"

// DeletedFile identifies one content item removed during cleanup.
type DeletedFile struct {
	Filename  string
	SizeBytes int64
}

// SizeGB returns the file size in GiB, rounded to two decimals.
func (f DeletedFile) SizeGB() float64 {
	return bytesize.BytesToGiB(f.SizeBytes)
}

// CleanupReport describes one enforcement pass that deleted content.
// Byte fields are exact; GB accessors round only for display.
//
// PreviousUsageBytes - FreedBytes == CurrentUsageBytes always holds.
type CleanupReport struct {
	DeletedCount       int
	FreedBytes         int64
	PreviousUsageBytes int64
	CurrentUsageBytes  int64
	LimitBytes         int64

	// DeletedFiles lists removed items in deletion order (oldest first).
	DeletedFiles []DeletedFile
}

// StillOverLimit reports whether usage exceeds the limit even after the pass.
func (r *CleanupReport) StillOverLimit() bool {
	return r.CurrentUsageBytes > r.LimitBytes
}

// FreedGB returns the freed space in GiB, rounded to two decimals.
func (r *CleanupReport) FreedGB() float64 {
	return bytesize.BytesToGiB(r.FreedBytes)
}

// PreviousUsageGB returns the pre-cleanup usage in GiB, rounded to two decimals.
func (r *CleanupReport) PreviousUsageGB() float64 {
	return bytesize.BytesToGiB(r.PreviousUsageBytes)
}

// CurrentUsageGB returns the post-cleanup usage in GiB, rounded to two decimals.
func (r *CleanupReport) CurrentUsageGB() float64 {
	return bytesize.BytesToGiB(r.CurrentUsageBytes)
}

// LimitGB returns the effective limit in GiB, rounded to two decimals.
func (r *CleanupReport) LimitGB() float64 {
	return bytesize.BytesToGiB(r.LimitBytes)
}

// Headroom is the advisory answer to "would a file of this size fit".
type Headroom struct {
	// Fits is true when the file could be accommodated, possibly after
	// cleanup: incoming size does not exceed the tenant's limit.
	Fits bool

	// CleanupRequired is true when accepting the file would push usage
	// over the limit, so an enforcement pass would run.
	CleanupRequired bool

	// ShortfallBytes is how far the file overshoots the limit when it can
	// never fit. Zero when Fits.
	ShortfallBytes int64

	UsedBytes      int64
	LimitBytes     int64
	AvailableBytes int64
}
