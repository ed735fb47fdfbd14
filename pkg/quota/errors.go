package quota

import (
	"errors"
	"fmt"
)

// ErrQuotaExceeded signals that an upload cannot be accommodated even after
// deleting every existing content item. Upload handlers translate it to a
// 413 response carrying the cleanup report.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// PartialCleanupError is returned when an enforcement pass had to stop
// before usage dropped below the limit: either an individual deletion
// failed, or every deletable item is gone and usage is still over.
//
// Report always carries the work completed so far, so callers can surface
// "N files deleted, M bytes freed" even on failure.
type PartialCleanupError struct {
	// Report describes the deletions that did complete. Never nil.
	Report *CleanupReport

	// Cause is the deletion error that aborted the pass, or nil when the
	// pass ran out of items to delete.
	Cause error
}

func (e *PartialCleanupError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("cleanup aborted after %d deletions: %v", e.Report.DeletedCount, e.Cause)
	}
	return fmt.Sprintf("usage still over limit after deleting %d items", e.Report.DeletedCount)
}

func (e *PartialCleanupError) Unwrap() error {
	return e.Cause
}
