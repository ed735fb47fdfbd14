package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/signcast/signcast/pkg/quota"
)

// DeletedFileView is one evicted file in a cleanup report, sized in GB for display.
type DeletedFileView struct {
	Filename string  `json:"filename"`
	SizeGB   float64 `json:"sizeGB"`
}

// StorageCleanupView is the wire representation of a quota cleanup report.
// It is embedded in upload and package-change responses whenever enforcement
// deleted content.
type StorageCleanupView struct {
	DeletedCount    int               `json:"deletedCount"`
	FreedSpaceGB    float64           `json:"freedSpaceGB"`
	PreviousUsageGB float64           `json:"previousUsageGB"`
	CurrentUsageGB  float64           `json:"currentUsageGB"`
	LimitGB         float64           `json:"limitGB"`
	DeletedFiles    []DeletedFileView `json:"deletedFiles"`
	StillOverLimit  bool              `json:"stillOverLimit,omitempty"`
}

// cleanupToView converts an engine cleanup report to its wire shape.
// Returns nil when no cleanup ran.
func cleanupToView(report *quota.CleanupReport) *StorageCleanupView {
	if report == nil {
		return nil
	}

	files := make([]DeletedFileView, 0, len(report.DeletedFiles))
	for _, f := range report.DeletedFiles {
		files = append(files, DeletedFileView{
			Filename: f.Filename,
			SizeGB:   f.SizeGB(),
		})
	}

	return &StorageCleanupView{
		DeletedCount:    report.DeletedCount,
		FreedSpaceGB:    report.FreedGB(),
		PreviousUsageGB: report.PreviousUsageGB(),
		CurrentUsageGB:  report.CurrentUsageGB(),
		LimitGB:         report.LimitGB(),
		DeletedFiles:    files,
		StillOverLimit:  report.StillOverLimit(),
	}
}

// CleanupFailureProblem is the error body returned when an enforcement
// pass aborted on a deletion error. The partial report is embedded so
// callers can see what was already freed before the failure.
type CleanupFailureProblem struct {
	Problem
	StorageCleanup *StorageCleanupView `json:"storageCleanup,omitempty"`
}

// CleanupFailed writes a 500 problem response for an enforcement pass
// that stopped mid-way on a deletion error. The operation that triggered
// enforcement must not be reported as a success.
func CleanupFailed(w http.ResponseWriter, report *quota.CleanupReport) {
	body := &CleanupFailureProblem{
		Problem: Problem{
			Type:   "about:blank",
			Title:  "Storage Cleanup Failed",
			Status: http.StatusInternalServerError,
			Detail: "Storage cleanup was aborted by a deletion error",
		},
		StorageCleanup: cleanupToView(report),
	}

	w.Header().Set("Content-Type", ContentTypeProblemJSON)
	w.WriteHeader(http.StatusInternalServerError)
	_ = json.NewEncoder(w).Encode(body)
}

// QuotaExceededResponse is the 413 body returned when an upload cannot be
// retained even after cleanup.
type QuotaExceededResponse struct {
	Error            string  `json:"error"`
	CleanupPerformed bool    `json:"cleanupPerformed"`
	FilesDeleted     int     `json:"filesDeleted"`
	FreedSpace       float64 `json:"freedSpace"`
}
