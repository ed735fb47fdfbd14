package quota

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/signcast/signcast/pkg/media"
	"github.com/signcast/signcast/pkg/media/memory"
	"github.com/signcast/signcast/pkg/signage/models"
)

// fakeSource is an in-memory TenantSource + ContentSource with the same
// eviction ordering the real store produces.
type fakeSource struct {
	mu       sync.Mutex
	tenants  map[string]*models.Tenant
	contents map[string]*models.Content

	// failDelete makes DeleteContent fail for the given content id.
	failDelete string
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		tenants:  make(map[string]*models.Tenant),
		contents: make(map[string]*models.Content),
	}
}

func (f *fakeSource) GetTenant(ctx context.Context, id string) (*models.Tenant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	tenant, ok := f.tenants[id]
	if !ok {
		return nil, models.ErrTenantNotFound
	}
	return tenant, nil
}

func (f *fakeSource) ListContentByTenant(ctx context.Context, tenantID string) ([]*models.Content, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var items []*models.Content
	for _, c := range f.contents {
		if c.TenantID == tenantID {
			items = append(items, c)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
	return items, nil
}

func (f *fakeSource) SumContentSizeByTenant(ctx context.Context, tenantID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var total int64
	for _, c := range f.contents {
		if c.TenantID == tenantID {
			total += c.SizeBytes
		}
	}
	return total, nil
}

func (f *fakeSource) DeleteContent(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if id == f.failDelete {
		return errors.New("row delete failed")
	}
	if _, ok := f.contents[id]; !ok {
		return models.ErrContentNotFound
	}
	delete(f.contents, id)
	return nil
}

// addTenant registers a tenant with the given limit in GiB-denominated
// package storage.
func (f *fakeSource) addTenant(id string, storageGB int64) {
	f.tenants[id] = &models.Tenant{
		ID:      id,
		Slug:    id,
		Package: models.Package{StorageGB: storageGB},
	}
}

// addContent registers a content row and returns its media key.
func (f *fakeSource) addContent(id, tenantID string, size int64, createdAt time.Time) string {
	key := media.ContentKey(tenantID, id)
	f.contents[id] = &models.Content{
		ID:        id,
		TenantID:  tenantID,
		Filename:  id + ".mp4",
		MediaKey:  key,
		SizeBytes: size,
		CreatedAt: createdAt,
	}
	return key
}

func newTestEngine(src *fakeSource) (*Engine, *memory.Store) {
	blobs := memory.New()
	return NewEngine(src, src, blobs), blobs
}

func seedBlob(t *testing.T, blobs *memory.Store, key string, size int64) {
	t.Helper()
	if _, err := blobs.Put(context.Background(), key, strings.NewReader(strings.Repeat("x", int(size)))); err != nil {
		t.Fatalf("failed to seed blob: %v", err)
	}
}

const gib = int64(1) << 30

func TestEnforce_UnderLimit(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.addTenant("t1", 1)
	src.addContent("c1", "t1", 100*1024*1024, time.Now())

	engine, _ := newTestEngine(src)

	report, err := engine.Enforce(ctx, "t1")
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if report != nil {
		t.Errorf("Enforce() report = %+v, want nil", report)
	}
}

func TestEnforce_ExactlyAtLimit(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.addTenant("t1", 1)
	src.addContent("c1", "t1", gib, time.Now())

	engine, _ := newTestEngine(src)

	report, err := engine.Enforce(ctx, "t1")
	if err != nil || report != nil {
		t.Errorf("Enforce() at exact limit = %+v, %v; want nil, nil", report, err)
	}
}

func TestEnforce_DeletesOldestFirst(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.addTenant("t1", 1)

	// Three 400 MiB files: usage 1200 MiB against a 1024 MiB limit.
	// Deleting the single oldest file brings usage to 800 MiB.
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	size := int64(400) * 1024 * 1024
	engine, blobs := newTestEngine(src)
	for i := 0; i < 3; i++ {
		key := src.addContent(fmt.Sprintf("c%d", i), "t1", size, base.Add(time.Duration(i)*time.Hour))
		seedBlob(t, blobs, key, 8)
	}

	report, err := engine.Enforce(ctx, "t1")
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	if report == nil {
		t.Fatal("Enforce() returned nil report while over limit")
	}

	if report.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", report.DeletedCount)
	}
	if report.FreedBytes != size {
		t.Errorf("FreedBytes = %d, want %d", report.FreedBytes, size)
	}
	if report.PreviousUsageBytes != 3*size {
		t.Errorf("PreviousUsageBytes = %d, want %d", report.PreviousUsageBytes, 3*size)
	}
	if report.CurrentUsageBytes != 2*size {
		t.Errorf("CurrentUsageBytes = %d, want %d", report.CurrentUsageBytes, 2*size)
	}
	if got := report.PreviousUsageBytes - report.FreedBytes; got != report.CurrentUsageBytes {
		t.Errorf("usage invariant broken: %d - %d != %d",
			report.PreviousUsageBytes, report.FreedBytes, report.CurrentUsageBytes)
	}
	if len(report.DeletedFiles) != 1 || report.DeletedFiles[0].Filename != "c0.mp4" {
		t.Errorf("DeletedFiles = %+v, want oldest file c0.mp4", report.DeletedFiles)
	}
	if report.StillOverLimit() {
		t.Error("StillOverLimit() = true after successful cleanup")
	}

	// Blob of the victim is gone, the survivors remain
	if _, err := blobs.Get(ctx, media.ContentKey("t1", "c0")); !errors.Is(err, media.ErrMediaNotFound) {
		t.Errorf("victim blob still present: %v", err)
	}
	if _, err := blobs.Get(ctx, media.ContentKey("t1", "c2")); err != nil {
		t.Errorf("surviving blob deleted: %v", err)
	}

	// Second run against the now-compliant state is a no-op
	again, err := engine.Enforce(ctx, "t1")
	if err != nil || again != nil {
		t.Errorf("second Enforce() = %+v, %v; want nil, nil", again, err)
	}
}

func TestEnforce_TieBreakByID(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.addTenant("t1", 0)

	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	engine, blobs := newTestEngine(src)
	for _, id := range []string{"b", "a", "c"} {
		key := src.addContent(id, "t1", 10, ts)
		seedBlob(t, blobs, key, 1)
	}

	// Limit 0: everything is deleted; order must be a, b, c.
	report, err := engine.Enforce(ctx, "t1")
	if err != nil {
		t.Fatalf("Enforce() error = %v", err)
	}
	want := []string{"a.mp4", "b.mp4", "c.mp4"}
	if len(report.DeletedFiles) != len(want) {
		t.Fatalf("DeletedFiles = %+v, want %d entries", report.DeletedFiles, len(want))
	}
	for i, f := range report.DeletedFiles {
		if f.Filename != want[i] {
			t.Errorf("DeletedFiles[%d] = %q, want %q", i, f.Filename, want[i])
		}
	}
}

func TestEnforce_TenantNotFound(t *testing.T) {
	engine, _ := newTestEngine(newFakeSource())

	_, err := engine.Enforce(context.Background(), "missing")
	if !errors.Is(err, models.ErrTenantNotFound) {
		t.Errorf("Enforce() error = %v, want ErrTenantNotFound", err)
	}
}

func TestEnforce_DeletionFailureAborts(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.addTenant("t1", 0)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	engine, blobs := newTestEngine(src)
	for i := 0; i < 3; i++ {
		key := src.addContent(fmt.Sprintf("c%d", i), "t1", 10, base.Add(time.Duration(i)*time.Minute))
		seedBlob(t, blobs, key, 1)
	}
	src.failDelete = "c1"

	_, err := engine.Enforce(ctx, "t1")

	var partial *PartialCleanupError
	if !errors.As(err, &partial) {
		t.Fatalf("Enforce() error = %v, want *PartialCleanupError", err)
	}
	if partial.Cause == nil {
		t.Error("Cause = nil, want the deletion error")
	}
	if partial.Report.DeletedCount != 1 {
		t.Errorf("partial DeletedCount = %d, want 1 (only c0 deleted)", partial.Report.DeletedCount)
	}
	if got := partial.Report.PreviousUsageBytes - partial.Report.FreedBytes; got != partial.Report.CurrentUsageBytes {
		t.Error("usage invariant broken in partial report")
	}

	// c2 must not have been touched: the pass aborts, it does not skip
	if _, ok := src.contents["c2"]; !ok {
		t.Error("pass continued past the failed deletion")
	}
}

func TestEnforce_StillOverAfterMaximalCleanup(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()

	// Misconfigured package: negative limit can never be satisfied, even
	// after deleting every content item.
	src.addTenant("t1", -1)

	engine, blobs := newTestEngine(src)
	key := src.addContent("c1", "t1", 10, time.Now())
	seedBlob(t, blobs, key, 1)

	_, err := engine.Enforce(ctx, "t1")

	var partial *PartialCleanupError
	if !errors.As(err, &partial) {
		t.Fatalf("Enforce() error = %v, want *PartialCleanupError", err)
	}
	if partial.Cause != nil {
		t.Errorf("Cause = %v, want nil for exhausted cleanup", partial.Cause)
	}
	if partial.Report.DeletedCount != 1 {
		t.Errorf("DeletedCount = %d, want 1", partial.Report.DeletedCount)
	}
	if !partial.Report.StillOverLimit() {
		t.Error("StillOverLimit() = false on an exhausted pass")
	}
	if got := partial.Report.PreviousUsageBytes - partial.Report.FreedBytes; got != partial.Report.CurrentUsageBytes {
		t.Error("usage invariant broken in exhausted report")
	}
}

func TestEnforce_ReportGBHelpers(t *testing.T) {
	report := &CleanupReport{
		DeletedCount:       2,
		FreedBytes:         gib + gib/2,
		PreviousUsageBytes: 3 * gib,
		CurrentUsageBytes:  3*gib - (gib + gib/2),
		LimitBytes:         2 * gib,
	}

	if got := report.FreedGB(); got != 1.5 {
		t.Errorf("FreedGB() = %v, want 1.5", got)
	}
	if got := report.PreviousUsageGB(); got != 3.0 {
		t.Errorf("PreviousUsageGB() = %v, want 3", got)
	}
	if got := report.LimitGB(); got != 2.0 {
		t.Errorf("LimitGB() = %v, want 2", got)
	}
}

func TestCheckHeadroom(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.addTenant("t1", 1)
	src.addContent("c1", "t1", 300*1024*1024, time.Now())

	engine, _ := newTestEngine(src)

	t.Run("fits without cleanup", func(t *testing.T) {
		h, err := engine.CheckHeadroom(ctx, "t1", 50*1024*1024)
		if err != nil {
			t.Fatalf("CheckHeadroom() error = %v", err)
		}
		if !h.Fits || h.CleanupRequired {
			t.Errorf("Headroom = %+v, want fits without cleanup", h)
		}
		if h.AvailableBytes != gib-300*1024*1024 {
			t.Errorf("AvailableBytes = %d", h.AvailableBytes)
		}
	})

	t.Run("fits after cleanup", func(t *testing.T) {
		h, err := engine.CheckHeadroom(ctx, "t1", 800*1024*1024)
		if err != nil {
			t.Fatalf("CheckHeadroom() error = %v", err)
		}
		if !h.Fits {
			t.Error("Fits = false for a file smaller than the limit")
		}
		if !h.CleanupRequired {
			t.Error("CleanupRequired = false for an upload that overflows current usage")
		}
	})

	t.Run("can never fit", func(t *testing.T) {
		h, err := engine.CheckHeadroom(ctx, "t1", 2*gib)
		if err != nil {
			t.Fatalf("CheckHeadroom() error = %v", err)
		}
		if h.Fits {
			t.Error("Fits = true for a file larger than the whole limit")
		}
		if h.ShortfallBytes != gib {
			t.Errorf("ShortfallBytes = %d, want %d", h.ShortfallBytes, gib)
		}
	})

	t.Run("does not mutate", func(t *testing.T) {
		if _, ok := src.contents["c1"]; !ok {
			t.Error("CheckHeadroom deleted content")
		}
	})

	t.Run("unknown tenant", func(t *testing.T) {
		_, err := engine.CheckHeadroom(ctx, "missing", 1)
		if !errors.Is(err, models.ErrTenantNotFound) {
			t.Errorf("error = %v, want ErrTenantNotFound", err)
		}
	})
}

// recorderSpy counts instrumentation callbacks.
type recorderSpy struct {
	mu         sync.Mutex
	runs       int
	deleted    int
	bytesFreed int64
	rejections int
}

func (r *recorderSpy) CleanupRun(filesDeleted int, bytesFreed int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs++
	r.deleted += filesDeleted
	r.bytesFreed += bytesFreed
}

func (r *recorderSpy) UploadRejected() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rejections++
}

func TestEnforce_Recorder(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource()
	src.addTenant("t1", 0)

	blobs := memory.New()
	spy := &recorderSpy{}
	engine := NewEngine(src, src, blobs, WithRecorder(spy))

	key := src.addContent("c1", "t1", 10, time.Now())
	seedBlob(t, blobs, key, 1)

	if _, err := engine.Enforce(ctx, "t1"); err != nil {
		// Limit 0 with all content deleted: usage 0 <= 0, full success
		t.Fatalf("Enforce() error = %v", err)
	}

	if spy.runs != 1 || spy.deleted != 1 || spy.bytesFreed != 10 {
		t.Errorf("recorder saw runs=%d deleted=%d freed=%d", spy.runs, spy.deleted, spy.bytesFreed)
	}

	engine.RejectUpload()
	if spy.rejections != 1 {
		t.Errorf("rejections = %d, want 1", spy.rejections)
	}
}
