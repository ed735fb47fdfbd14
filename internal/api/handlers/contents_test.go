//go:build integration

package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/signcast/signcast/internal/api/auth"
	apiMiddleware "github.com/signcast/signcast/internal/api/middleware"
	"github.com/signcast/signcast/pkg/media"
	"github.com/signcast/signcast/pkg/media/memory"
	"github.com/signcast/signcast/pkg/quota"
	"github.com/signcast/signcast/pkg/signage/models"
	"github.com/signcast/signcast/pkg/signage/store"
)

const mib = int64(1) << 20

type contentTestEnv struct {
	store  *store.GORMStore
	blobs  *memory.Store
	engine *quota.Engine
	jwt    *auth.JWTService
	router chi.Router
}

func setupContentTest(t *testing.T) *contentTestEnv {
	t.Helper()

	s, err := store.New(&store.Config{
		Type:   store.DatabaseTypeSQLite,
		SQLite: store.SQLiteConfig{Path: ":memory:"},
	})
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	blobs := memory.New()
	engine := quota.NewEngine(s, s, blobs)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: "test-secret-key-that-is-at-least-32-characters-long",
		Issuer: "test",
	})
	if err != nil {
		t.Fatalf("failed to create JWT service: %v", err)
	}

	handler := NewContentHandler(s, blobs, engine, nil, 0)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.JWTAuth(jwtService))
		r.Get("/api/contents/storage-usage", handler.StorageUsage)
		r.Get("/api/contents/storage-info", handler.StorageInfo)
		r.Post("/api/contents", handler.Upload)
		r.Get("/api/contents", handler.List)
		r.Get("/api/contents/{id}", handler.Get)
		r.Delete("/api/contents/{id}", handler.Delete)
	})

	return &contentTestEnv{
		store:  s,
		blobs:  blobs,
		engine: engine,
		jwt:    jwtService,
		router: r,
	}
}

func (env *contentTestEnv) seedTenant(t *testing.T, storageGB int64) *models.Tenant {
	t.Helper()
	ctx := context.Background()

	pkg := &models.Package{
		Name:       fmt.Sprintf("pkg-%d", time.Now().UnixNano()),
		StorageGB:  storageGB,
		MaxDevices: 5,
		Active:     true,
	}
	if _, err := env.store.CreatePackage(ctx, pkg); err != nil {
		t.Fatalf("failed to seed package: %v", err)
	}

	tenant := &models.Tenant{
		Name:      "Acme Signage",
		Slug:      fmt.Sprintf("acme-%d", time.Now().UnixNano()),
		PackageID: pkg.ID,
		Active:    true,
	}
	id, err := env.store.CreateTenant(ctx, tenant)
	if err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}

	created, err := env.store.GetTenant(ctx, id)
	if err != nil {
		t.Fatalf("failed to fetch seeded tenant: %v", err)
	}
	return created
}

// seedContent creates a content row plus blob, backdated so eviction order
// is deterministic.
func (env *contentTestEnv) seedContent(t *testing.T, tenantID, filename string, size int64, age time.Duration) *models.Content {
	t.Helper()
	ctx := context.Background()

	key := "tenants/" + tenantID + "/" + filename
	if _, err := env.blobs.Put(ctx, key, bytes.NewReader(make([]byte, 16))); err != nil {
		t.Fatalf("failed to seed blob: %v", err)
	}

	content := &models.Content{
		TenantID:  tenantID,
		Filename:  filename,
		MediaKey:  key,
		SizeBytes: size,
		MIMEType:  "video/mp4",
		Kind:      models.KindVideo,
	}
	if _, err := env.store.CreateContent(ctx, content); err != nil {
		t.Fatalf("failed to seed content: %v", err)
	}

	if age > 0 {
		ts := time.Now().Add(-age)
		if err := env.store.DB().Model(content).Update("created_at", ts).Error; err != nil {
			t.Fatalf("failed to backdate content: %v", err)
		}
	}
	return content
}

func (env *contentTestEnv) tenantToken(t *testing.T, tenantID string) string {
	t.Helper()
	user := &models.User{
		ID:       "user-" + tenantID,
		Username: "user@" + tenantID,
		Role:     string(models.RoleTenant),
		TenantID: &tenantID,
	}
	pair, err := env.jwt.GenerateTokenPair(user)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return pair.AccessToken
}

func multipartBody(t *testing.T, filename string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write(payload); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}
	return &buf, writer.FormDataContentType()
}

func (env *contentTestEnv) do(req *http.Request, token string) *httptest.ResponseRecorder {
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)
	return rr
}

var errBlobBackend = errors.New("blob backend unavailable")

// flakyBlobStore wraps a media store so deletes start failing after a
// fixed number of successes, simulating a backend outage mid-enforcement.
type flakyBlobStore struct {
	media.Store
	allowed int
	deletes int
}

func (s *flakyBlobStore) Delete(ctx context.Context, key string) error {
	s.deletes++
	if s.deletes > s.allowed {
		return errBlobBackend
	}
	return s.Store.Delete(ctx, key)
}

// pinnedContentSource hides one filename from the eviction listing while
// its bytes still count toward usage, the way a row held by a concurrent
// request would behave.
type pinnedContentSource struct {
	store.Store
	pinned string
}

func (s *pinnedContentSource) ListContentByTenant(ctx context.Context, tenantID string) ([]*models.Content, error) {
	items, err := s.Store.ListContentByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	kept := items[:0]
	for _, item := range items {
		if item.Filename != s.pinned {
			kept = append(kept, item)
		}
	}
	return kept, nil
}

// uploadRouter mounts the upload route over a custom enforcement engine.
func (env *contentTestEnv) uploadRouter(engine *quota.Engine) {
	handler := NewContentHandler(env.store, env.blobs, engine, nil, 0)
	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(apiMiddleware.JWTAuth(env.jwt))
		r.Post("/api/contents", handler.Upload)
	})
	env.router = r
}

func TestContentUpload_UnderLimit(t *testing.T) {
	env := setupContentTest(t)
	tenant := env.seedTenant(t, 1)
	token := env.tenantToken(t, tenant.ID)

	payload := make([]byte, 4096)
	body, contentType := multipartBody(t, "promo.mp4", payload)

	req := httptest.NewRequest(http.MethodPost, "/api/contents", body)
	req.Header.Set("Content-Type", contentType)
	rr := env.do(req, token)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Content.Filename != "promo.mp4" {
		t.Errorf("expected filename promo.mp4, got %s", resp.Content.Filename)
	}
	if resp.Content.SizeBytes != int64(len(payload)) {
		t.Errorf("expected size %d, got %d", len(payload), resp.Content.SizeBytes)
	}
	if resp.StorageCleanup != nil {
		t.Errorf("expected no storageCleanup under limit, got %+v", resp.StorageCleanup)
	}
	if env.blobs.Len() != 1 {
		t.Errorf("expected 1 blob, got %d", env.blobs.Len())
	}
}

func TestContentUpload_LargerThanLimit(t *testing.T) {
	env := setupContentTest(t)
	tenant := env.seedTenant(t, 0) // zero-GB package: nothing can ever fit
	token := env.tenantToken(t, tenant.ID)

	body, contentType := multipartBody(t, "huge.mp4", make([]byte, 4096))
	req := httptest.NewRequest(http.MethodPost, "/api/contents", body)
	req.Header.Set("Content-Type", contentType)
	rr := env.do(req, token)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d", http.StatusRequestEntityTooLarge, rr.Code)
	}

	var resp QuotaExceededResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CleanupPerformed {
		t.Error("expected cleanupPerformed false for pre-flight rejection")
	}
	if resp.FilesDeleted != 0 {
		t.Errorf("expected filesDeleted 0, got %d", resp.FilesDeleted)
	}

	// No bytes written, no rows created
	if env.blobs.Len() != 0 {
		t.Errorf("expected no blobs, got %d", env.blobs.Len())
	}
	items, err := env.store.ListContentByTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("failed to list content: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no content rows, got %d", len(items))
	}
}

func TestContentUpload_TriggersCleanup(t *testing.T) {
	env := setupContentTest(t)
	tenant := env.seedTenant(t, 1)
	token := env.tenantToken(t, tenant.ID)

	// Fill the 1 GiB limit almost completely with three aged files.
	limit := tenant.StorageLimitBytes()
	env.seedContent(t, tenant.ID, "oldest.mp4", limit/3, 3*time.Hour)
	env.seedContent(t, tenant.ID, "middle.mp4", limit/3, 2*time.Hour)
	env.seedContent(t, tenant.ID, "newest.mp4", limit/3, time.Hour)

	// The upload itself is small but pushes usage over the limit.
	payload := make([]byte, mib)
	body, contentType := multipartBody(t, "fresh.mp4", payload)
	req := httptest.NewRequest(http.MethodPost, "/api/contents", body)
	req.Header.Set("Content-Type", contentType)
	rr := env.do(req, token)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	var resp UploadResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.StorageCleanup == nil {
		t.Fatal("expected storageCleanup in response")
	}
	if resp.StorageCleanup.DeletedCount < 1 {
		t.Errorf("expected at least one deleted file, got %d", resp.StorageCleanup.DeletedCount)
	}
	if resp.StorageCleanup.DeletedFiles[0].Filename != "oldest.mp4" {
		t.Errorf("expected oldest.mp4 evicted first, got %s", resp.StorageCleanup.DeletedFiles[0].Filename)
	}

	// Usage is back under the limit and the fresh upload survived.
	used, err := env.store.SumContentSizeByTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("failed to sum usage: %v", err)
	}
	if used > limit {
		t.Errorf("usage %d still over limit %d", used, limit)
	}

	items, _ := env.store.ListContentByTenant(context.Background(), tenant.ID)
	found := false
	for _, item := range items {
		if item.Filename == "fresh.mp4" {
			found = true
		}
		if item.Filename == "oldest.mp4" {
			t.Error("oldest.mp4 should have been evicted")
		}
	}
	if !found {
		t.Error("fresh.mp4 should have been retained")
	}
}

func TestContentUpload_RejectedAfterExhaustedCleanup(t *testing.T) {
	env := setupContentTest(t)
	tenant := env.seedTenant(t, 1)
	token := env.tenantToken(t, tenant.ID)

	// Usage is already over the limit and the bulk of it cannot be
	// evicted, so cleanup runs out of victims with usage still high.
	limit := tenant.StorageLimitBytes()
	env.seedContent(t, tenant.ID, "locked.mp4", limit+mib, 3*time.Hour)

	contents := &pinnedContentSource{Store: env.store, pinned: "locked.mp4"}
	env.uploadRouter(quota.NewEngine(env.store, contents, env.blobs))

	usedBefore, err := env.store.SumContentSizeByTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("failed to sum usage: %v", err)
	}

	body, contentType := multipartBody(t, "fresh.mp4", make([]byte, mib))
	req := httptest.NewRequest(http.MethodPost, "/api/contents", body)
	req.Header.Set("Content-Type", contentType)
	rr := env.do(req, token)

	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected status %d, got %d: %s", http.StatusRequestEntityTooLarge, rr.Code, rr.Body.String())
	}

	var resp QuotaExceededResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.CleanupPerformed {
		t.Error("expected cleanupPerformed true after an inline cleanup attempt")
	}
	if resp.FilesDeleted < 1 {
		t.Errorf("expected at least one deletion, got %d", resp.FilesDeleted)
	}

	// The rejected upload was not retained: rows, blobs and usage are
	// back to their pre-upload state.
	usedAfter, err := env.store.SumContentSizeByTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("failed to sum usage: %v", err)
	}
	if usedAfter != usedBefore {
		t.Errorf("usage changed from %d to %d, want unchanged", usedBefore, usedAfter)
	}
	items, err := env.store.ListContentByTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("failed to list content: %v", err)
	}
	for _, item := range items {
		if item.Filename == "fresh.mp4" {
			t.Error("fresh.mp4 should not have been retained")
		}
	}
	if env.blobs.Len() != 1 {
		t.Errorf("expected only the seeded blob, got %d", env.blobs.Len())
	}
}

func TestContentUpload_CleanupDeletionFailureFailsRequest(t *testing.T) {
	env := setupContentTest(t)
	tenant := env.seedTenant(t, 1)
	token := env.tenantToken(t, tenant.ID)

	limit := tenant.StorageLimitBytes()
	env.seedContent(t, tenant.ID, "oldest.mp4", limit/2, 3*time.Hour)
	env.seedContent(t, tenant.ID, "newest.mp4", limit/2, 2*time.Hour)

	// Enforcement hits a blob store whose deletes fail outright.
	broken := &flakyBlobStore{Store: env.blobs}
	env.uploadRouter(quota.NewEngine(env.store, env.store, broken))

	body, contentType := multipartBody(t, "fresh.mp4", make([]byte, mib))
	req := httptest.NewRequest(http.MethodPost, "/api/contents", body)
	req.Header.Set("Content-Type", contentType)
	rr := env.do(req, token)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d: %s", http.StatusInternalServerError, rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != ContentTypeProblemJSON {
		t.Errorf("expected Content-Type %s, got %s", ContentTypeProblemJSON, ct)
	}

	var resp CleanupFailureProblem
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Status != http.StatusInternalServerError {
		t.Errorf("expected problem status %d, got %d", http.StatusInternalServerError, resp.Status)
	}
	if resp.StorageCleanup == nil {
		t.Fatal("expected the partial cleanup report in the response")
	}
	if !resp.StorageCleanup.StillOverLimit {
		t.Error("expected stillOverLimit true in the partial report")
	}

	// Upload rolled back, seeded content untouched.
	used, err := env.store.SumContentSizeByTenant(context.Background(), tenant.ID)
	if err != nil {
		t.Fatalf("failed to sum usage: %v", err)
	}
	if used != limit {
		t.Errorf("expected usage %d after rollback, got %d", limit, used)
	}
	if env.blobs.Len() != 2 {
		t.Errorf("expected the 2 seeded blobs, got %d", env.blobs.Len())
	}
}

func TestStorageUsage_Shape(t *testing.T) {
	env := setupContentTest(t)
	tenant := env.seedTenant(t, 2)
	token := env.tenantToken(t, tenant.ID)

	env.seedContent(t, tenant.ID, "a.mp4", 512*mib, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/contents/storage-usage", nil)
	rr := env.do(req, token)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var raw map[string]map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	storage, ok := raw["storage"]
	if !ok {
		t.Fatal("expected top-level storage object")
	}
	for _, field := range []string{"usedBytes", "usedGB", "limitGB", "availableGB", "usagePercentage", "isOverLimit"} {
		if _, ok := storage[field]; !ok {
			t.Errorf("expected field %q in storage object", field)
		}
	}
	if got := storage["usedBytes"].(float64); int64(got) != 512*mib {
		t.Errorf("expected usedBytes %d, got %v", 512*mib, got)
	}
	if got := storage["usedGB"].(float64); got != 0.5 {
		t.Errorf("expected usedGB 0.5, got %v", got)
	}
	if got := storage["limitGB"].(float64); got != 2.0 {
		t.Errorf("expected limitGB 2, got %v", got)
	}
	if storage["isOverLimit"].(bool) {
		t.Error("expected isOverLimit false")
	}
}

func TestStorageInfo_FallbackShape(t *testing.T) {
	env := setupContentTest(t)
	tenant := env.seedTenant(t, 1)
	token := env.tenantToken(t, tenant.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/contents/storage-info", nil)
	rr := env.do(req, token)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var raw map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	for _, field := range []string{"usedStorage", "storageLimit", "usagePercentage"} {
		if _, ok := raw[field]; !ok {
			t.Errorf("expected field %q in response", field)
		}
	}
}

func TestContentDelete(t *testing.T) {
	env := setupContentTest(t)
	tenant := env.seedTenant(t, 1)
	token := env.tenantToken(t, tenant.ID)

	content := env.seedContent(t, tenant.ID, "gone.mp4", mib, time.Hour)

	req := httptest.NewRequest(http.MethodDelete, "/api/contents/"+content.ID, nil)
	rr := env.do(req, token)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, rr.Code)
	}
	if env.blobs.Len() != 0 {
		t.Errorf("expected blob removed, %d left", env.blobs.Len())
	}

	req = httptest.NewRequest(http.MethodDelete, "/api/contents/"+content.ID, nil)
	rr = env.do(req, token)
	if rr.Code != http.StatusNotFound {
		t.Errorf("expected status %d on second delete, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestContentAccess_OtherTenantForbidden(t *testing.T) {
	env := setupContentTest(t)
	owner := env.seedTenant(t, 1)
	intruder := env.seedTenant(t, 1)

	content := env.seedContent(t, owner.ID, "private.mp4", mib, time.Hour)

	req := httptest.NewRequest(http.MethodGet, "/api/contents/"+content.ID, nil)
	rr := env.do(req, env.tenantToken(t, intruder.ID))

	if rr.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rr.Code)
	}
}
