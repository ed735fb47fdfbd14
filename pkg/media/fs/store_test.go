package fs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/signcast/signcast/pkg/media"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "media-fs-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	s, err := NewWithPath(tmpDir)
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("NewWithPath failed: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
		os.RemoveAll(tmpDir)
	})

	return s
}

func TestStore_PutAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	key := media.ContentKey("tenant-1", "content-1")
	data := []byte("fake mp4 bytes")

	written, err := s.Put(ctx, key, bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if written != int64(len(data)) {
		t.Errorf("Put returned %d bytes, want %d", written, len(data))
	}

	rc, err := s.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	defer rc.Close()

	read, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if string(read) != string(data) {
		t.Errorf("Get returned %q, want %q", read, data)
	}

	// Verify file exists on disk and no tmp file is left behind
	path := filepath.Join(s.BasePath(), "tenants", "tenant-1", "content-1")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("media file not found at %s", path)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind at %s.tmp", path)
	}
}

func TestStore_GetNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	_, err := s.Get(ctx, "tenants/tenant-1/nonexistent")
	if !errors.Is(err, media.ErrMediaNotFound) {
		t.Errorf("Get returned error %v, want %v", err, media.ErrMediaNotFound)
	}
}

func TestStore_PutFailedReader(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	key := media.ContentKey("tenant-1", "broken")
	r := io.MultiReader(strings.NewReader("partial"), &failingReader{})

	if _, err := s.Put(ctx, key, r); err == nil {
		t.Fatal("Put with failing reader succeeded")
	}

	// Neither the object nor its temp file should exist
	if _, err := s.Get(ctx, key); !errors.Is(err, media.ErrMediaNotFound) {
		t.Errorf("partial object visible after failed Put: %v", err)
	}
}

type failingReader struct{}

func (*failingReader) Read([]byte) (int, error) {
	return 0, errors.New("stream broken")
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	key := media.ContentKey("tenant-1", "content-1")
	if _, err := s.Put(ctx, key, strings.NewReader("data")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := s.Delete(ctx, key); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := s.Get(ctx, key); !errors.Is(err, media.ErrMediaNotFound) {
		t.Errorf("object still readable after delete")
	}

	// Deleting a missing key is not an error
	if err := s.Delete(ctx, key); err != nil {
		t.Errorf("Delete of missing key returned %v", err)
	}

	// Empty parent directories are cleaned up
	if _, err := os.Stat(filepath.Join(s.BasePath(), "tenants", "tenant-1")); !os.IsNotExist(err) {
		t.Errorf("empty tenant directory not removed")
	}
}

func TestStore_DeleteByPrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for _, id := range []string{"a", "b", "c"} {
		if _, err := s.Put(ctx, media.ContentKey("tenant-1", id), strings.NewReader("x")); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	if _, err := s.Put(ctx, media.ContentKey("tenant-2", "keep"), strings.NewReader("x")); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	if err := s.DeleteByPrefix(ctx, media.TenantPrefix("tenant-1")); err != nil {
		t.Fatalf("DeleteByPrefix failed: %v", err)
	}

	if _, err := s.Get(ctx, media.ContentKey("tenant-1", "a")); !errors.Is(err, media.ErrMediaNotFound) {
		t.Errorf("tenant-1 object survived prefix delete")
	}
	if _, err := s.Get(ctx, media.ContentKey("tenant-2", "keep")); err != nil {
		t.Errorf("tenant-2 object was deleted: %v", err)
	}

	// Deleting a missing prefix is not an error
	if err := s.DeleteByPrefix(ctx, media.TenantPrefix("tenant-9")); err != nil {
		t.Errorf("DeleteByPrefix of missing prefix returned %v", err)
	}
}

func TestStore_Closed(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := s.Put(ctx, "k", strings.NewReader("x")); !errors.Is(err, media.ErrStoreClosed) {
		t.Errorf("Put after close returned %v, want ErrStoreClosed", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, media.ErrStoreClosed) {
		t.Errorf("Get after close returned %v, want ErrStoreClosed", err)
	}
	if err := s.HealthCheck(ctx); !errors.Is(err, media.ErrStoreClosed) {
		t.Errorf("HealthCheck after close returned %v, want ErrStoreClosed", err)
	}
}
