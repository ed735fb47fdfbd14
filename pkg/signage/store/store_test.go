//go:build integration

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/signcast/signcast/pkg/signage/models"
)

// createTestStore creates an in-memory SQLite store for testing.
func createTestStore(t *testing.T) *GORMStore {
	t.Helper()
	store, err := New(&Config{
		Type: DatabaseTypeSQLite,
		SQLite: SQLiteConfig{
			Path: ":memory:",
		},
	})
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seedPackage creates a package with the given storage quota.
func seedPackage(t *testing.T, s *GORMStore, name string, storageGB int64, maxDevices int) *models.Package {
	t.Helper()
	pkg := &models.Package{
		Name:       name,
		StorageGB:  storageGB,
		MaxDevices: maxDevices,
		Active:     true,
	}
	if _, err := s.CreatePackage(context.Background(), pkg); err != nil {
		t.Fatalf("failed to seed package: %v", err)
	}
	return pkg
}

// seedTenant creates a tenant on the given package.
func seedTenant(t *testing.T, s *GORMStore, slug string, pkg *models.Package) *models.Tenant {
	t.Helper()
	tenant := &models.Tenant{
		Name:      slug,
		Slug:      slug,
		PackageID: pkg.ID,
		Active:    true,
	}
	if _, err := s.CreateTenant(context.Background(), tenant); err != nil {
		t.Fatalf("failed to seed tenant: %v", err)
	}
	return tenant
}

func TestNew(t *testing.T) {
	t.Run("default config uses sqlite", func(t *testing.T) {
		config := &Config{}
		config.ApplyDefaults()

		if config.Type != DatabaseTypeSQLite {
			t.Errorf("expected SQLite, got %s", config.Type)
		}
	})

	t.Run("invalid config returns error", func(t *testing.T) {
		_, err := New(&Config{Type: "invalid"})
		if err == nil {
			t.Error("expected error for invalid config")
		}
	})

	t.Run("creates in-memory store", func(t *testing.T) {
		store := createTestStore(t)
		if err := store.Healthcheck(context.Background()); err != nil {
			t.Errorf("healthcheck failed: %v", err)
		}
	})
}

func TestTenantOperations(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	basic := seedPackage(t, s, "basic", 1, 5)
	pro := seedPackage(t, s, "pro", 10, 50)

	t.Run("create and get", func(t *testing.T) {
		tenant := seedTenant(t, s, "acme", basic)

		got, err := s.GetTenant(ctx, tenant.ID)
		if err != nil {
			t.Fatalf("GetTenant() error = %v", err)
		}
		if got.Slug != "acme" {
			t.Errorf("slug = %q, want %q", got.Slug, "acme")
		}
		if got.Package.Name != "basic" {
			t.Errorf("package not preloaded: %+v", got.Package)
		}
		if got.StorageLimitBytes() != 1073741824 {
			t.Errorf("StorageLimitBytes() = %d, want 1 GiB", got.StorageLimitBytes())
		}
	})

	t.Run("duplicate slug", func(t *testing.T) {
		_, err := s.CreateTenant(ctx, &models.Tenant{Name: "other", Slug: "acme", PackageID: basic.ID})
		if !errors.Is(err, models.ErrDuplicateTenant) {
			t.Errorf("error = %v, want ErrDuplicateTenant", err)
		}
	})

	t.Run("create with missing package", func(t *testing.T) {
		_, err := s.CreateTenant(ctx, &models.Tenant{Name: "x", Slug: "x", PackageID: "nope"})
		if !errors.Is(err, models.ErrPackageNotFound) {
			t.Errorf("error = %v, want ErrPackageNotFound", err)
		}
	})

	t.Run("set package", func(t *testing.T) {
		tenant, err := s.GetTenantBySlug(ctx, "acme")
		if err != nil {
			t.Fatal(err)
		}

		if err := s.SetTenantPackage(ctx, tenant.ID, pro.ID); err != nil {
			t.Fatalf("SetTenantPackage() error = %v", err)
		}

		got, err := s.GetTenant(ctx, tenant.ID)
		if err != nil {
			t.Fatal(err)
		}
		if got.Package.Name != "pro" {
			t.Errorf("package after change = %q, want %q", got.Package.Name, "pro")
		}
	})

	t.Run("set unknown package", func(t *testing.T) {
		tenant, _ := s.GetTenantBySlug(ctx, "acme")
		err := s.SetTenantPackage(ctx, tenant.ID, "missing")
		if !errors.Is(err, models.ErrPackageNotFound) {
			t.Errorf("error = %v, want ErrPackageNotFound", err)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := s.GetTenant(ctx, "missing")
		if !errors.Is(err, models.ErrTenantNotFound) {
			t.Errorf("error = %v, want ErrTenantNotFound", err)
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		tenant := seedTenant(t, s, "doomed", basic)

		if _, err := s.CreateContent(ctx, &models.Content{
			TenantID: tenant.ID, Filename: "a.mp4", MediaKey: "k", SizeBytes: 10,
		}); err != nil {
			t.Fatal(err)
		}
		if _, err := s.CreateDevice(ctx, &models.Device{
			TenantID: tenant.ID, Name: "lobby", PairingCode: "DOOMED01",
		}); err != nil {
			t.Fatal(err)
		}

		if err := s.DeleteTenant(ctx, tenant.ID); err != nil {
			t.Fatalf("DeleteTenant() error = %v", err)
		}

		if _, err := s.GetTenant(ctx, tenant.ID); !errors.Is(err, models.ErrTenantNotFound) {
			t.Errorf("tenant still present after delete")
		}
		contents, err := s.ListContentByTenant(ctx, tenant.ID)
		if err != nil || len(contents) != 0 {
			t.Errorf("content not cascaded: %d rows, err=%v", len(contents), err)
		}
		devices, err := s.ListDevicesByTenant(ctx, tenant.ID)
		if err != nil || len(devices) != 0 {
			t.Errorf("devices not cascaded: %d rows, err=%v", len(devices), err)
		}
	})
}

func TestPackageOperations(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	pkg := seedPackage(t, s, "starter", 2, 3)

	t.Run("get by name", func(t *testing.T) {
		got, err := s.GetPackageByName(ctx, "starter")
		if err != nil {
			t.Fatalf("GetPackageByName() error = %v", err)
		}
		if got.ID != pkg.ID {
			t.Errorf("ID = %q, want %q", got.ID, pkg.ID)
		}
	})

	t.Run("duplicate name", func(t *testing.T) {
		_, err := s.CreatePackage(ctx, &models.Package{Name: "starter", StorageGB: 1})
		if !errors.Is(err, models.ErrDuplicatePackage) {
			t.Errorf("error = %v, want ErrDuplicatePackage", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		pkg.StorageGB = 5
		if err := s.UpdatePackage(ctx, pkg); err != nil {
			t.Fatalf("UpdatePackage() error = %v", err)
		}
		got, _ := s.GetPackage(ctx, pkg.ID)
		if got.StorageGB != 5 {
			t.Errorf("StorageGB = %d, want 5", got.StorageGB)
		}
	})

	t.Run("delete in use", func(t *testing.T) {
		seedTenant(t, s, "user-of-starter", pkg)
		if err := s.DeletePackage(ctx, pkg.ID); !errors.Is(err, models.ErrPackageInUse) {
			t.Errorf("error = %v, want ErrPackageInUse", err)
		}
	})
}

func TestDeviceOperations(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	pkg := seedPackage(t, s, "basic", 1, 2)
	tenant := seedTenant(t, s, "acme", pkg)

	d1 := &models.Device{TenantID: tenant.ID, Name: "lobby", PairingCode: "AAAA2222"}
	if _, err := s.CreateDevice(ctx, d1); err != nil {
		t.Fatalf("CreateDevice() error = %v", err)
	}

	t.Run("get by pairing code", func(t *testing.T) {
		got, err := s.GetDeviceByPairingCode(ctx, "AAAA2222")
		if err != nil {
			t.Fatalf("GetDeviceByPairingCode() error = %v", err)
		}
		if got.ID != d1.ID {
			t.Errorf("ID = %q, want %q", got.ID, d1.ID)
		}

		if _, err := s.GetDeviceByPairingCode(ctx, "WRONG000"); !errors.Is(err, models.ErrInvalidPairingCode) {
			t.Errorf("error = %v, want ErrInvalidPairingCode", err)
		}
	})

	t.Run("count", func(t *testing.T) {
		count, err := s.CountDevicesByTenant(ctx, tenant.ID)
		if err != nil || count != 1 {
			t.Errorf("CountDevicesByTenant() = %d, %v; want 1, nil", count, err)
		}
	})

	t.Run("touch last seen", func(t *testing.T) {
		seen := time.Now().UTC().Truncate(time.Second)
		if err := s.TouchDeviceLastSeen(ctx, d1.ID, seen); err != nil {
			t.Fatalf("TouchDeviceLastSeen() error = %v", err)
		}
		got, _ := s.GetDevice(ctx, d1.ID)
		if got.LastSeenAt == nil {
			t.Fatal("LastSeenAt not set")
		}

		if err := s.TouchDeviceLastSeen(ctx, "missing", seen); !errors.Is(err, models.ErrDeviceNotFound) {
			t.Errorf("error = %v, want ErrDeviceNotFound", err)
		}
	})
}

func TestPaymentOperations(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	basic := seedPackage(t, s, "basic", 1, 5)
	pro := seedPackage(t, s, "pro", 10, 50)
	tenant := seedTenant(t, s, "acme", basic)

	payment := &models.Payment{
		TenantID:    tenant.ID,
		PackageID:   pro.ID,
		AmountCents: pro.PriceCents,
		Currency:    "USD",
	}
	if _, err := s.CreatePayment(ctx, payment); err != nil {
		t.Fatalf("CreatePayment() error = %v", err)
	}
	if payment.Status != string(models.PaymentPending) {
		t.Errorf("status = %q, want pending", payment.Status)
	}

	if err := s.MarkPaymentPaid(ctx, payment.ID, "ext-123", time.Now()); err != nil {
		t.Fatalf("MarkPaymentPaid() error = %v", err)
	}

	got, err := s.GetPayment(ctx, payment.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.GetStatus() != models.PaymentPaid {
		t.Errorf("status = %q, want paid", got.Status)
	}
	if got.ExternalRef != "ext-123" {
		t.Errorf("external ref = %q, want ext-123", got.ExternalRef)
	}

	// Double confirmation is rejected
	if err := s.MarkPaymentPaid(ctx, payment.ID, "ext-456", time.Now()); !errors.Is(err, models.ErrPaymentNotPending) {
		t.Errorf("second confirm error = %v, want ErrPaymentNotPending", err)
	}
}

func TestUserOperations(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	hash, err := models.HashPassword("sup3r-secret")
	if err != nil {
		t.Fatal(err)
	}

	user := &models.User{
		Username:     "alice",
		PasswordHash: hash,
		Role:         string(models.RoleAdmin),
		Enabled:      true,
	}
	if _, err := s.CreateUser(ctx, user); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	t.Run("validate credentials", func(t *testing.T) {
		got, err := s.ValidateCredentials(ctx, "alice", "sup3r-secret")
		if err != nil {
			t.Fatalf("ValidateCredentials() error = %v", err)
		}
		if got.Username != "alice" {
			t.Errorf("username = %q", got.Username)
		}

		if _, err := s.ValidateCredentials(ctx, "alice", "wrong"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("wrong password error = %v, want ErrInvalidCredentials", err)
		}
		if _, err := s.ValidateCredentials(ctx, "nobody", "whatever"); !errors.Is(err, models.ErrInvalidCredentials) {
			t.Errorf("unknown user error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("disabled user", func(t *testing.T) {
		user.Enabled = false
		if err := s.UpdateUser(ctx, user); err != nil {
			t.Fatal(err)
		}
		if _, err := s.ValidateCredentials(ctx, "alice", "sup3r-secret"); !errors.Is(err, models.ErrUserDisabled) {
			t.Errorf("error = %v, want ErrUserDisabled", err)
		}
	})

	t.Run("ensure admin user", func(t *testing.T) {
		// Users exist, so nothing is created
		created, err := s.EnsureAdminUser(ctx, "admin", hash)
		if err != nil || created {
			t.Errorf("EnsureAdminUser() = %v, %v; want false, nil", created, err)
		}
	})
}
