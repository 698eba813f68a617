// Tests for the startup profiles table.
package sqlite

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/mesh-intelligence/athena/pkg/types"
)

func TestProfilesCreate(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	created, err := profiles.Create(&types.StartupProfile{
		StartupID:   "s-1",
		CompanyName: "Acme Analytics",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("created_at and updated_at must match on create: %v != %v",
			created.CreatedAt, created.UpdatedAt)
	}

	got, err := profiles.Get("s-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.CompanyName != "Acme Analytics" {
		t.Errorf("company name mismatch: %q", got.CompanyName)
	}
}

func TestProfilesCreateGeneratesID(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	created, err := profiles.Create(&types.StartupProfile{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.StartupID == "" {
		t.Fatal("expected generated startup_id")
	}

	if _, err := profiles.Get(created.StartupID); err != nil {
		t.Fatalf("Get by generated ID failed: %v", err)
	}
}

func TestProfilesCreateDuplicate(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	if _, err := profiles.Create(&types.StartupProfile{StartupID: "s-1", CompanyName: "Acme"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := profiles.Create(&types.StartupProfile{StartupID: "s-1", CompanyName: "Other"})
	if !errors.Is(err, types.ErrDuplicateKey) {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}

	// The stored record is untouched.
	got, err := profiles.Get("s-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.CompanyName != "Acme" {
		t.Errorf("duplicate create mutated stored record: %q", got.CompanyName)
	}
}

func TestProfilesCreateReportsAllViolations(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	_, err := profiles.Create(&types.StartupProfile{
		StartupID:   "s-1",
		CompanyName: "", // required
		MarketData:  types.MarketData{TAM: fptr(100), SAM: fptr(500)},
	})

	var verr *types.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if len(verr.Result.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %d: %v", len(verr.Result.Violations), verr)
	}
	if !strings.Contains(verr.Error(), "company_name") {
		t.Errorf("error should name company_name: %v", verr)
	}
	if !strings.Contains(verr.Error(), "market_data") {
		t.Errorf("error should name market_data: %v", verr)
	}

	// Rejected record never reached the store.
	if _, err := profiles.Get("s-1"); !errors.Is(err, types.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProfilesGetNotFound(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	if _, err := profiles.Get("missing"); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := profiles.Get(""); !errors.Is(err, types.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestProfilesUpsert(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	created, err := profiles.Create(&types.StartupProfile{StartupID: "s-1", CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := profiles.Upsert(&types.StartupProfile{StartupID: "s-1", CompanyName: "Acme v2"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("upsert must preserve created_at: %v != %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("upsert must advance updated_at: %v <= %v", updated.UpdatedAt, created.UpdatedAt)
	}
	if updated.CompanyName != "Acme v2" {
		t.Errorf("upsert did not replace record: %q", updated.CompanyName)
	}
}

func TestProfilesUpsertCreatesWhenAbsent(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	saved, err := profiles.Upsert(&types.StartupProfile{StartupID: "s-9", CompanyName: "Fresh"})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	if !saved.CreatedAt.Equal(saved.UpdatedAt) {
		t.Errorf("create-via-upsert must set both timestamps equal")
	}
}

// Upserting identical content twice leaves the record equal except for
// updated_at.
func TestProfilesUpsertIdempotent(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	p := &types.StartupProfile{
		StartupID:       "s-1",
		CompanyName:     "Acme",
		TractionMetrics: types.TractionMetrics{MRR: fptr(5000)},
	}
	first, err := profiles.Upsert(p)
	if err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	second, err := profiles.Upsert(p)
	if err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	if second.CompanyName != first.CompanyName {
		t.Errorf("content drifted: %q != %q", second.CompanyName, first.CompanyName)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("created_at drifted: %v != %v", second.CreatedAt, first.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Errorf("updated_at must strictly advance: %v <= %v", second.UpdatedAt, first.UpdatedAt)
	}
}

func TestProfilesList(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	for _, p := range []*types.StartupProfile{
		{StartupID: "s-1", CompanyName: "Acme"},
		{StartupID: "s-2", CompanyName: "Beta"},
		{StartupID: "s-3", CompanyName: "Acme"},
	} {
		if _, err := profiles.Create(p); err != nil {
			t.Fatalf("Create %s failed: %v", p.StartupID, err)
		}
	}

	all, err := profiles.List(types.ProfileFilter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(all))
	}

	acme, err := profiles.List(types.ProfileFilter{CompanyName: "Acme"})
	if err != nil {
		t.Fatalf("filtered List failed: %v", err)
	}
	if len(acme) != 2 {
		t.Fatalf("expected 2 Acme profiles, got %d", len(acme))
	}

	limited, err := profiles.List(types.ProfileFilter{Limit: 2})
	if err != nil {
		t.Fatalf("limited List failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("expected 2 profiles with limit, got %d", len(limited))
	}

	offset, err := profiles.List(types.ProfileFilter{Offset: 2})
	if err != nil {
		t.Fatalf("offset List failed: %v", err)
	}
	if len(offset) != 1 {
		t.Fatalf("expected 1 profile with offset 2, got %d", len(offset))
	}
}

// Two concurrent creates with the same startup_id: exactly one succeeds and
// the loser observes ErrDuplicateKey.
func TestProfilesConcurrentCreate(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	const workers = 8
	var wg sync.WaitGroup
	errs := make([]error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = profiles.Create(&types.StartupProfile{
				StartupID:   "s-contended",
				CompanyName: "Acme",
			})
		}(i)
	}
	wg.Wait()

	var ok, dup int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, types.ErrDuplicateKey):
			dup++
		default:
			t.Errorf("unexpected error: %v", err)
		}
	}
	if ok != 1 {
		t.Errorf("expected exactly 1 successful create, got %d", ok)
	}
	if dup != workers-1 {
		t.Errorf("expected %d duplicate errors, got %d", workers-1, dup)
	}
}

// Mutating a record after a write must not change stored state.
func TestProfilesCloneOnWrite(t *testing.T) {
	b, _ := newTestBackend(t)
	profiles, _ := b.Profiles()

	p := &types.StartupProfile{
		StartupID:   "s-1",
		CompanyName: "Acme",
		Founders:    []types.Founder{{Name: "Ada"}},
	}
	if _, err := profiles.Create(p); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	p.Founders[0].Name = "mutated"
	p.CompanyName = "mutated"

	got, err := profiles.Get("s-1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.CompanyName != "Acme" || got.Founders[0].Name != "Ada" {
		t.Errorf("stored record aliased caller memory: %+v", got)
	}
}
