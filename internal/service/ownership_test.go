package service

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"resumade/internal/database"
)

type fakeResumeFetcher struct {
	records map[uint]*database.Resume
}

func (f *fakeResumeFetcher) ResumeByID(_ context.Context, id uint) (*database.Resume, error) {
	rec, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("%w: resume %d", ErrNotFound, id)
	}
	return rec, nil
}

func TestGuard_OwnerAllowed(t *testing.T) {
	rec := &database.Resume{UserID: 7}
	rec.ID = 1
	guard := NewGuard(&fakeResumeFetcher{records: map[uint]*database.Resume{1: rec}})

	got, err := guard.Authorize(context.Background(), 1, 7)
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	if got != rec {
		t.Fatal("expected the fetched record back")
	}
}

func TestGuard_MismatchForbidden(t *testing.T) {
	rec := &database.Resume{UserID: 7}
	rec.ID = 1
	guard := NewGuard(&fakeResumeFetcher{records: map[uint]*database.Resume{1: rec}})

	// 任意非属主的调用者组合都必须被拒绝。
	for _, caller := range []uint{1, 2, 6, 8, 9999} {
		_, err := guard.Authorize(context.Background(), 1, caller)
		if !errors.Is(err, ErrForbidden) {
			t.Fatalf("caller %d: expected ErrForbidden, got %v", caller, err)
		}
	}
}

func TestGuard_NotFoundPropagates(t *testing.T) {
	guard := NewGuard(&fakeResumeFetcher{records: map[uint]*database.Resume{}})

	_, err := guard.Authorize(context.Background(), 42, 7)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if errors.Is(err, ErrForbidden) {
		t.Fatal("missing resume must not be reported as forbidden")
	}
}
