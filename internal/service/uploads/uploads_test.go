package uploads_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jhconstruction/backoffice/internal/service/uploads"
	"github.com/jhconstruction/backoffice/pkg/clients/storage"
)

type fakeStore struct {
	objects []storage.StoredObject
	deleted []string
	listErr error
}

func (f *fakeStore) Upload(_ context.Context, fileName string, _ io.Reader) (*storage.UploadResult, error) {
	return &storage.UploadResult{URL: "https://cdn.example/" + fileName, PublicID: "slips/" + fileName}, nil
}

func (f *fakeStore) Delete(_ context.Context, publicID string) error {
	f.deleted = append(f.deleted, publicID)
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]storage.StoredObject, error) {
	return f.objects, f.listErr
}

type fakeRefs struct {
	referenced map[string]bool
}

func (f fakeRefs) SlipReferenced(_ context.Context, publicID string) (bool, error) {
	return f.referenced[publicID], nil
}

func TestUpload(t *testing.T) {
	svc := uploads.NewService(&fakeStore{}, fakeRefs{}, nil)

	result, err := svc.Upload(context.Background(), "slip.jpg", 10, strings.NewReader("payload"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.PublicID != "slips/slip.jpg" {
		t.Errorf("publicID = %q", result.PublicID)
	}
	if result.URL == "" {
		t.Error("empty URL")
	}
}

func TestUploadDisabledStore(t *testing.T) {
	svc := uploads.NewService(nil, fakeRefs{}, nil)

	_, err := svc.Upload(context.Background(), "slip.jpg", 10, strings.NewReader("x"))
	if !errors.Is(err, uploads.ErrStoreDisabled) {
		t.Errorf("err = %v, want ErrStoreDisabled", err)
	}
	if svc.Enabled() {
		t.Error("Enabled() = true with nil store")
	}
}

func TestUploadTooLarge(t *testing.T) {
	svc := uploads.NewService(&fakeStore{}, fakeRefs{}, nil)

	_, err := svc.Upload(context.Background(), "slip.jpg", storage.MaxUploadBytes+1, strings.NewReader("x"))
	if !errors.Is(err, uploads.ErrTooLarge) {
		t.Errorf("err = %v, want ErrTooLarge", err)
	}
}

func TestReconcile(t *testing.T) {
	old := time.Now().Add(-48 * time.Hour)
	fresh := time.Now().Add(-time.Hour)

	store := &fakeStore{objects: []storage.StoredObject{
		{PublicID: "slips/orphan-old", CreatedAt: old},
		{PublicID: "slips/referenced-old", CreatedAt: old},
		{PublicID: "slips/orphan-fresh", CreatedAt: fresh},
	}}
	refs := fakeRefs{referenced: map[string]bool{"slips/referenced-old": true}}

	svc := uploads.NewService(store, refs, nil)

	deleted, err := svc.Reconcile(context.Background())
	if err != nil {
		t.Fatalf("Reconcile: %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
	if len(store.deleted) != 1 || store.deleted[0] != "slips/orphan-old" {
		t.Errorf("deleted objects = %v, want only the old orphan", store.deleted)
	}
}

func TestReconcileDisabledStore(t *testing.T) {
	svc := uploads.NewService(nil, fakeRefs{}, nil)
	if _, err := svc.Reconcile(context.Background()); !errors.Is(err, uploads.ErrStoreDisabled) {
		t.Errorf("err = %v, want ErrStoreDisabled", err)
	}
}
