// Package uploads handles payment-slip and delivery-challan files: pushing
// them to the object store and garbage-collecting orphaned objects.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/jhconstruction/backoffice/pkg/clients/storage"
)

var (
	// ErrStoreDisabled is returned when no object store is configured.
	ErrStoreDisabled = errors.New("file storage is not configured")
	// ErrTooLarge is returned for files over the accepted size limit.
	ErrTooLarge = fmt.Errorf("file exceeds the %d MB limit", storage.MaxUploadBytes>>20)
)

// orphanAge is how old an unreferenced object must be before the
// reconciliation job removes it. Fresh uploads may not be attached to
// their record yet.
const orphanAge = 24 * time.Hour

// ReferenceChecker reports whether a stored object is still attached to a
// transaction or purchase order.
type ReferenceChecker interface {
	SlipReferenced(ctx context.Context, publicID string) (bool, error)
}

// Service mediates between the HTTP layer and the object store.
type Service struct {
	store  storage.Client
	refs   ReferenceChecker
	logger *zap.Logger
}

// NewService wires the upload service. store may be nil when no object
// store is configured; uploads then fail with ErrStoreDisabled.
func NewService(store storage.Client, refs ReferenceChecker, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, refs: refs, logger: logger}
}

// Enabled reports whether an object store is configured.
func (s *Service) Enabled() bool { return s.store != nil }

// Upload validates the file size and pushes the file to the store.
func (s *Service) Upload(ctx context.Context, fileName string, size int64, file io.Reader) (*storage.UploadResult, error) {
	if s.store == nil {
		return nil, ErrStoreDisabled
	}
	if size > storage.MaxUploadBytes {
		return nil, ErrTooLarge
	}

	result, err := s.store.Upload(ctx, fileName, io.LimitReader(file, storage.MaxUploadBytes))
	if err != nil {
		return nil, err
	}

	s.logger.Info("file uploaded",
		zap.String("file", fileName),
		zap.String("public_id", result.PublicID))
	return result, nil
}

// Remove deletes a stored object, typically when its owning record is
// deleted or its attachment replaced.
func (s *Service) Remove(ctx context.Context, publicID string) error {
	if s.store == nil || publicID == "" {
		return nil
	}
	return s.store.Delete(ctx, publicID)
}

// Reconcile lists the stored objects and deletes those older than a day
// that no transaction or purchase order references. It keeps going past
// per-object failures and returns how many objects it removed.
func (s *Service) Reconcile(ctx context.Context) (int, error) {
	if s.store == nil {
		return 0, ErrStoreDisabled
	}

	objects, err := s.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stored objects: %w", err)
	}

	cutoff := time.Now().Add(-orphanAge)
	deleted := 0
	var lastErr error

	for _, obj := range objects {
		if obj.CreatedAt.After(cutoff) {
			continue
		}

		referenced, err := s.refs.SlipReferenced(ctx, obj.PublicID)
		if err != nil {
			s.logger.Warn("reference check failed", zap.String("public_id", obj.PublicID), zap.Error(err))
			lastErr = err
			continue
		}
		if referenced {
			continue
		}

		if err := s.store.Delete(ctx, obj.PublicID); err != nil {
			s.logger.Warn("orphan delete failed", zap.String("public_id", obj.PublicID), zap.Error(err))
			lastErr = err
			continue
		}
		deleted++
	}

	s.logger.Info("upload reconciliation finished",
		zap.Int("scanned", len(objects)),
		zap.Int("deleted", deleted))
	return deleted, lastErr
}
