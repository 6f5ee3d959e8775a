// Package proofstore keeps uploaded payment and delivery proofs on local disk.
package proofstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/commerce_lifecycle_app/internal/apperrors"
	portssvc "github.com/SscSPs/commerce_lifecycle_app/internal/core/ports/services"
)

var allowedExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true, ".pdf": true,
}

type localStore struct {
	dir      string
	maxBytes int64
}

// NewLocalStore stores files under dir/<transactionID>/. Uploads larger than maxBytes are refused.
func NewLocalStore(dir string, maxBytes int64) (portssvc.ProofStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create proof directory %s: %w", dir, err)
	}
	return &localStore{dir: dir, maxBytes: maxBytes}, nil
}

var _ portssvc.ProofStore = (*localStore)(nil)

// Save writes content and returns a reference of the form "<transactionID>/<uuid><ext>".
func (s *localStore) Save(ctx context.Context, transactionID, filename string, content io.Reader) (string, error) {
	if transactionID == "" || strings.ContainsAny(transactionID, `/\.`) {
		return "", fmt.Errorf("%w: invalid transaction id", apperrors.ErrValidation)
	}
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: unsupported proof file type %q", apperrors.ErrValidation, ext)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	txnDir := filepath.Join(s.dir, transactionID)
	if err := os.MkdirAll(txnDir, 0o750); err != nil {
		return "", fmt.Errorf("create proof directory: %w", err)
	}
	ref := transactionID + "/" + uuid.NewString() + ext
	path := filepath.Join(s.dir, filepath.FromSlash(ref))

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("create proof file: %w", err)
	}

	limit := s.maxBytes
	if limit <= 0 {
		limit = 10 << 20
	}
	n, err := io.Copy(f, io.LimitReader(content, limit+1))
	closeErr := f.Close()
	if err == nil && n > limit {
		err = fmt.Errorf("%w: proof exceeds %d bytes", apperrors.ErrValidation, limit)
	}
	if err == nil {
		err = closeErr
	}
	if err != nil {
		_ = os.Remove(path)
		return "", err
	}
	return ref, nil
}

func (s *localStore) Remove(ctx context.Context, ref string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	txnID, name, ok := strings.Cut(ref, "/")
	if !ok || txnID == "" || name == "" || strings.ContainsAny(txnID, `/\.`) || strings.ContainsAny(name, `/\`) || name == ".." {
		return fmt.Errorf("%w: invalid proof reference %q", apperrors.ErrValidation, ref)
	}
	if err := os.Remove(filepath.Join(s.dir, txnID, name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove proof file: %w", err)
	}
	return nil
}
