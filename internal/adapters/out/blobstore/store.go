// Package blobstore keeps uploaded documents and outcome photos on an afero
// filesystem. Production wraps the OS filesystem in a base path; tests use
// an in-memory one.
package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/spf13/afero"
)

type Store struct {
	fs afero.Fs
}

func NewStore(fs afero.Fs) *Store {
	return &Store{fs: fs}
}

// NewDiskStore roots the store at dir on the local disk.
func NewDiskStore(dir string) (*Store, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create blob root: %w", err)
	}
	return NewStore(afero.NewBasePathFs(osFs, dir)), nil
}

// Put writes content under namespace with a fresh unique name and returns the
// reference to pass to Get. The original filename survives as a suffix.
func (s *Store) Put(ctx context.Context, namespace, filename string, content []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !validSegment(namespace) {
		return "", errs.NewValueIsInvalidError("namespace")
	}

	ref := path.Join(namespace, kernel.NewUUID().String()+"_"+sanitize(filename))
	if err := s.fs.MkdirAll(namespace, 0o750); err != nil {
		return "", err
	}
	if err := afero.WriteFile(s.fs, ref, content, 0o640); err != nil {
		return "", err
	}
	return ref, nil
}

func (s *Store) Get(ctx context.Context, ref string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	namespace, name, ok := strings.Cut(ref, "/")
	if !ok || !validSegment(namespace) || !validSegment(name) {
		return nil, errs.NewValueIsInvalidError("blob reference")
	}

	content, err := afero.ReadFile(s.fs, ref)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewObjectNotFoundError("blob", ref)
	}
	return content, err
}

func validSegment(s string) bool {
	return s != "" && s != "." && s != ".." && !strings.ContainsAny(s, `/\`)
}

// sanitize keeps a readable, path-safe tail of the uploaded filename.
func sanitize(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, `\`, "/"))
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := strings.Trim(b.String(), ".")
	if name == "" {
		return "blob"
	}
	if len(name) > 100 {
		name = name[len(name)-100:]
	}
	return name
}
