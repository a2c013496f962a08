// Package evidence stores payment slips and announcement images on an afero
// filesystem, normalising oversized images on the way in.
package evidence

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/core/domain"
	portsrepo "github.com/clubtreasury/treasury/internal/core/ports/repositories"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

var (
	allowedExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".gif": true}
	unsafeChars       = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)
	refPattern        = regexp.MustCompile(`^\d{14}_[0-9a-f]{8}_[a-zA-Z0-9.\-_]+$`)
)

// Store implements the evidence port on top of an afero filesystem.
type Store struct {
	fs       afero.Fs
	maxWidth int
	maxBytes int64
	now      func() time.Time
}

var _ portsrepo.EvidenceStore = (*Store)(nil)

// NewStore wraps fsys. Images wider than maxWidth are downscaled; uploads
// larger than maxBytes are refused. Zero disables either limit.
func NewStore(fsys afero.Fs, maxWidth int, maxBytes int64) *Store {
	return &Store{fs: fsys, maxWidth: maxWidth, maxBytes: maxBytes, now: time.Now}
}

// NewDiskStore roots a store at dir on the host filesystem, creating it if needed.
func NewDiskStore(dir string, maxWidth int, maxBytes int64) (*Store, error) {
	osFs := afero.NewOsFs()
	if err := osFs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create evidence dir %s: %w", dir, err)
	}
	return NewStore(afero.NewBasePathFs(osFs, dir), maxWidth, maxBytes), nil
}

// SanitizeName strips directories and replaces unsafe characters.
func SanitizeName(name string) string {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	safe := unsafeChars.ReplaceAllString(base, "_")
	safe = strings.Trim(safe, "._")
	if safe == "" {
		return "upload"
	}
	return safe
}

func (s *Store) uniqueName(name string) string {
	return fmt.Sprintf("%s_%s_%s", s.now().UTC().Format("20060102150405"), uuid.NewString()[:8], SanitizeName(name))
}

func (s *Store) Save(_ context.Context, name string, content io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if !allowedExtensions[ext] {
		return "", fmt.Errorf("%w: file type %q is not allowed, use png, jpg, jpeg or gif", apperrors.ErrValidation, ext)
	}

	reader := content
	if s.maxBytes > 0 {
		reader = io.LimitReader(content, s.maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read upload: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("%w: file exceeds %d bytes", apperrors.ErrValidation, s.maxBytes)
	}

	data, err = s.normalize(data, ext)
	if err != nil {
		return "", err
	}

	ref := s.uniqueName(name)
	if err := afero.WriteFile(s.fs, ref, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write evidence %s: %w", ref, err)
	}
	return ref, nil
}

// normalize checks that data decodes as an image and downscales it past
// maxWidth. JPEGs are always re-encoded so their EXIF orientation is applied
// to the stored pixels; PNG and GIF carry none and are kept as uploaded.
func (s *Store) normalize(data []byte, ext string) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: upload is not a readable image", apperrors.ErrValidation)
	}
	tooWide := s.maxWidth > 0 && img.Bounds().Dx() > s.maxWidth
	isJPEG := ext == ".jpg" || ext == ".jpeg"
	if !tooWide && !isJPEG {
		return data, nil
	}

	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	if tooWide {
		img = imaging.Resize(img, s.maxWidth, 0, imaging.Lanczos)
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to re-encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func validRef(ref string) error {
	if !refPattern.MatchString(ref) {
		return fmt.Errorf("%w: evidence %q", apperrors.ErrNotFound, ref)
	}
	return nil
}

func (s *Store) Open(_ context.Context, ref string) (io.ReadCloser, string, error) {
	if err := validRef(ref); err != nil {
		return nil, "", err
	}
	f, err := s.fs.Open(ref)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", fmt.Errorf("%w: evidence %q", apperrors.ErrNotFound, ref)
		}
		return nil, "", fmt.Errorf("failed to open evidence %s: %w", ref, err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(ref)))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return f, contentType, nil
}

func (s *Store) Delete(_ context.Context, ref string) error {
	if err := validRef(ref); err != nil {
		return nil
	}
	if err := s.fs.Remove(ref); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete evidence %s: %w", ref, err)
	}
	return nil
}

func (s *Store) List(_ context.Context) ([]domain.EvidenceObject, error) {
	infos, err := afero.ReadDir(s.fs, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []domain.EvidenceObject{}, nil
		}
		return nil, fmt.Errorf("failed to list evidence: %w", err)
	}
	out := make([]domain.EvidenceObject, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !refPattern.MatchString(info.Name()) {
			continue
		}
		out = append(out, domain.EvidenceObject{Ref: info.Name(), Size: info.Size(), StoredAt: info.ModTime()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ref < out[j].Ref })
	return out, nil
}
