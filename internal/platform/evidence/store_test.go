package evidence

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/disintegration/imaging"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// rotatedJPEG encodes a w x h JPEG tagged with EXIF orientation 6, which
// viewers display rotated 90 degrees clockwise (h x w).
func rotatedJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	raw := buf.Bytes()

	app1 := []byte{
		0xFF, 0xE1, 0x00, 0x22, // APP1, length 34
		'E', 'x', 'i', 'f', 0x00, 0x00,
		'M', 'M', 0x00, 0x2A, 0x00, 0x00, 0x00, 0x08, // big endian TIFF header
		0x00, 0x01, // one IFD entry
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01, 0x00, 0x06, 0x00, 0x00, // Orientation = 6
		0x00, 0x00, 0x00, 0x00, // no next IFD
	}
	out := append([]byte{}, raw[:2]...) // SOI
	out = append(out, app1...)
	return append(out, raw[2:]...)
}

func newTestStore(maxWidth int, maxBytes int64) *Store {
	s := NewStore(afero.NewMemMapFs(), maxWidth, maxBytes)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s
}

func TestStore_SaveOpenDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(0, 0)

	ref, err := s.Save(ctx, "../../etc/My Slip!.PNG", bytes.NewReader(pngBytes(t, 4, 4)))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "20240102030405_"), ref)
	assert.True(t, strings.HasSuffix(ref, "_My_Slip_.PNG"), ref)
	assert.NotContains(t, ref, "/")

	rc, contentType, err := s.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/png", contentType)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)

	objects, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, objects, 1)
	assert.Equal(t, ref, objects[0].Ref)

	require.NoError(t, s.Delete(ctx, ref))
	require.NoError(t, s.Delete(ctx, ref), "deleting twice is harmless")
	_, _, err = s.Open(ctx, ref)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestStore_UniqueNames(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(0, 0)
	a, err := s.Save(ctx, "slip.png", bytes.NewReader(pngBytes(t, 2, 2)))
	require.NoError(t, err)
	b, err := s.Save(ctx, "slip.png", bytes.NewReader(pngBytes(t, 2, 2)))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestStore_RejectsBadUploads(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(0, 64)

	_, err := s.Save(ctx, "slip.pdf", strings.NewReader("%PDF"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = s.Save(ctx, "slip.png", strings.NewReader("not an image"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = s.Save(ctx, "slip.png", bytes.NewReader(pngBytes(t, 200, 200)))
	assert.ErrorIs(t, err, apperrors.ErrValidation, "larger than max bytes")
}

func TestStore_DownscalesWideImages(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(50, 0)

	ref, err := s.Save(ctx, "wide.png", bytes.NewReader(pngBytes(t, 200, 100)))
	require.NoError(t, err)

	rc, _, err := s.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	img, err := imaging.Decode(rc)
	require.NoError(t, err)
	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestStore_OpenRejectsTraversal(t *testing.T) {
	_, _, err := newTestStore(0, 0).Open(context.Background(), "../secret")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "upload", SanitizeName("..."))
	assert.Equal(t, "a_b.jpg", SanitizeName(`C:\Users\x\a b.jpg`))
}

func TestStore_AppliesJPEGOrientationWithoutResize(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(0, 0)

	ref, err := s.Save(ctx, "slip.jpg", bytes.NewReader(rotatedJPEG(t, 8, 4)))
	require.NoError(t, err)

	rc, contentType, err := s.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	assert.Equal(t, "image/jpeg", contentType)

	stored, err := imaging.Decode(rc)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Bounds().Dx(), "orientation must be baked into the stored pixels")
	assert.Equal(t, 8, stored.Bounds().Dy())
}

func TestStore_KeepsSmallPNGAsUploaded(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(100, 0)
	original := pngBytes(t, 4, 4)

	ref, err := s.Save(ctx, "slip.png", bytes.NewReader(original))
	require.NoError(t, err)

	rc, _, err := s.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, original, data)
}
