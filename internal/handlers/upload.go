package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/clubtreasury/treasury/internal/apperrors"
	"github.com/clubtreasury/treasury/internal/dto"
	"github.com/gin-gonic/gin"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// formUpload opens the multipart file field. A missing optional file yields a
// nil upload. The returned closer must always be closed.
func formUpload(c *gin.Context, field string, required bool) (*dto.Upload, io.Closer, error) {
	header, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			if required {
				return nil, nopCloser{}, fmt.Errorf("%w: file %q is required", apperrors.ErrValidation, field)
			}
			return nil, nopCloser{}, nil
		}
		return nil, nopCloser{}, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}
	f, err := header.Open()
	if err != nil {
		return nil, nopCloser{}, fmt.Errorf("failed to open upload: %w", err)
	}
	return &dto.Upload{Filename: header.Filename, Content: f}, f, nil
}
