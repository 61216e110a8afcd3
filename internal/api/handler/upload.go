package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sparrowapp/sparrow-api/internal/core/domain"
	"github.com/sparrowapp/sparrow-api/internal/core/ports"
)

const maxUploadBytes = 5 << 20

// saveUploadedImage stores the image sent under the given multipart field and
// returns its public reference. A request without the field (or without a
// multipart body at all) yields an empty reference and no error.
func saveUploadedImage(c echo.Context, images ports.ImageStore, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", domain.ErrValidation
	}
	if fh.Size > maxUploadBytes {
		return "", domain.ErrValidation
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	return images.Save(c.Request().Context(), fh.Filename, src)
}

// parseDateOfBirth accepts the date-only wire format used by the clients.
func parseDateOfBirth(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, domain.ErrValidation
	}
	return &t, nil
}
