package application

import (
	"encoding/base64"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"a4-doc-editor/backend/internal/features/editor/domain"
	apperrors "a4-doc-editor/backend/pkg/errors"
)

// ImageFile is an image chosen by the user.
type ImageFile struct {
	Name string
	Data []byte
}

// ImageInsertion is the outcome of inserting an image into a document.
type ImageInsertion struct {
	Document  *domain.Delta    `json:"document"`
	Selection domain.Selection `json:"selection"`
	Embed     string           `json:"embed"`
	MIMEType  string           `json:"mimeType"`
}

// dataURL reads data into a data URL, accepting image content only.
func dataURL(data []byte) (string, string, error) {
	if len(data) == 0 {
		return "", "", apperrors.ErrInvalidParam.WithDetail("image file is empty")
	}
	mtype := mimetype.Detect(data).String()
	if !strings.HasPrefix(mtype, "image/") {
		return "", "", apperrors.ErrUnsupportedMedia.WithDetail("expected an image, got " + mtype)
	}
	return "data:" + mtype + ";base64," + base64.StdEncoding.EncodeToString(data), mtype, nil
}
