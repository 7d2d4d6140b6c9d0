// Package inline implements the self-describing inline representation used
// for every uploaded document: a base64 data URI that embeds the file content
// together with its media type, renderable without a separate fetch.
package inline

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/darulhuda/ppdb-portal/internal/pkg/logger"
)

// Conversion errors
var (
	ErrEmptyFile       = errors.New("uploaded file is empty")
	ErrTooLarge        = errors.New("uploaded file exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrNotInline       = errors.New("value is not an inline data representation")
)

// allowedMediaTypes mirrors the upload formats the registration form accepts.
var allowedMediaTypes = map[string]bool{
	"application/pdf": true,
	"image/jpeg":      true,
	"image/png":       true,
}

const prefix = "data:"

// Encode builds the inline representation from raw content and a media type.
func Encode(data []byte, mediaType string) string {
	return prefix + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Decode splits an inline representation back into media type and raw content.
func Decode(value string) (mediaType string, data []byte, err error) {
	if !strings.HasPrefix(value, prefix) {
		return "", nil, ErrNotInline
	}
	rest := strings.TrimPrefix(value, prefix)
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return "", nil, ErrNotInline
	}
	mediaType = rest[:sep]
	data, err = base64.StdEncoding.DecodeString(rest[sep+len(";base64,"):])
	if err != nil {
		return "", nil, fmt.Errorf("decoding inline content: %w", err)
	}
	return mediaType, data, nil
}

// IsImage reports whether an inline value carries image content.
func IsImage(value string) bool {
	return strings.HasPrefix(value, prefix+"image/")
}

// FromMultipart reads an uploaded file in full and converts it into the
// inline representation, enforcing the size limit and the accepted formats.
func FromMultipart(fileHeader *multipart.FileHeader, maxSize int64) (string, error) {
	if fileHeader == nil {
		return "", ErrEmptyFile
	}
	if fileHeader.Size == 0 {
		return "", ErrEmptyFile
	}
	if fileHeader.Size > maxSize {
		return "", fmt.Errorf("%w: %d bytes (limit %d)", ErrTooLarge, fileHeader.Size, maxSize)
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxSize+1))
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to read uploaded file")
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxSize {
		return "", fmt.Errorf("%w: content larger than declared size", ErrTooLarge)
	}

	mediaType := detectMediaType(data, fileHeader)
	if !allowedMediaTypes[mediaType] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedType, mediaType)
	}

	return Encode(data, mediaType), nil
}

// detectMediaType sniffs the content, falling back to the declared header
// when sniffing yields a generic type.
func detectMediaType(data []byte, fileHeader *multipart.FileHeader) string {
	sniffed := http.DetectContentType(data)
	// strip parameters like "; charset=utf-8"
	if i := strings.Index(sniffed, ";"); i >= 0 {
		sniffed = strings.TrimSpace(sniffed[:i])
	}
	if sniffed == "application/octet-stream" || sniffed == "text/plain" {
		if declared := fileHeader.Header.Get("Content-Type"); declared != "" {
			return declared
		}
	}
	return sniffed
}
