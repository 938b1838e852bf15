package util

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
)

var ErrFileTooLarge = errors.New("file is too large")

// ReadFormFile reads an uploaded file fully, refusing anything above maxSize bytes.
func ReadFormFile(fileHeader *multipart.FileHeader, maxSize int64) ([]byte, error) {
	if maxSize > 0 && fileHeader.Size > maxSize {
		return nil, fmt.Errorf("%s is %d bytes, limit is %d: %w", fileHeader.Filename, fileHeader.Size, maxSize, ErrFileTooLarge)
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := io.Reader(file)
	if maxSize > 0 {
		reader = io.LimitReader(file, maxSize+1)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if maxSize > 0 && int64(len(data)) > maxSize {
		return nil, fmt.Errorf("%s exceeds %d bytes: %w", fileHeader.Filename, maxSize, ErrFileTooLarge)
	}

	return data, nil
}

// IsPdf checks the extension and sniffs the content.
func IsPdf(filename string, data []byte) bool {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return false
	}
	return http.DetectContentType(data) == "application/pdf"
}

// ContentDisposition builds an attachment header value for filename.
func ContentDisposition(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filepath.Base(filename))
}
