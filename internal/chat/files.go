package chat

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/quizia/backend/internal/models"
)

func isPDF(f models.AttachedFile) bool {
	return f.Type == "application/pdf"
}

func isImage(f models.AttachedFile) bool {
	return strings.HasPrefix(f.Type, "image/")
}

// decodeDataURL strips a data URL prefix and decodes the base64 payload.
// Bare base64 without a prefix is accepted too.
func decodeDataURL(data string) ([]byte, error) {
	if i := strings.Index(data, "base64,"); i >= 0 {
		data = data[i+len("base64,"):]
	}
	decoded, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return nil, fmt.Errorf("decode data url: %w", err)
	}
	return decoded, nil
}

// extractPDFText pulls the plain text out of an uploaded PDF.
func extractPDFText(f models.AttachedFile) (string, error) {
	raw, err := decodeDataURL(f.Data)
	if err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", f.Name, err)
	}

	textReader, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text %s: %w", f.Name, err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, textReader); err != nil {
		return "", fmt.Errorf("copy pdf text %s: %w", f.Name, err)
	}
	return buf.String(), nil
}
