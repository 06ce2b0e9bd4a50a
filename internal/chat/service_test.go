package chat

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestTutorSystemPrompt(t *testing.T) {
	plain := tutorSystemPrompt(false, false)
	if strings.Contains(plain, "analyse visuelle") {
		t.Error("plain prompt should not mention visual analysis")
	}
	if !strings.Contains(plain, "assistant pédagogique") {
		t.Error("plain prompt missing the tutor role")
	}

	withImages := tutorSystemPrompt(false, true)
	if !strings.Contains(withImages, "images fournies") {
		t.Error("image prompt should instruct analyzing the images")
	}
	if strings.Contains(withImages, "PDF") {
		t.Error("image-only prompt should not mention PDFs")
	}

	withPDF := tutorSystemPrompt(true, false)
	if !strings.Contains(withPDF, "texte extrait du PDF") {
		t.Error("PDF prompt should instruct using the extracted text")
	}
	if !strings.Contains(withPDF, "et de documents") {
		t.Error("PDF prompt should extend the role with document analysis")
	}

	both := tutorSystemPrompt(true, true)
	if !strings.Contains(both, "images fournies") || !strings.Contains(both, "texte extrait du PDF") {
		t.Error("combined prompt should cover both attachment kinds")
	}
}

func TestDecodeDataURL(t *testing.T) {
	payload := []byte("%PDF-1.4 fake content")
	encoded := base64.StdEncoding.EncodeToString(payload)

	got, err := decodeDataURL("data:application/pdf;base64," + encoded)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("decoded payload mismatch: %q", got)
	}

	// Bare base64 without a data URL prefix is accepted.
	got, err = decodeDataURL(encoded)
	if err != nil {
		t.Fatalf("bare base64: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("bare base64 payload mismatch: %q", got)
	}

	if _, err := decodeDataURL("data:application/pdf;base64,not!!valid"); err == nil {
		t.Error("expected error for invalid base64")
	}
}
