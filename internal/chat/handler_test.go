package chat

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestStreamWords_SSEFrames(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/chat/tutor", nil)

	streamWords(w, r, "Bonjour à toi", func(word string) string {
		chunk, _ := json.Marshal(map[string]string{"content": word})
		return fmt.Sprintf("data: %s\n\n", chunk)
	})

	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("content type = %q, want text/event-stream", ct)
	}

	frames := strings.Split(strings.TrimSpace(w.Body.String()), "\n\n")
	if len(frames) != 3 {
		t.Fatalf("expected 3 frames, got %d: %q", len(frames), w.Body.String())
	}

	var rebuilt strings.Builder
	for _, frame := range frames {
		var payload struct {
			Content string `json:"content"`
		}
		data := strings.TrimPrefix(frame, "data: ")
		if err := json.Unmarshal([]byte(data), &payload); err != nil {
			t.Fatalf("frame %q is not valid JSON: %v", frame, err)
		}
		rebuilt.WriteString(payload.Content)
	}
	if rebuilt.String() != "Bonjour à toi" {
		t.Errorf("reassembled reply = %q", rebuilt.String())
	}
}

func TestStreamWords_RecommendFormat(t *testing.T) {
	w := httptest.NewRecorder()
	r := httptest.NewRequest("POST", "/chat/recommend", nil)

	streamWords(w, r, `Réponse "citée"`, func(word string) string {
		quoted, _ := json.Marshal(word)
		return fmt.Sprintf("0:%s\n", quoted)
	})

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), w.Body.String())
	}

	var rebuilt strings.Builder
	for _, line := range lines {
		if !strings.HasPrefix(line, "0:") {
			t.Fatalf("line %q missing 0: prefix", line)
		}
		var word string
		if err := json.Unmarshal([]byte(strings.TrimPrefix(line, "0:")), &word); err != nil {
			t.Fatalf("line %q payload not a JSON string: %v", line, err)
		}
		rebuilt.WriteString(word)
	}
	// Quotes inside the reply survive the framing.
	if rebuilt.String() != `Réponse "citée"` {
		t.Errorf("reassembled reply = %q", rebuilt.String())
	}
}
