package chunker

import (
	"strings"
	"testing"
)

func TestChunk_ShortTextReturnedUnchanged(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
	}{
		{name: "Empty text", text: "", size: 10},
		{name: "Exactly at the limit", text: "0123456789", size: 10},
		{name: "Below the limit", text: "hello world", size: 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := Chunk(tt.text, tt.size)
			if len(chunks) != 1 {
				t.Fatalf("Expected 1 chunk, got %d", len(chunks))
			}
			if chunks[0] != tt.text {
				t.Errorf("Expected text unchanged, got %q", chunks[0])
			}
		})
	}
}

func TestChunk_NoWordLostOrSplit(t *testing.T) {
	text := strings.Repeat("alpha beta gamma delta epsilon ", 50)
	chunks := Chunk(text, 40)

	rejoined := strings.Join(chunks, " ")
	normalized := strings.Join(strings.Fields(text), " ")
	if rejoined != normalized {
		t.Errorf("Rejoined chunks differ from whitespace-normalized input")
	}
}

func TestChunk_RespectsSizeBound(t *testing.T) {
	text := strings.Repeat("word ", 200)
	size := 25

	for i, chunk := range Chunk(text, size) {
		if len(chunk) > size {
			t.Errorf("Chunk %d exceeds size bound: %d > %d", i, len(chunk), size)
		}
	}
}

func TestChunk_OversizedWordGetsOwnChunk(t *testing.T) {
	long := strings.Repeat("x", 30)
	text := "start " + long + " end " + strings.Repeat("pad ", 10)
	chunks := Chunk(text, 10)

	found := false
	for _, chunk := range chunks {
		if chunk == long {
			found = true
		}
		if len(chunk) > 10 && chunk != long {
			t.Errorf("Only the oversized word may exceed the bound, got %q", chunk)
		}
	}
	if !found {
		t.Errorf("Oversized word was split across chunks")
	}
}
