package chunker

import "strings"

// Chunk splits text into pieces of at most maxChunkSize characters,
// packing whole words greedily. A single word longer than maxChunkSize
// is never split; it occupies a chunk of its own.
func Chunk(text string, maxChunkSize int) []string {
	if len(text) <= maxChunkSize {
		return []string{text}
	}

	words := strings.Fields(text)
	var chunks []string
	var current []string
	currentSize := 0

	for _, word := range words {
		wordSize := len(word) + 1 // +1 for the separator

		if currentSize+wordSize > maxChunkSize && len(current) > 0 {
			chunks = append(chunks, strings.Join(current, " "))
			current = []string{word}
			currentSize = wordSize
		} else {
			current = append(current, word)
			currentSize += wordSize
		}
	}

	if len(current) > 0 {
		chunks = append(chunks, strings.Join(current, " "))
	}

	return chunks
}
