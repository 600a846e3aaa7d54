package utils

import "unicode"

// SplitText splits a long string into chunks of at most 'chunkSize' runes,
// carrying 'overlap' runes of context across boundaries. When a chunk boundary
// lands mid-word, it backs up to the nearest whitespace within a small window
// so words are not cut in half.
func SplitText(text string, chunkSize int, overlap int) []string {
	runes := []rune(text)
	totalLen := len(runes)

	if totalLen <= chunkSize {
		return []string{text}
	}

	step := chunkSize - overlap
	if step <= 0 {
		step = chunkSize // fallback if overlap >= chunkSize
	}

	// Never back up more than this looking for whitespace.
	const boundaryWindow = 40

	var chunks []string
	for start := 0; start < totalLen; {
		end := start + chunkSize
		if end >= totalLen {
			chunks = append(chunks, string(runes[start:totalLen]))
			break
		}

		cut := end
		for j := end; j > end-boundaryWindow && j > start; j-- {
			if unicode.IsSpace(runes[j-1]) {
				cut = j
				break
			}
		}

		chunks = append(chunks, string(runes[start:cut]))

		// Overlap is measured from the actual cut, so a boundary back-off
		// never leaves a gap before the next chunk.
		next := cut - overlap
		if next <= start {
			next = start + step
		}
		start = next
	}

	return chunks
}
