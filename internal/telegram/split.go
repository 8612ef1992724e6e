package telegram

// splitText slices s into consecutive chunks of at most limit characters,
// preserving order. Slicing is rune-based so multi-byte characters are never
// cut in half. No word-boundary awareness.
func splitText(s string, limit int) []string {
	if s == "" {
		return nil
	}

	runes := []rune(s)

	var chunks []string
	for start := 0; start < len(runes); start += limit {
		end := start + limit
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
