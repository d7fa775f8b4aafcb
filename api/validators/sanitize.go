package validators

// CapRunes cuts input to at most maxLen runes. Whitespace is kept.
func CapRunes(input string, maxLen int) string {
	if maxLen <= 0 {
		return input
	}
	runes := []rune(input)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return input
}
