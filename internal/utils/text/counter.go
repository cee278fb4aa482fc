// Package text provides small text processing helpers shared by the
// summarization providers.
package text

// CountRunes counts Unicode characters (runes) in the given text.
// Summary length limits are expressed in characters, not bytes, so
// multi-byte text (Japanese, emoji) must be counted by rune.
//
// Examples:
//
//	CountRunes("hello")    // 5
//	CountRunes("こんにちは")  // 5
//	CountRunes("")         // 0
func CountRunes(text string) int {
	return len([]rune(text))
}
