// Package chosung extracts the leading consonants (초성) of Hangul words.
// It is used to build the automatic initials hint.
package chosung

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Placeholder is returned when there is nothing to extract.
const Placeholder = "?"

const (
	syllableFirst = '\uAC00' // 가
	syllableLast  = '\uD7A3' // 힣
	leadFirst     = '\u1100' // conjoining ᄀ
)

// Compatibility jamo indexed by choseong order (U+1100..U+1112).
var initials = []rune("ㄱㄲㄴㄷㄸㄹㅁㅂㅃㅅㅆㅇㅈㅉㅊㅋㅌㅍㅎ")

// Extract maps every precomposed Hangul syllable of word to its leading consonant
// and copies any other rune unchanged. Blank input yields Placeholder.
func Extract(word string) string {
	if strings.TrimSpace(word) == "" {
		return Placeholder
	}

	var sb strings.Builder
	for _, r := range word {
		if !IsSyllable(r) {
			sb.WriteRune(r)
			continue
		}
		sb.WriteRune(initial(r))
	}
	return sb.String()
}

// IsSyllable reports whether r is a precomposed Hangul syllable block.
func IsSyllable(r rune) bool {
	return r >= syllableFirst && r <= syllableLast
}

// initial decomposes the syllable (NFD) and maps its conjoining lead to compatibility jamo.
func initial(syllable rune) rune {
	lead, _ := utf8.DecodeRuneInString(norm.NFD.String(string(syllable)))
	idx := int(lead - leadFirst)
	if idx < 0 || idx >= len(initials) {
		return syllable
	}
	return initials[idx]
}
