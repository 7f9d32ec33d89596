package chosung

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	testCases := []struct {
		desc     string
		word     string
		expected string
	}{
		{desc: "two syllables", word: "사과", expected: "ㅅㄱ"},
		{desc: "three syllables", word: "아이폰", expected: "ㅇㅇㅍ"},
		{desc: "double consonants", word: "까치", expected: "ㄲㅊ"},
		{desc: "first and last block", word: "가힣", expected: "ㄱㅎ"},
		{desc: "latin passes through", word: "iPhone", expected: "iPhone"},
		{desc: "mixed", word: "a가 b나", expected: "aㄱ bㄴ"},
		{desc: "compatibility jamo unchanged", word: "ㅋㅋ", expected: "ㅋㅋ"},
		{desc: "empty", word: "", expected: Placeholder},
		{desc: "blank", word: "   ", expected: Placeholder},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			assert.Equal(t, tc.expected, Extract(tc.word))
		})
	}
}

func TestIsSyllable(t *testing.T) {
	assert.True(t, IsSyllable('가'))
	assert.True(t, IsSyllable('힣'))
	assert.False(t, IsSyllable('ㄱ'))
	assert.False(t, IsSyllable('a'))
}
