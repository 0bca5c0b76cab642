package engine

import "strings"

// Vocabulary constants for the built-in deterministic model. Token ids are
// runtime-defined; only stability matters.
const (
	vocabSize = 32000
	eosToken  = 2
)

// words used to render generated token ids back to text.
var tokenWords = []string{
	"the", "of", "and", "a", "to", "in", "is", "you", "that", "it",
	"he", "was", "for", "on", "are", "as", "with", "his", "they", "I",
	"at", "be", "this", "have", "from", "or", "one", "had", "by", "word",
	"but", "not",
}

// encodeWords maps text to token ids with a stable per-word hash. The same
// text always yields the same ids within a process lifetime and across
// processes.
func encodeWords(text string) []int {
	fields := strings.Fields(text)
	ids := make([]int, 0, len(fields))
	for _, f := range fields {
		ids = append(ids, int(hashWord(f)%uint64(vocabSize)))
	}
	return ids
}

// tokenText renders one generated token id as text.
func tokenText(id int) string {
	if id < 0 {
		id = -id
	}
	return tokenWords[id%len(tokenWords)]
}

// hashWord is FNV-1a over the word bytes.
func hashWord(s string) uint64 {
	const (
		offset64 = 14695981039346656037
		prime64  = 1099511628211
	)
	h := uint64(offset64)
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= prime64
	}
	return h
}

// mixToken folds a token id into a running hash state.
func mixToken(h uint64, id int) uint64 {
	const prime64 = 1099511628211
	h ^= uint64(uint32(id)) + 0x9e3779b97f4a7c15
	h *= prime64
	return h
}
