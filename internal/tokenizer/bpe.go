package tokenizer

import "strings"

type mergePair struct {
	left  string
	right string
}

type segment struct {
	text    string
	special bool
}

func runeSplit(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

func adjacentPairs(word []string) map[mergePair]struct{} {
	pairs := make(map[mergePair]struct{})
	for i := 0; i+1 < len(word); i++ {
		pairs[mergePair{left: word[i], right: word[i+1]}] = struct{}{}
	}
	return pairs
}

func applyMerge(word []string, pair mergePair) []string {
	var out []string
	for i := 0; i < len(word); i++ {
		if i+1 < len(word) && word[i] == pair.left && word[i+1] == pair.right {
			out = append(out, word[i]+word[i+1])
			i++
			continue
		}
		out = append(out, word[i])
	}
	return out
}

// splitOnSpecials cuts text into plain and special-token segments, matching
// the longest special first. Specials must be pre-sorted longest first.
func splitOnSpecials(text string, specials []string) []segment {
	if len(specials) == 0 {
		return []segment{{text: text}}
	}
	var parts []segment
	var buf strings.Builder
	for i := 0; i < len(text); {
		match := ""
		for _, sp := range specials {
			if sp != "" && i+len(sp) <= len(text) && text[i:i+len(sp)] == sp {
				match = sp
				break
			}
		}
		if match == "" {
			buf.WriteByte(text[i])
			i++
			continue
		}
		if buf.Len() > 0 {
			parts = append(parts, segment{text: buf.String()})
			buf.Reset()
		}
		parts = append(parts, segment{text: match, special: true})
		i += len(match)
	}
	if buf.Len() > 0 {
		parts = append(parts, segment{text: buf.String()})
	}
	return parts
}

func sortLongestFirst(tokens []string) {
	for i := 1; i < len(tokens); i++ {
		for j := i; j > 0 && len(tokens[j]) > len(tokens[j-1]); j-- {
			tokens[j], tokens[j-1] = tokens[j-1], tokens[j]
		}
	}
}

// byteUnicodeTables builds the reversible GPT-2 byte to printable-rune
// mapping used by byte-level BPE vocabularies.
func byteUnicodeTables() (map[byte]string, map[string]byte) {
	var bytesUsed []int
	for i := int('!'); i <= int('~'); i++ {
		bytesUsed = append(bytesUsed, i)
	}
	for i := int('¡'); i <= int('¬'); i++ {
		bytesUsed = append(bytesUsed, i)
	}
	for i := int('®'); i <= int('ÿ'); i++ {
		bytesUsed = append(bytesUsed, i)
	}

	runes := make([]int, len(bytesUsed))
	copy(runes, bytesUsed)
	n := 0
	for b := 0; b < 256; b++ {
		seen := false
		for _, v := range bytesUsed {
			if v == b {
				seen = true
				break
			}
		}
		if !seen {
			bytesUsed = append(bytesUsed, b)
			runes = append(runes, 256+n)
			n++
		}
	}

	enc := make(map[byte]string, len(bytesUsed))
	dec := make(map[string]byte, len(bytesUsed))
	for i := range bytesUsed {
		s := string(rune(runes[i]))
		enc[byte(bytesUsed[i])] = s
		dec[s] = byte(bytesUsed[i])
	}
	return enc, dec
}
