package tokenizer

import (
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
)

// BPE is a byte-level BPE tokenizer loaded from a Hugging Face
// tokenizer.json vocabulary. It never inserts BOS or EOS tokens on its own;
// the template assembler decides where special tokens go.
type BPE struct {
	encoder map[string]int
	decoder []string
	ranks   map[mergePair]int

	// merge cache, guarded so one tokenizer can back concurrent requests
	mu    sync.Mutex
	cache map[string][]string
	byteEnc    map[byte]string
	byteDec    map[string]byte
	pattern    *regexp.Regexp
	specials   []string
	specialIDs map[string]int
	unkID      int
}

type vocabJSON struct {
	Model struct {
		Type     string         `json:"type"`
		Vocab    map[string]int `json:"vocab"`
		Merges   []any          `json:"merges"`
		UnkToken string         `json:"unk_token"`
	} `json:"model"`
	PreTokenizer struct {
		Type          string `json:"type"`
		Pretokenizers []struct {
			Type    string `json:"type"`
			Pattern struct {
				Regex string `json:"Regex"`
			} `json:"pattern"`
		} `json:"pretokenizers"`
	} `json:"pre_tokenizer"`
	AddedTokens []struct {
		ID      int    `json:"id"`
		Content string `json:"content"`
		Special bool   `json:"special"`
	} `json:"added_tokens"`
}

func LoadBPEFile(path string) (*BPE, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return LoadBPEBytes(data)
}

func LoadBPEBytes(data []byte) (*BPE, error) {
	var vj vocabJSON
	if err := json.Unmarshal(data, &vj); err != nil {
		return nil, fmt.Errorf("parse tokenizer json: %w", err)
	}
	if !strings.EqualFold(vj.Model.Type, "BPE") {
		return nil, fmt.Errorf("unsupported tokenizer model: %s", vj.Model.Type)
	}

	encoder := make(map[string]int, len(vj.Model.Vocab)+len(vj.AddedTokens))
	maxID := -1
	for tok, id := range vj.Model.Vocab {
		encoder[tok] = id
		if id > maxID {
			maxID = id
		}
	}
	for _, at := range vj.AddedTokens {
		encoder[at.Content] = at.ID
		if at.ID > maxID {
			maxID = at.ID
		}
	}
	decoder := make([]string, maxID+1)
	for tok, id := range vj.Model.Vocab {
		decoder[id] = tok
	}
	for _, at := range vj.AddedTokens {
		decoder[at.ID] = at.Content
	}

	ranks := make(map[mergePair]int, len(vj.Model.Merges))
	rank := 0
	for _, raw := range vj.Model.Merges {
		line := ""
		switch v := raw.(type) {
		case string:
			line = v
		case []any:
			if len(v) == 2 {
				a, aok := v[0].(string)
				b, bok := v[1].(string)
				if aok && bok {
					line = a + " " + b
				}
			}
		}
		parts := strings.Split(strings.TrimSpace(line), " ")
		if len(parts) != 2 {
			continue
		}
		p := mergePair{left: parts[0], right: parts[1]}
		if _, ok := ranks[p]; !ok {
			ranks[p] = rank
			rank++
		}
	}

	specialIDs := make(map[string]int)
	for _, at := range vj.AddedTokens {
		if at.Special {
			specialIDs[at.Content] = at.ID
		}
	}
	// Vocabularies without added_tokens metadata still mark turn boundaries
	// with <|...|> style tokens.
	for tok, id := range vj.Model.Vocab {
		if strings.HasPrefix(tok, "<|") && strings.HasSuffix(tok, "|>") {
			if _, ok := specialIDs[tok]; !ok {
				specialIDs[tok] = id
			}
		}
	}
	specials := make([]string, 0, len(specialIDs))
	for tok := range specialIDs {
		specials = append(specials, tok)
	}
	sortLongestFirst(specials)

	unkID := -1
	if vj.Model.UnkToken != "" {
		if id, ok := encoder[vj.Model.UnkToken]; ok {
			unkID = id
		}
	}

	byteEnc, byteDec := byteUnicodeTables()
	return &BPE{
		encoder:    encoder,
		decoder:    decoder,
		ranks:      ranks,
		cache:      make(map[string][]string),
		byteEnc:    byteEnc,
		byteDec:    byteDec,
		pattern:    buildPretokenizerPattern(vj),
		specials:   specials,
		specialIDs: specialIDs,
		unkID:      unkID,
	}, nil
}

func (t *BPE) Encode(text string) ([]int, error) {
	var ids []int
	for _, seg := range splitOnSpecials(text, t.specials) {
		if seg.special {
			ids = append(ids, t.specialIDs[seg.text])
			continue
		}
		for _, chunk := range t.pattern.FindAllString(seg.text, -1) {
			for _, piece := range t.merge(t.byteEncode(chunk)) {
				id, ok := t.encoder[piece]
				if !ok {
					if t.unkID < 0 {
						return nil, fmt.Errorf("unknown token: %q", piece)
					}
					id = t.unkID
				}
				ids = append(ids, id)
			}
		}
	}
	return ids, nil
}

// EncodeSpecial maps one special-token string to its single id.
func (t *BPE) EncodeSpecial(token string) (int, error) {
	if id, ok := t.specialIDs[token]; ok {
		return id, nil
	}
	return 0, fmt.Errorf("unknown special token: %q", token)
}

func (t *BPE) Decode(ids []int) (string, error) {
	var b []byte
	for _, id := range ids {
		if id < 0 || id >= len(t.decoder) {
			return "", fmt.Errorf("token id out of range: %d", id)
		}
		tok := t.decoder[id]
		if _, ok := t.specialIDs[tok]; ok {
			b = append(b, tok...)
			continue
		}
		for _, r := range tok {
			if by, ok := t.byteDec[string(r)]; ok {
				b = append(b, by)
			} else {
				b = append(b, string(r)...)
			}
		}
	}
	return string(b), nil
}

func (t *BPE) byteEncode(s string) string {
	var b strings.Builder
	for _, by := range []byte(s) {
		b.WriteString(t.byteEnc[by])
	}
	return b.String()
}

func (t *BPE) merge(token string) []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if cached, ok := t.cache[token]; ok {
		return cached
	}
	word := runeSplit(token)
	for len(word) > 1 {
		bestRank := int(^uint(0) >> 1)
		best := mergePair{}
		found := false
		for p := range adjacentPairs(word) {
			if r, ok := t.ranks[p]; ok && r < bestRank {
				bestRank = r
				best = p
				found = true
			}
		}
		if !found {
			break
		}
		word = applyMerge(word, best)
	}
	t.cache[token] = word
	return word
}

func buildPretokenizerPattern(vj vocabJSON) *regexp.Regexp {
	// GPT2-ish default.
	pat := `'s|'t|'re|'ve|'m|'ll|'d| ?\p{L}+| ?\p{N}+| ?[^\s\p{L}\p{N}]+|\s+`
	if vj.PreTokenizer.Type == "Sequence" {
		for _, p := range vj.PreTokenizer.Pretokenizers {
			if p.Type == "Split" && p.Pattern.Regex != "" {
				pat = p.Pattern.Regex
				break
			}
		}
	}
	// Llama3-style regexes use lookahead, which Go's regexp lacks. Swap in
	// the llama.cpp equivalent.
	if strings.Contains(pat, "(?!\\S)") || strings.Contains(pat, "(?i:") {
		pat = `(?:'[sS]|'[tT]|'[rR][eE]|'[vV][eE]|'[mM]|'[lL][lL]|'[dD])|[^\r\n\p{L}\p{N}]?\p{L}+|\p{N}{1,3}| ?[^\s\p{L}\p{N}]+[\r\n]*|\s*[\r\n]+|\s+`
	}
	return regexp.MustCompile(pat)
}
