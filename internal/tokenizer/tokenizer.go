package tokenizer

// Tokenizer is the collaborator surface the template assembler needs:
// plain text to token ids, one special-token string to exactly one id, and
// ids back to text for inspection.
type Tokenizer interface {
	Encode(text string) ([]int, error)
	EncodeSpecial(token string) (int, error)
	Decode(ids []int) (string, error)
}
