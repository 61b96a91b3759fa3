package model

import "fmt"

// Turn is one entry of a conversation. A nil Value is only legal on the
// final turn and means "generate the completion from here".
type Turn struct {
	From  string  `json:"from"`
	Value *string `json:"value,omitempty"`
}

// Props is the provenance side channel attached to a conversation. Callers
// pass nil when the metadata is unknown, which is the normal inference case.
type Props struct {
	GPT4 bool `json:"is_gpt4"`
}

// GroupFunc maps conversation provenance to an integer routing label.
type GroupFunc func(props *Props) int

// PrefixResolver computes a role prefix from the role name and the
// conversation's provenance metadata.
type PrefixResolver func(role string, props *Props) (string, error)

// RolePrefix is either a fixed role-to-prefix table or a computed resolver.
// The zero value resolves nothing and fails for every role.
type RolePrefix struct {
	table map[string]string
	fn    PrefixResolver
}

// PrefixTable builds a RolePrefix backed by a fixed lookup table.
func PrefixTable(table map[string]string) RolePrefix {
	return RolePrefix{table: table}
}

// PrefixFunc builds a RolePrefix backed by a resolver function.
func PrefixFunc(fn PrefixResolver) RolePrefix {
	return RolePrefix{fn: fn}
}

// Resolve returns the prefix string for role. Table misses fail with
// ErrUnknownRole.
func (p RolePrefix) Resolve(role string, props *Props) (string, error) {
	if p.fn != nil {
		return p.fn(role, props)
	}
	prefix, ok := p.table[role]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
	return prefix, nil
}

// Conditional reports whether the prefix depends on provenance metadata.
func (p RolePrefix) Conditional() bool {
	return p.fn != nil
}

// Config is one immutable prompt-template configuration. Records are built
// once by the registry constructors and never mutated afterwards.
type Config struct {
	Name string

	// Prompt
	System   string
	Prefix   RolePrefix
	AIRole   string
	EOTToken string
	BOSToken string

	// Label
	Group GroupFunc

	// Model
	MaxContext int
	Model      *ModelFactory
	Tokenizer  *TokenizerFactory
}
