package model

// ModelFactory describes how the downstream trainer or server should
// construct the base model for a config. promptkit only stores the
// descriptor; it never constructs models itself.
type ModelFactory struct {
	Arch          string
	ExtendContext int
	LowCPUMem     bool
	DType         string
}

// TokenizerFactory describes how to construct the matching tokenizer.
type TokenizerFactory struct {
	Kind         string
	UseFast      bool
	UseAuthToken bool
}
