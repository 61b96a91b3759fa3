package model

import (
	"fmt"
	"sort"
)

// Registry is the read-only lookup surface for named configs. Build it once
// with NewRegistry and hand it by reference to consumers; it is safe for
// concurrent use.
type Registry struct {
	configs map[string]*Config
}

func NewRegistry() *Registry {
	return &Registry{
		configs: map[string]*Config{
			"openchat_8192": openChat8192Config(),
			"openchat":      openChatConfig(),
			"openchat_v2":   openChatV2Config(),
			"opencoder":     openCoderConfig(),
		},
	}
}

// Lookup returns the config registered under name.
func (r *Registry) Lookup(name string) (*Config, error) {
	cfg, ok := r.configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownConfig, name)
	}
	return cfg, nil
}

// Names returns the registered config names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OpenChat 8192
func openChat8192Config() *Config {
	return &Config{
		Name: "OpenChat_8192",

		Prefix: PrefixTable(map[string]string{
			"human": "Human: ",
			"gpt":   "Assistant: ",
		}),
		AIRole:   "gpt",
		EOTToken: "<|end_of_turn|>",
		BOSToken: "<s>",

		MaxContext: 8192,
		Model: &ModelFactory{
			Arch:          "unpadded_llama",
			ExtendContext: 8192,
			LowCPUMem:     true,
			DType:         "bfloat16",
		},
		Tokenizer: &TokenizerFactory{
			Kind:         "auto",
			UseFast:      false,
			UseAuthToken: true,
		},
	}
}

// OpenChat
func openChatConfig() *Config {
	return &Config{
		Name: "OpenChat",

		Prefix: PrefixTable(map[string]string{
			"human": "Human: ",
			"gpt":   "Assistant: ",
		}),
		AIRole:   "gpt",
		EOTToken: "<|end_of_turn|>",
		BOSToken: "<s>",

		MaxContext: 2048,
		Model: &ModelFactory{
			Arch:      "unpadded_llama",
			LowCPUMem: true,
			DType:     "bfloat16",
		},
		Tokenizer: &TokenizerFactory{
			Kind:         "auto",
			UseFast:      false,
			UseAuthToken: true,
		},
	}
}

// OpenChat v2: near-duplicate variants share one base model and are routed
// by the group label, so the assistant prefix depends on answer provenance.
func openChatV2Config() *Config {
	return &Config{
		Name: "OpenChat_v2",

		Prefix:   PrefixFunc(v2ConditionalPrefix),
		AIRole:   "gpt",
		EOTToken: "<|end_of_turn|>",
		BOSToken: "<s>",

		Group: v2Group,

		MaxContext: 2048,
		Model: &ModelFactory{
			Arch:      "unpadded_llama",
			LowCPUMem: true,
			DType:     "bfloat16",
		},
		Tokenizer: &TokenizerFactory{
			Kind:         "auto",
			UseFast:      false,
			UseAuthToken: true,
		},
	}
}

// OpenCoder / OpenCoderPlus
func openCoderConfig() *Config {
	return &Config{
		Name: "OpenCoder",

		Prefix: PrefixTable(map[string]string{
			"human": "User:",
			"gpt":   "Assistant:",
		}),
		AIRole:   "gpt",
		EOTToken: "<|end_of_turn|>",

		MaxContext: 8192,
		Model: &ModelFactory{
			Arch:      "gpt_bigcode",
			LowCPUMem: true,
			DType:     "bfloat16",
		},
		Tokenizer: &TokenizerFactory{
			Kind:         "auto",
			UseFast:      false,
			UseAuthToken: true,
		},
	}
}

func v2ConditionalPrefix(role string, props *Props) (string, error) {
	const (
		humanPrefix = "User:"
		gpt4Prefix  = "Assistant GPT4:"
		otherPrefix = "Assistant GPT3:"
	)

	switch role {
	case "human":
		return humanPrefix, nil
	case "gpt":
		if props == nil {
			// Inference with unknown provenance uses the GPT-4 prefix.
			return gpt4Prefix, nil
		}
		if props.GPT4 {
			return gpt4Prefix, nil
		}
		return otherPrefix, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

func v2Group(props *Props) int {
	if props == nil || props.GPT4 {
		return 1
	}
	return 0
}
