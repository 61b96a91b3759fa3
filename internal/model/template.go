package model

import "fmt"

// TokenizeFunc maps a text string to an ordered sequence of token ids.
type TokenizeFunc func(text string) ([]int, error)

// TokenizeSpecialFunc maps a single special-token string to its token id.
type TokenizeSpecialFunc func(token string) (int, error)

// ConversationTemplate assembles a conversation into parallel token and
// loss-mask sequences plus the routing group label.
//
// The layout is an optional BOS token, the optional system prompt closed by
// an end-of-turn token, then each turn as role prefix followed by the turn
// value closed by an end-of-turn token, in input order. Mask positions are
// true exactly for the value and end-of-turn span of turns whose role is the
// config's AI role; prefixes, BOS and system tokens are never targets.
// len(tokens) == len(masks) on every successful return.
func (c *Config) ConversationTemplate(encode TokenizeFunc, encodeSpecial TokenizeSpecialFunc, turns []Turn, props *Props) (tokens []int, masks []bool, group int, err error) {
	span := func(ids []int, target bool) {
		tokens = append(tokens, ids...)
		for range ids {
			masks = append(masks, target)
		}
	}

	if c.BOSToken != "" {
		id, err := encodeSpecial(c.BOSToken)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encode bos token: %w", err)
		}
		span([]int{id}, false)
	}

	if c.System != "" {
		ids, err := encode(c.System)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encode system prompt: %w", err)
		}
		eot, err := encodeSpecial(c.EOTToken)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encode eot token: %w", err)
		}
		span(append(ids, eot), false)
	}

	for idx, turn := range turns {
		prefix, err := c.Prefix.Resolve(turn.From, props)
		if err != nil {
			return nil, nil, 0, err
		}
		ids, err := encode(prefix)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encode prefix for %q: %w", turn.From, err)
		}
		span(ids, false)

		if turn.Value == nil {
			if idx != len(turns)-1 {
				return nil, nil, 0, fmt.Errorf("%w: turn %d role %q", ErrDanglingTurn, idx, turn.From)
			}
			// Completion marker: the prefix is emitted, nothing else.
			continue
		}

		ids, err = encode(*turn.Value)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encode turn %d: %w", idx, err)
		}
		eot, err := encodeSpecial(c.EOTToken)
		if err != nil {
			return nil, nil, 0, fmt.Errorf("encode eot token: %w", err)
		}
		span(append(ids, eot), turn.From == c.AIRole)
	}

	if c.Group != nil {
		group = c.Group(props)
	}
	return tokens, masks, group, nil
}
