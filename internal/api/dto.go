package api

import "github.com/samcharles93/promptkit/internal/model"

// TemplateRequest asks for one conversation to be assembled under a named
// config.
type TemplateRequest struct {
	Config string       `json:"config"`
	Items  []model.Turn `json:"items"`
	Props  *model.Props `json:"props,omitempty"`
}

type TemplateResponse struct {
	ID     string `json:"id"`
	Config string `json:"config"`
	Tokens []int  `json:"tokens"`
	Masks  []bool `json:"masks"`
	Group  int    `json:"group"`
}

// ConfigInfo is the registry listing entry. Name is the registry key,
// DisplayName the config's own name.
type ConfigInfo struct {
	Name              string `json:"name"`
	DisplayName       string `json:"display_name"`
	AIRole            string `json:"ai_role"`
	EOTToken          string `json:"eot_token"`
	BOSToken          string `json:"bos_token,omitempty"`
	System            string `json:"system,omitempty"`
	MaxContext        int    `json:"max_context,omitempty"`
	ConditionalPrefix bool   `json:"conditional_prefix"`
	Grouped           bool   `json:"grouped"`
}

type ResponseError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
}
