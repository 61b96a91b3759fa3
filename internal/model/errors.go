package model

import "errors"

var (
	ErrUnknownRole   = errors.New("unknown conversation role")
	ErrUnknownConfig = errors.New("unknown model config")
	ErrDanglingTurn  = errors.New("turn without value before end of conversation")
)
