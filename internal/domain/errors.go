package domain

import "errors"

var (
	ErrEmptyEventName           = errors.New("event name is empty")
	ErrUnsupportedFieldValue    = errors.New("unsupported field value")
	ErrUnknownStepAction        = errors.New("unknown step action")
	ErrUnsupportedScriptVersion = errors.New("unsupported script version")
)
