package app

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrUserExists        = errors.New("user already exists")
	ErrUserNotFound      = errors.New("user not found")
	ErrTooManyAttempts   = errors.New("too many login attempts")

	ErrProfileNotFound    = errors.New("profile not found")
	ErrExperienceNotFound = errors.New("experience not found")
	ErrEducationNotFound  = errors.New("education not found")

	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")

	ErrForbidden = errors.New("not authorized")
)

type FieldError struct {
	Param string `json:"param,omitempty"`
	Msg   string `json:"msg"`
}

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Msg)
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

type validator struct {
	fields []FieldError
}

func (v *validator) require(param, value, msg string) {
	if strings.TrimSpace(value) == "" {
		v.add(param, msg)
	}
}

func (v *validator) add(param, msg string) {
	v.fields = append(v.fields, FieldError{Param: param, Msg: msg})
}

func (v *validator) err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return &ValidationError{Fields: v.fields}
}
