package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"hospital-website-backend/internal/repository"
)

var (
	ErrNotFound           = repository.ErrNotFound
	ErrSlotTaken          = repository.ErrSlotTaken
	ErrDepartmentInUse    = repository.ErrDepartmentInUse
	ErrPastDate           = errors.New("appointment date is in the past")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrLockedOut          = errors.New("too many failed login attempts")
	ErrAdminExists        = errors.New("admin user already exists")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrSessionNotFound    = errors.New("session not found or expired")
)

// ValidationError carries per-field messages for a 400 response
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s: %s", k, e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// fieldError builds a single-field ValidationError
func fieldError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}
