// Package errors provides custom error types for the foiafix system.
// These errors let the repair engine and the batch driver decide, by type,
// whether a failure is fatal for a document, collected for review, or only
// worth a warning.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// As is an alias for the standard library errors.As.
var As = errors.As

// Is is an alias for the standard library errors.Is.
var Is = errors.Is

// Common sentinel errors for the foiafix system
var (
	// ErrNotFound indicates that a requested registry record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnresolved indicates an abbreviation matched neither the registry nor a curated fix
	ErrUnresolved = errors.New("unresolved abbreviation")

	// ErrInvalidFix indicates a curated fix points at a value missing from the registry
	ErrInvalidFix = errors.New("invalid fix")

	// ErrStructuralAnomaly indicates a document's organization model disagrees with the registry
	ErrStructuralAnomaly = errors.New("structural anomaly")

	// ErrFieldTooLong indicates a free-text field exceeded its length bound
	ErrFieldTooLong = errors.New("field too long")

	// ErrDuplicateEntry indicates the registry lists the same component twice for one agency
	ErrDuplicateEntry = errors.New("duplicate registry entry")
)

// NotFoundError represents an error when a resource is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// UnresolvedAbbreviationError is returned when an abbreviation could not be
// mapped to a canonical registry value by any strategy.
type UnresolvedAbbreviationError struct {
	Raw        string
	Normalized string
	// Scope is "agency" for agency lookups, or the canonical agency
	// abbreviation for component lookups.
	Scope string
}

// Error implements the error interface
func (e *UnresolvedAbbreviationError) Error() string {
	if e.Scope == ScopeAgency {
		return fmt.Sprintf("agency abbreviation %q (normalized %q) not found in registry or fixes", e.Raw, e.Normalized)
	}
	return fmt.Sprintf("component abbreviation %q (normalized %q) not found in %s", e.Raw, e.Normalized, e.Scope)
}

// Is implements errors.Is support
func (e *UnresolvedAbbreviationError) Is(target error) bool {
	return target == ErrUnresolved
}

// ScopeAgency is the scope used for agency-level lookups.
const ScopeAgency = "agency"

// InvalidFixError reports a curated fix whose target is not itself registered.
type InvalidFixError struct {
	Scope string
	From  string
	To    string
}

// Error implements the error interface
func (e *InvalidFixError) Error() string {
	return fmt.Sprintf("fix %q => %q in %s points at an abbreviation that does not exist", e.From, e.To, e.Scope)
}

// Is implements errors.Is support
func (e *InvalidFixError) Is(target error) bool {
	return target == ErrInvalidFix
}

// Anomaly kinds reported by StructuralAnomalyError.
const (
	AnomalyMissingCentralComponent = "missing-central-component"
	AnomalySelfComponent           = "self-component"
	AnomalyCentralizedMismatch     = "centralized-mismatch"
	AnomalyDecentralizedMismatch   = "decentralized-mismatch"
)

// StructuralAnomalyError is a warning-level disagreement between the
// organization model in a document and the one in the registry.
type StructuralAnomalyError struct {
	Agency  string
	Kind    string
	Message string
}

// Error implements the error interface
func (e *StructuralAnomalyError) Error() string {
	return fmt.Sprintf("agency %s: %s", e.Agency, e.Message)
}

// Is implements errors.Is support
func (e *StructuralAnomalyError) Is(target error) bool {
	return target == ErrStructuralAnomaly
}

// FieldTooLongError records text removed from a document because it exceeded
// the schema length bound. Original holds the removed content for re-entry.
type FieldTooLongError struct {
	Field    string
	Length   int
	Limit    int
	Original string
}

// Error implements the error interface
func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("field %s is %d characters (limit %d)", e.Field, e.Length, e.Limit)
}

// Is implements errors.Is support
func (e *FieldTooLongError) Is(target error) bool {
	return target == ErrFieldTooLong
}

// DuplicateRegistryEntryError reports a component abbreviation listed more
// than once for the same agency.
type DuplicateRegistryEntryError struct {
	Agency       string
	Abbreviation string
	Count        int
}

// Error implements the error interface
func (e *DuplicateRegistryEntryError) Error() string {
	return fmt.Sprintf("component %q appears %d times in agency %s", e.Abbreviation, e.Count, e.Agency)
}

// Is implements errors.Is support
func (e *DuplicateRegistryEntryError) Is(target error) bool {
	return target == ErrDuplicateEntry
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{
		Component: component,
		Message:   message,
		Err:       err,
	}
}

// ParseError represents an error when parsing data formats
type ParseError struct {
	Format  string // "json", "yaml", "xml"
	File    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("parse error in %s file %s: %s", e.Format, e.File, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError
func NewParseError(format, file string, message string, err error) *ParseError {
	return &ParseError{
		Format:  format,
		File:    file,
		Message: message,
		Err:     err,
	}
}

// IOError represents an error during I/O operations
type IOError struct {
	Operation string // "read", "write", "create", "list"
	Path      string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("IO error during %s of %s: %s", e.Operation, e.Path, e.Message)
	}
	return fmt.Sprintf("IO error during %s: %s", e.Operation, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &IOError{
		Operation: operation,
		Path:      path,
		Message:   message,
		Err:       err,
	}
}

// DocumentError wraps a fatal failure for one report document. The batch
// driver records these and moves on to the next document.
type DocumentError struct {
	File  string
	Stage string
	Err   error
}

// Error implements the error interface
func (e *DocumentError) Error() string {
	if e.Stage != "" {
		return fmt.Sprintf("%s: failed at %s: %v", e.File, e.Stage, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DocumentError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsUnresolved checks if an error is an unresolved abbreviation error
func IsUnresolved(err error) bool {
	return errors.Is(err, ErrUnresolved)
}

// IsInvalidFix checks if an error is an invalid fix error
func IsInvalidFix(err error) bool {
	return errors.Is(err, ErrInvalidFix)
}

// IsStructuralAnomaly checks if an error is a structural anomaly
func IsStructuralAnomaly(err error) bool {
	return errors.Is(err, ErrStructuralAnomaly)
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, file string, err error) error {
	if err == nil {
		return nil
	}
	return NewParseError(format, file, err.Error(), err)
}

// WrapDocument wraps an error as a DocumentError
func WrapDocument(file, stage string, err error) error {
	if err == nil {
		return nil
	}
	return &DocumentError{File: file, Stage: stage, Err: err}
}
