package models

import (
	"fmt"
	"strings"
)

type ExtractionErrorCode string

const (
	ExtractionUnsupportedFormat ExtractionErrorCode = "unsupported_format"
	ExtractionCorruptDocument   ExtractionErrorCode = "corrupt_document"
	ExtractionNoText            ExtractionErrorCode = "no_text"
)

// ExtractionError is returned when a document yields no usable text.
type ExtractionError struct {
	Code    ExtractionErrorCode
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}

func NewUnsupportedFormatError(ext string) *ExtractionError {
	return &ExtractionError{
		Code:    ExtractionUnsupportedFormat,
		Message: fmt.Sprintf("Unsupported file format: %s. Please upload PDF, DOCX, TXT, or image files.", ext),
	}
}

func NewCorruptDocumentError(format string, cause error) *ExtractionError {
	return &ExtractionError{
		Code:    ExtractionCorruptDocument,
		Message: fmt.Sprintf("Could not read %s document", strings.ToUpper(strings.TrimPrefix(format, "."))),
		Cause:   cause,
	}
}

func NewNoTextError() *ExtractionError {
	return &ExtractionError{
		Code:    ExtractionNoText,
		Message: "Could not extract any text from the document",
	}
}

// ParseError keeps the raw model output for diagnosis.
type ParseError struct {
	Raw   string
	Cause error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to parse model response: %v", e.Cause)
	}
	return "failed to parse model response"
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

type ServiceErrorKind string

const (
	ServiceErrorAuth      ServiceErrorKind = "auth"
	ServiceErrorQuota     ServiceErrorKind = "quota"
	ServiceErrorTransport ServiceErrorKind = "transport"
)

// ServiceError wraps a failed call to the generative model.
type ServiceError struct {
	Kind  ServiceErrorKind
	Op    string
	Cause error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Op, e.Kind, e.Cause)
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// ValidationError reports missing or invalid caller input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
