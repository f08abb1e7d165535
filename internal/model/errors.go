package model

import (
	"errors"
	"fmt"
	"strings"
)

// Category groups error codes by the stage that raised them.
type Category string

const (
	CategoryShape           Category = "shape"
	CategoryExtraction      Category = "extraction"
	CategoryChoice          Category = "choice"
	CategoryConstraint      Category = "constraint"
	CategoryCrossValidation Category = "cross_validation"
	CategoryCoercion        Category = "coercion"
)

// Code identifies a single failure condition.
type Code string

const (
	CodeInvalidShape              Code = "InvalidShape"
	CodeUnsupportedType           Code = "UnsupportedType"
	CodeDuplicateAbsenceMarker    Code = "DuplicateAbsenceMarker"
	CodeUnsupportedUnion          Code = "UnsupportedUnion"
	CodeNestedListsUnsupported    Code = "NestedListsUnsupported"
	CodeInvalidListLevelMetadata  Code = "InvalidListLevelMetadata"
	CodeMissingListItemType       Code = "MissingListItemType"
	CodeItemLevelLabel            Code = "ItemLevelLabelNotAllowed"
	CodeItemLevelDescription      Code = "ItemLevelDescriptionNotAllowed"
	CodeInvalidFragment           Code = "InvalidFragment"
	CodeUnexpectedMetadata        Code = "UnexpectedMetadata"
	CodeProviderNotCallable       Code = "ProviderNotCallable"
	CodeProviderFailed            Code = "ProviderFailed"
	CodeProviderReturnedEmpty     Code = "ProviderReturnedEmpty"
	CodeProviderNonSequence       Code = "ProviderReturnedNonSequence"
	CodeProviderMixedTypes        Code = "ProviderReturnedMixedTypes"
	CodeProviderTypeMismatch      Code = "ProviderTypeMismatch"
	CodeEmptyEnum                 Code = "EmptyEnum"
	CodeMixedEnumValueTypes       Code = "MixedEnumValueTypes"
	CodeEmptyLiteral              Code = "EmptyLiteral"
	CodeMixedLiteralTypes         Code = "MixedLiteralTypes"
	CodeUnsupportedChoiceValue    Code = "UnsupportedChoiceValue"
	CodeInvalidConstraint         Code = "InvalidConstraint"
	CodeSliderMissingBounds       Code = "SliderMissingBounds"
	CodeSliderWrongType           Code = "SliderWrongType"
	CodeDefaultViolatesConstraint Code = "DefaultViolatesConstraints"
	CodeDefaultNotInOptions       Code = "DefaultNotInOptions"
	CodeTypeMismatch              Code = "TypeMismatch"
	CodeCoercionFailed            Code = "CoercionFailed"
	CodeEmptyStringNotAllowed     Code = "EmptyStringNotAllowed"
	CodeRequiredFieldMissing      Code = "RequiredFieldMissing"
	CodeNotASequence              Code = "NotASequence"
	CodeEmptySequenceNotAllowed   Code = "EmptySequenceNotAllowed"
	CodeListLengthViolation       Code = "ListLengthViolation"
	CodeNotInOptions              Code = "NotInOptions"
	CodeConstraintViolation       Code = "ConstraintViolation"
)

// Error is the single error type returned by the builder and the validator.
// Bound and Value are set for constraint and length violations. Index is the
// list position of the offending item, or -1.
type Error struct {
	Category Category
	Code     Code
	Field    string
	Message  string
	Bound    any
	Value    any
	Index    int
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Field != "" {
		b.WriteString("[")
		b.WriteString(e.Field)
		b.WriteString("] ")
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, "item %d: ", e.Index)
	}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(string(e.Code))
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error on Code, or on Category when the target carries
// no code. The sentinel values below rely on this.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code != "" {
		return t.Code == e.Code
	}
	return t.Category != "" && t.Category == e.Category
}

// Sentinels usable with errors.Is.
var (
	ErrShape           = &Error{Category: CategoryShape}
	ErrExtraction      = &Error{Category: CategoryExtraction}
	ErrChoice          = &Error{Category: CategoryChoice}
	ErrConstraint      = &Error{Category: CategoryConstraint}
	ErrCrossValidation = &Error{Category: CategoryCrossValidation}
	ErrCoercion        = &Error{Category: CategoryCoercion}

	ErrRequiredFieldMissing  = &Error{Code: CodeRequiredFieldMissing}
	ErrEmptyStringNotAllowed = &Error{Code: CodeEmptyStringNotAllowed}
	ErrConstraintViolation   = &Error{Code: CodeConstraintViolation}
	ErrListLengthViolation   = &Error{Code: CodeListLengthViolation}
	ErrNotInOptions          = &Error{Code: CodeNotInOptions}
	ErrSliderMissingBounds   = &Error{Code: CodeSliderMissingBounds}
)

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code
	}
	return ""
}

func newError(cat Category, code Code, field, format string, args ...any) *Error {
	return &Error{
		Category: cat,
		Code:     code,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
		Index:    -1,
	}
}

func shapeError(field string, code Code, format string, args ...any) *Error {
	return newError(CategoryShape, code, field, format, args...)
}

func extractionError(field string, code Code, format string, args ...any) *Error {
	return newError(CategoryExtraction, code, field, format, args...)
}

func choiceError(field string, code Code, format string, args ...any) *Error {
	return newError(CategoryChoice, code, field, format, args...)
}

func constraintError(field string, code Code, format string, args ...any) *Error {
	return newError(CategoryConstraint, code, field, format, args...)
}

func crossError(field string, code Code, format string, args ...any) *Error {
	return newError(CategoryCrossValidation, code, field, format, args...)
}

func coercionError(field string, code Code, format string, args ...any) *Error {
	return newError(CategoryCoercion, code, field, format, args...)
}

// withField returns a copy of err bound to field when err is an *Error
// without one.
func withField(err error, field string) error {
	var typed *Error
	if !errors.As(err, &typed) || typed.Field != "" {
		return err
	}
	clone := *typed
	clone.Field = field
	return &clone
}
