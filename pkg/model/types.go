package model

import internalmodel "github.com/goliatone/go-typeinput/internal/model"

// ScalarKind re-exports the internal ScalarKind enumeration.
type ScalarKind = internalmodel.ScalarKind

const (
	KindInt    = internalmodel.KindInt
	KindFloat  = internalmodel.KindFloat
	KindString = internalmodel.KindString
	KindBool   = internalmodel.KindBool
	KindDate   = internalmodel.KindDate
	KindTime   = internalmodel.KindTime
)

type ChoiceSource = internalmodel.ChoiceSource

const (
	SourceEnum     = internalmodel.SourceEnum
	SourceLiteral  = internalmodel.SourceLiteral
	SourceProvider = internalmodel.SourceProvider
)

const (
	WidgetDropdown     = internalmodel.WidgetDropdown
	WidgetSlider       = internalmodel.WidgetSlider
	WidgetPassword     = internalmodel.WidgetPassword
	WidgetTextarea     = internalmodel.WidgetTextarea
	WidgetColor        = internalmodel.WidgetColor
	WidgetEmail        = internalmodel.WidgetEmail
	WidgetImageFile    = internalmodel.WidgetImageFile
	WidgetVideoFile    = internalmodel.WidgetVideoFile
	WidgetAudioFile    = internalmodel.WidgetAudioFile
	WidgetDataFile     = internalmodel.WidgetDataFile
	WidgetTextFile     = internalmodel.WidgetTextFile
	WidgetDocumentFile = internalmodel.WidgetDocumentFile
	WidgetFile         = internalmodel.WidgetFile
	WidgetText         = internalmodel.WidgetText
	WidgetNumber       = internalmodel.WidgetNumber
	WidgetCheckbox     = internalmodel.WidgetCheckbox
	WidgetDate         = internalmodel.WidgetDate
	WidgetTime         = internalmodel.WidgetTime
)

type FieldDescriptor = internalmodel.FieldDescriptor
type OptionalMeta = internalmodel.OptionalMeta
type ListMeta = internalmodel.ListMeta
type ChoiceMeta = internalmodel.ChoiceMeta
type ConstraintsMeta = internalmodel.ConstraintsMeta
type ItemUIMeta = internalmodel.ItemUIMeta
type FieldUIMeta = internalmodel.FieldUIMeta
type WidgetRule = internalmodel.WidgetRule
type WidgetResolver = internalmodel.WidgetResolver

// Error is the error type returned by builders and validators.
type Error = internalmodel.Error
type Category = internalmodel.Category
type Code = internalmodel.Code

const (
	CategoryShape           = internalmodel.CategoryShape
	CategoryExtraction      = internalmodel.CategoryExtraction
	CategoryChoice          = internalmodel.CategoryChoice
	CategoryConstraint      = internalmodel.CategoryConstraint
	CategoryCrossValidation = internalmodel.CategoryCrossValidation
	CategoryCoercion        = internalmodel.CategoryCoercion
)

// Codes reported by the value validator.
const (
	CodeTypeMismatch            = internalmodel.CodeTypeMismatch
	CodeCoercionFailed          = internalmodel.CodeCoercionFailed
	CodeEmptyStringNotAllowed   = internalmodel.CodeEmptyStringNotAllowed
	CodeRequiredFieldMissing    = internalmodel.CodeRequiredFieldMissing
	CodeNotASequence            = internalmodel.CodeNotASequence
	CodeEmptySequenceNotAllowed = internalmodel.CodeEmptySequenceNotAllowed
	CodeListLengthViolation     = internalmodel.CodeListLengthViolation
	CodeNotInOptions            = internalmodel.CodeNotInOptions
	CodeConstraintViolation     = internalmodel.CodeConstraintViolation
)

var (
	ErrShape           = internalmodel.ErrShape
	ErrExtraction      = internalmodel.ErrExtraction
	ErrChoice          = internalmodel.ErrChoice
	ErrConstraint      = internalmodel.ErrConstraint
	ErrCrossValidation = internalmodel.ErrCrossValidation
	ErrCoercion        = internalmodel.ErrCoercion

	ErrRequiredFieldMissing  = internalmodel.ErrRequiredFieldMissing
	ErrEmptyStringNotAllowed = internalmodel.ErrEmptyStringNotAllowed
	ErrConstraintViolation   = internalmodel.ErrConstraintViolation
	ErrListLengthViolation   = internalmodel.ErrListLengthViolation
	ErrNotInOptions          = internalmodel.ErrNotInOptions
	ErrSliderMissingBounds   = internalmodel.ErrSliderMissingBounds
)

// CodeOf returns the code of the first *Error in err's chain.
func CodeOf(err error) Code {
	return internalmodel.CodeOf(err)
}

// BuiltinWidgetRules returns the default widget rules in priority order.
func BuiltinWidgetRules() []WidgetRule {
	return internalmodel.BuiltinWidgetRules()
}

// ResolveWidget applies the default widget rules to d.
func ResolveWidget(d FieldDescriptor) string {
	return internalmodel.ResolveWidget(d)
}

// RefreshChoices re-invokes the dropdown provider of d.
func RefreshChoices(d FieldDescriptor) (FieldDescriptor, error) {
	return internalmodel.RefreshChoices(d)
}

// DefaultLabeler derives a display label from a field name.
func DefaultLabeler(name string) string {
	return internalmodel.DefaultLabeler(name)
}
