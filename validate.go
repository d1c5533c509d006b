package main

import (
	"regexp"

	"github.com/pkg/errors"
)

// Validator checks table names, column names and type tokens before they
// are spliced into statement text. Build one with NewValidator at startup.
type Validator struct {
	identifier *regexp.Regexp
	sqlType    *regexp.Regexp
}

// NewValidator compiles the identifier and type patterns.
func NewValidator() *Validator {
	return &Validator{
		identifier: regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`),
		sqlType:    regexp.MustCompile(`^[A-Za-z_](?:[A-Za-z0-9_ ]*[A-Za-z0-9_])?$`),
	}
}

// IsValidIdentifier reports whether s may be used as a table or column name.
func (v *Validator) IsValidIdentifier(s string) bool {
	return v.identifier.MatchString(s)
}

// IsValidType reports whether s may be used as a column type, including
// modifiers separated by single words ("VARCHAR NOT NULL").
func (v *Validator) IsValidType(s string) bool {
	return v.sqlType.MatchString(s)
}

// CheckIdentifier is IsValidIdentifier as an ErrValidation error.
func (v *Validator) CheckIdentifier(s string) error {
	if !v.IsValidIdentifier(s) {
		return errors.Wrapf(ErrValidation, "%q is not a valid identifier", s)
	}
	return nil
}

// CheckType is IsValidType as an ErrValidation error.
func (v *Validator) CheckType(s string) error {
	if !v.IsValidType(s) {
		return errors.Wrapf(ErrValidation, "%q is not a valid column type", s)
	}
	return nil
}
