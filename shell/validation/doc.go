// Package validation checks operator input for the catalog commands with go-playground/validator.
//
// Failures are returned as ValidationErrors, which match core.ErrInvalidInput with errors.Is.
package validation
