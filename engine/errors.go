/*
errors.go - Centralized error types for the wage engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers should classify with errors.Is / errors.As, never by string.

ERROR CATEGORIES:
  1. Configuration errors - A company is missing its default rate.
     Fatal to the whole payroll run for that company.
  2. Shift errors - A single malformed shift. Localized: the batch
     skips the shift, records it, and keeps going.
  3. Store errors - Invariant violations on rate/holiday rows.

USAGE:
  if errors.Is(err, engine.ErrNoDefaultRate) {
      // abort the company's run, no partial results
  }

SEE ALSO:
  - rate.go: Returns ConfigurationError
  - bucket.go: Returns InvalidShiftError
  - batch.go: Classifies both during a run
*/
package engine

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrNoDefaultRate is returned when a company has no active default
	// pay rate. Every company must carry exactly one; this is enforced
	// at provisioning time, so hitting it mid-run is a configuration bug.
	ErrNoDefaultRate = errors.New("no active default pay rate for company")

	// ErrInvalidShift is returned for shifts that cannot be priced:
	// departure at or before arrival, or non-positive duration.
	ErrInvalidShift = errors.New("invalid shift")

	// ErrRateNotFound is returned when a referenced pay rate doesn't exist.
	ErrRateNotFound = errors.New("pay rate not found")

	// ErrShiftNotFound is returned when a referenced shift doesn't exist.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrDuplicateActiveRate is returned when saving a rate would leave a
	// company with two active defaults, or a driver with two active
	// overrides.
	ErrDuplicateActiveRate = errors.New("duplicate active pay rate for scope")

	// ErrDefaultRateProtected is returned when attempting to delete a
	// company's default rate. Defaults are only ever edited in place.
	ErrDefaultRateProtected = errors.New("default pay rate cannot be deleted")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// ConfigurationError reports a company whose rate configuration cannot
// support a payroll run. Fatal for that company's batch.
type ConfigurationError struct {
	CompanyID CompanyID
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("company %s: no active default pay rate", e.CompanyID)
}

func (e *ConfigurationError) Unwrap() error { return ErrNoDefaultRate }

// InvalidShiftError reports a single shift that cannot be priced.
// Localized: skip the shift and continue the run.
type InvalidShiftError struct {
	ShiftID ShiftID
	Reason  string
}

func (e *InvalidShiftError) Error() string {
	return fmt.Sprintf("shift %s: %s", e.ShiftID, e.Reason)
}

func (e *InvalidShiftError) Unwrap() error { return ErrInvalidShift }

// RateValidationError reports a structurally invalid pay rate.
type RateValidationError struct {
	Field  string
	Reason string
}

func (e *RateValidationError) Error() string {
	return fmt.Sprintf("pay rate %s: %s", e.Field, e.Reason)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsFatalForCompany returns true if err must abort the whole run for a
// company (no partial results).
func IsFatalForCompany(err error) bool {
	return errors.Is(err, ErrNoDefaultRate)
}

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	var rv *RateValidationError
	return errors.Is(err, ErrInvalidShift) ||
		errors.Is(err, ErrDuplicateActiveRate) ||
		errors.Is(err, ErrDefaultRateProtected) ||
		errors.As(err, &rv)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrRateNotFound) ||
		errors.Is(err, ErrShiftNotFound)
}
