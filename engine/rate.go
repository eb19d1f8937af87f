/*
rate.go - Pay rate resolution

PURPOSE:
  Answers "which PayRate applies to this driver?". A driver-specific
  override wins; otherwise the company default applies. A company with
  no active default is a configuration error - every company is
  provisioned with exactly one default, and that row is only ever
  edited, never deleted.

RESOLUTION ORDER:
  1. Active override for (company, driver)  -> use it
  2. Active default for company             -> use it
  3. Neither                                -> ConfigurationError

REMOVING AN OVERRIDE:
  Deleting a driver's override row reverts the driver to the company
  default on the next Resolve call. There is no tombstone state.

WEEKLY OVERTIME NOTE:
  PayRate carries WeeklyOvertimeThresholdMinutes for configuration
  compatibility, but classification applies only the daily threshold.
  See bucket.go.

SEE ALSO:
  - bucket.go: Consumes the resolved rate's window and threshold
  - wage.go: Consumes the resolved rate's prices
*/
package engine

import "context"

// =============================================================================
// RATE SOURCE - Where pay rates come from
// =============================================================================

// RateSource provides active pay rate lookups. Implementations return
// (nil, nil) when no matching active row exists.
type RateSource interface {
	// ActiveDefaultRate returns the company-wide default rate.
	ActiveDefaultRate(ctx context.Context, companyID CompanyID) (*PayRate, error)

	// ActiveOverrideRate returns the driver-specific override, if any.
	ActiveOverrideRate(ctx context.Context, companyID CompanyID, driverID DriverID) (*PayRate, error)
}

// =============================================================================
// RATE RESOLVER
// =============================================================================

// RateResolver resolves the applicable rate for a driver.
type RateResolver struct {
	Source RateSource
}

// NewRateResolver creates a resolver over the given source.
func NewRateResolver(source RateSource) *RateResolver {
	return &RateResolver{Source: source}
}

// Resolve returns the driver's override if one is active, else the
// company default. Returns ConfigurationError when the company has no
// active default rate.
func (r *RateResolver) Resolve(ctx context.Context, companyID CompanyID, driverID DriverID) (PayRate, error) {
	override, err := r.Source.ActiveOverrideRate(ctx, companyID, driverID)
	if err != nil {
		return PayRate{}, err
	}
	if override != nil {
		return *override, nil
	}

	def, err := r.Source.ActiveDefaultRate(ctx, companyID)
	if err != nil {
		return PayRate{}, err
	}
	if def == nil {
		return PayRate{}, &ConfigurationError{CompanyID: companyID}
	}
	return *def, nil
}
