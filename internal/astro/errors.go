package astro

import "errors"

// Errors returned by the calculation core. Callers match them with errors.Is;
// the returned errors wrap these with the offending input.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrParse           = errors.New("cannot parse")
	ErrDomain          = errors.New("value out of domain")
	ErrConvergence     = errors.New("iteration did not converge")
)
