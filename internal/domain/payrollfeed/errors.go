package payrollfeed

import "errors"

// ErrSourceUnavailable signals that the provider could not be reached.
// The timeline builder logs it and falls through to the next source
// instead of failing the request.
var ErrSourceUnavailable = errors.New("payroll snapshot source unavailable")
