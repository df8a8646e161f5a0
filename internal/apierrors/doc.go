// Package apierrors turns failures raised while calling Google APIs into one
// of a small, closed set of human-readable messages.
//
// Classification prefers structured signals (the HTTP status carried by a
// *googleapi.Error, the error code of an *oauth2.RetrieveError). When none is
// available it falls back to substring matching on the failure text, checked
// in a fixed priority order:
//
//	401 or invalid_grant  authentication failure
//	403                   permission denied
//	404                   not found
//	429                   rate limited
//	400                   invalid request (original text included)
//	anything else         generic failure (original text included)
//
// Classify never panics and is safe to call with any value, including
// recovered panic values that are not errors.
package apierrors
