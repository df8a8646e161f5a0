// Package google builds the single authenticated HTTP client shared by every
// Google service adapter.
//
// The server authenticates with three secrets read at startup: an OAuth
// client ID, its client secret and a long-lived refresh token. Access tokens
// are minted and refreshed by golang.org/x/oauth2 as needed; nothing is
// written to disk.
package google
