// Package gmail provides a client for the Gmail API covering messages,
// threads and labels of the authenticated user.
//
// Listing messages or threads is a two-step operation: one list call returns
// bare identifiers, then one metadata fetch per identifier runs concurrently.
// Results keep the order of the list call regardless of which fetch finishes
// first, and the first failed fetch fails the whole listing.
//
// Message bodies are extracted from the MIME part tree by ExtractBody: the
// first text/plain part wins, then the first text/html part with its markup
// stripped, then the first non-empty result of descending into child parts.
//
// Example usage:
//
//	client, err := gmail.NewClient(ctx, option.WithHTTPClient(httpClient))
//	if err != nil {
//	    return err
//	}
//
//	messages, next, err := client.ListMessages(ctx, gmail.ListOptions{
//	    Query:      "is:unread",
//	    MaxResults: 20,
//	})
package gmail
