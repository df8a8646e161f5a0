package render

// Page is the envelope of every list result. NextPageToken is opaque and
// must be passed back verbatim; it serializes as null on the last page.
type Page[T any] struct {
	Items         []T     `json:"items"`
	Count         int     `json:"count"`
	NextPageToken *string `json:"next_page_token"`
}

// NewPage wraps items and the remote page token.
func NewPage[T any](items []T, nextPageToken string) Page[T] {
	if items == nil {
		items = []T{}
	}
	p := Page[T]{Items: items, Count: len(items)}
	if nextPageToken != "" {
		p.NextPageToken = &nextPageToken
	}
	return p
}

// HasMore reports whether another page is available.
func (p Page[T]) HasMore() bool {
	return p.NextPageToken != nil
}
