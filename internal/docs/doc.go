// Package docs provides functionality for interacting with the Google Docs API.
//
// The Client wraps document retrieval, creation and batch updates. Fetched
// documents are flattened to plain text by ExtractText: paragraph text runs
// are concatenated in document order and every table is replaced by the
// [TABLE] placeholder without walking its cells.
//
// Example usage:
//
//	client, err := docs.NewClient(ctx, option.WithHTTPClient(httpClient))
//	if err != nil {
//	    return err
//	}
//
//	doc, err := client.GetDocument(ctx, "1ABC123xyz")
//	if err != nil {
//	    return err
//	}
//
//	text := docs.ExtractText(doc)
package docs
