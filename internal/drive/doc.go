// Package drive provides a client for the Google Drive API v3.
//
// It covers two families of operations:
//   - Files: listing and searching, metadata retrieval, deletion
//   - Comments: listing, retrieval, creation, resolution and deletion of
//     comment threads, and listing and creation of replies
//
// Comments keep their replies in the order the API returns them. Missing
// author names and timestamps are normalized to "Unknown".
//
// Example usage:
//
//	client, err := drive.NewClient(ctx, option.WithHTTPClient(httpClient))
//	if err != nil {
//	    return err
//	}
//
//	comments, next, err := client.ListComments(ctx, fileID, drive.CommentListOptions{PageSize: 20})
package drive
