package google

import (
	docs "google.golang.org/api/docs/v1"
	drive "google.golang.org/api/drive/v3"
	gmail "google.golang.org/api/gmail/v1"
	sheets "google.golang.org/api/sheets/v4"
)

// DefaultOAuthScopes are the scopes the refresh token is expected to carry.
//
// The scopes provide access to:
//   - Google Docs: read and write documents
//   - Google Sheets: read and write spreadsheets
//   - Google Drive: files, comments and replies
//   - Gmail: read messages, modify labels and manage labels
var DefaultOAuthScopes = []string{
	docs.DocumentsScope,
	sheets.SpreadsheetsScope,
	drive.DriveScope,
	gmail.GmailModifyScope,
	gmail.GmailLabelsScope,
}
