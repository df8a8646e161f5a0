// Package sheets provides a thin client over the Google Sheets API v4 and
// the normalized result types returned by the spreadsheet tools.
package sheets
