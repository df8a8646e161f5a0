package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	sheets "google.golang.org/api/sheets/v4"
)

// Major dimensions accepted by the values endpoints
const (
	DimensionRows    = "ROWS"
	DimensionColumns = "COLUMNS"
)

// Value input options accepted by update and append
const (
	InputRaw         = "RAW"
	InputUserEntered = "USER_ENTERED"
)

// Client wraps the Google Sheets API service
type Client struct {
	service *sheets.Service
}

// NewClient creates a Sheets client from the shared client options
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Sheets service: %w", err)
	}
	return &Client{service: service}, nil
}

// GetSpreadsheet retrieves spreadsheet metadata without cell data
func (c *Client) GetSpreadsheet(ctx context.Context, spreadsheetID string) (*sheets.Spreadsheet, error) {
	s, err := c.service.Spreadsheets.Get(spreadsheetID).
		IncludeGridData(false).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get spreadsheet %s: %w", spreadsheetID, err)
	}
	return s, nil
}

// CreateSpreadsheet creates a spreadsheet, optionally with named sheets
func (c *Client) CreateSpreadsheet(ctx context.Context, title string, sheetTitles []string) (*sheets.Spreadsheet, error) {
	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}
	for _, name := range sheetTitles {
		spreadsheet.Sheets = append(spreadsheet.Sheets, &sheets.Sheet{
			Properties: &sheets.SheetProperties{Title: name},
		})
	}

	s, err := c.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to create spreadsheet %q: %w", title, err)
	}
	return s, nil
}

// GetValues reads a range in the given major dimension
func (c *Client) GetValues(ctx context.Context, spreadsheetID, readRange, majorDimension string) (*sheets.ValueRange, error) {
	call := c.service.Spreadsheets.Values.Get(spreadsheetID, readRange)
	if majorDimension != "" {
		call = call.MajorDimension(majorDimension)
	}
	vr, err := call.Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s of spreadsheet %s: %w", readRange, spreadsheetID, err)
	}
	return vr, nil
}

// UpdateValues overwrites a range
func (c *Client) UpdateValues(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}, inputOption string) (*sheets.UpdateValuesResponse, error) {
	resp, err := c.service.Spreadsheets.Values.Update(spreadsheetID, writeRange, &sheets.ValueRange{
		Range:  writeRange,
		Values: values,
	}).ValueInputOption(inputOption).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update range %s of spreadsheet %s: %w", writeRange, spreadsheetID, err)
	}
	return resp, nil
}

// AppendValues appends rows after the table found in a range
func (c *Client) AppendValues(ctx context.Context, spreadsheetID, appendRange string, values [][]interface{}, inputOption string) (*sheets.AppendValuesResponse, error) {
	resp, err := c.service.Spreadsheets.Values.Append(spreadsheetID, appendRange, &sheets.ValueRange{
		Values: values,
	}).ValueInputOption(inputOption).InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to append to range %s of spreadsheet %s: %w", appendRange, spreadsheetID, err)
	}
	return resp, nil
}

// ClearValues clears the values of a range, keeping formatting
func (c *Client) ClearValues(ctx context.Context, spreadsheetID, clearRange string) (*sheets.ClearValuesResponse, error) {
	resp, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to clear range %s of spreadsheet %s: %w", clearRange, spreadsheetID, err)
	}
	return resp, nil
}

// BatchUpdate applies structural requests (add sheet, formatting, ...) to a spreadsheet
func (c *Client) BatchUpdate(ctx context.Context, spreadsheetID string, requests []*sheets.Request) (*sheets.BatchUpdateSpreadsheetResponse, error) {
	resp, err := c.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to update spreadsheet %s: %w", spreadsheetID, err)
	}
	return resp, nil
}
