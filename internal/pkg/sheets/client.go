// Package sheets appends rows to a Google Sheets worksheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

const DefaultWorksheet = "Sheet1"

// RowAppender appends one row after the last row of a worksheet.
type RowAppender interface {
	AppendRow(ctx context.Context, row []interface{}) error
}

type Config struct {
	SpreadsheetId   string
	Worksheet       string
	CredentialsJSON []byte
}

type Client struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetId string
	appendRange   string
}

// New builds a client from service-account credentials. Extra options are
// appended after the credentials.
func New(ctx context.Context, cfg Config, opts ...option.ClientOption) (*Client, error) {
	if cfg.SpreadsheetId == "" {
		return nil, errors.New("spreadsheet id is required")
	}
	worksheet := cfg.Worksheet
	if worksheet == "" {
		worksheet = DefaultWorksheet
	}

	clientOpts := make([]option.ClientOption, 0, len(opts)+1)
	if len(cfg.CredentialsJSON) > 0 {
		creds, err := google.CredentialsFromJSON(ctx, cfg.CredentialsJSON, gsheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("parse sheets credentials: %w", err)
		}
		clientOpts = append(clientOpts, option.WithCredentials(creds))
	}
	clientOpts = append(clientOpts, opts...)

	svc, err := gsheets.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		values:        gsheets.NewSpreadsheetsValuesService(svc),
		spreadsheetId: cfg.SpreadsheetId,
		appendRange:   fmt.Sprintf("'%s'!A1", strings.ReplaceAll(worksheet, "'", "''")),
	}, nil
}

// AppendRow writes values as-is (RAW), so user text starting with "=" is never
// evaluated as a formula.
func (c *Client) AppendRow(ctx context.Context, row []interface{}) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{row}}
	_, err := c.values.Append(c.spreadsheetId, c.appendRange, vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append row to %s: %w", c.appendRange, err)
	}
	return nil
}

// LoadCredentials accepts either inline JSON or a path to a JSON key file.
func LoadCredentials(value string) ([]byte, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if strings.HasPrefix(value, "{") {
		return []byte(value), nil
	}
	data, err := os.ReadFile(value)
	if err != nil {
		return nil, fmt.Errorf("read sheets credentials: %w", err)
	}
	return data, nil
}
