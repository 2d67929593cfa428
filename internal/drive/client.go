// Package drive provides a read-only Google Drive client for spreadsheet
// listing and export, authenticated with a service account.
package drive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	gdrive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

const (
	// SpreadsheetMimeType identifies native Google Sheets files.
	SpreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

	// exportMimeType is the tabular interchange format used for export.
	exportMimeType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	requestTimeout = 60 * time.Second
	listPageSize   = 100
)

// ErrBadCredential reports a credential that failed local validation, before
// any network call was made.
var ErrBadCredential = errors.New("invalid service account credential")

// File is a lightweight handle to a remote spreadsheet.
type File struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mimeType"`
}

// Client wraps an authenticated Drive service.
type Client struct {
	svc *gdrive.Service
}

// Authenticate validates the credential and constructs a read-only Drive
// client. The credential may be a path to a service-account JSON key or the
// JSON content itself.
func Authenticate(ctx context.Context, credential string) (*Client, error) {
	data, err := ResolveCredential(credential)
	if err != nil {
		return nil, err
	}

	jwt, err := google.JWTConfigFromJSON(data, gdrive.DriveReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCredential, err)
	}

	svc, err := gdrive.NewService(ctx, option.WithHTTPClient(jwt.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("could not initialize Drive client: %w", err)
	}

	return &Client{svc: svc}, nil
}

// ResolveCredential turns a credential value into service-account JSON bytes
// and checks the required fields. No network calls are made.
func ResolveCredential(credential string) ([]byte, error) {
	v := strings.TrimSpace(credential)
	if v == "" {
		return nil, fmt.Errorf("%w: empty credential", ErrBadCredential)
	}

	var data []byte
	if strings.HasPrefix(v, "{") {
		data = []byte(v)
	} else {
		b, err := os.ReadFile(credential)
		if err != nil {
			return nil, fmt.Errorf("%w: not valid JSON and not a readable key file: %v", ErrBadCredential, err)
		}
		data = b
	}

	var key struct {
		Type        string `json:"type"`
		ClientEmail string `json:"client_email"`
		PrivateKey  string `json:"private_key"`
	}
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCredential, err)
	}
	if key.Type != "service_account" {
		return nil, fmt.Errorf("%w: 'type' is %q, expected \"service_account\"", ErrBadCredential, key.Type)
	}
	if key.ClientEmail == "" || key.PrivateKey == "" {
		return nil, fmt.Errorf("%w: missing client_email or private_key", ErrBadCredential)
	}

	return data, nil
}

// ListSpreadsheets returns all Google Sheets visible to the service account,
// optionally restricted to one folder. Pagination is exhausted before
// returning. An empty result is not an error.
func (c *Client) ListSpreadsheets(ctx context.Context, folderID string) ([]File, error) {
	query := fmt.Sprintf("mimeType='%s'", SpreadsheetMimeType)
	if folderID != "" {
		query += fmt.Sprintf(" and '%s' in parents", strings.ReplaceAll(folderID, "'", ""))
	}

	var files []File
	pageToken := ""
	for {
		tctx, cancel := context.WithTimeout(ctx, requestTimeout)
		res, err := c.svc.Files.List().
			Q(query).
			PageSize(listPageSize).
			Fields("nextPageToken, files(id, name, mimeType)").
			PageToken(pageToken).
			Context(tctx).Do()
		cancel()
		if err != nil {
			return nil, fmt.Errorf("could not list spreadsheets: %w", apiError(err))
		}

		for _, f := range res.Files {
			files = append(files, File{ID: f.Id, Name: f.Name, MimeType: f.MimeType})
		}

		pageToken = res.NextPageToken
		if pageToken == "" {
			return files, nil
		}
	}
}

// GetFile returns the handle for a single file by ID.
func (c *Client) GetFile(ctx context.Context, fileID string) (*File, error) {
	tctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	f, err := c.svc.Files.Get(fileID).Fields("id, name, mimeType").Context(tctx).Do()
	if err != nil {
		return nil, fmt.Errorf("could not look up file %s: %w", fileID, apiError(err))
	}
	return &File{ID: f.Id, Name: f.Name, MimeType: f.MimeType}, nil
}

// ExportSpreadsheet exports a Google Sheet as .xlsx bytes.
func (c *Client) ExportSpreadsheet(ctx context.Context, fileID string) ([]byte, error) {
	tctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	resp, err := c.svc.Files.Export(fileID, exportMimeType).Context(tctx).Download()
	if err != nil {
		return nil, fmt.Errorf("could not export spreadsheet %s: %w", fileID, apiError(err))
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("export download failed: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("export of %s returned no data", fileID)
	}

	return data, nil
}

// apiError translates googleapi errors into actionable messages.
func apiError(err error) error {
	var ge *googleapi.Error
	if errors.As(err, &ge) {
		switch ge.Code {
		case 401:
			return fmt.Errorf("credential rejected by Google Drive (HTTP 401) — check the service account key")
		case 403:
			return fmt.Errorf("permission denied (HTTP 403) — share the file or folder with the service account email")
		case 404:
			return fmt.Errorf("file not found (HTTP 404)")
		}
	}
	return err
}
