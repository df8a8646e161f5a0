package drive

import (
	"context"
	"fmt"

	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/option"

	"github.com/teemow/gworkspace-mcp/internal/render"
)

const (
	// FolderMimeType is the MIME type for Google Drive folders
	FolderMimeType = "application/vnd.google-apps.folder"

	fileFields     = "id,name,mimeType,size,createdTime,modifiedTime,webViewLink,parents,owners(displayName,emailAddress),shared,trashed"
	fileListFields = "nextPageToken,files(" + fileFields + ")"
)

// Client wraps the Google Drive API service. It serves both file and
// comment operations.
type Client struct {
	service *drive.Service
}

// NewClient creates a Drive client from the shared client options
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}
	return &Client{service: service}, nil
}

// ListFiles lists files matching the options. Trashed files are excluded
// unless IncludeTrashed is set.
func (c *Client) ListFiles(ctx context.Context, options ListOptions) ([]FileInfo, string, error) {
	call := c.service.Files.List().
		Context(ctx).
		Fields(fileListFields)

	if q := options.query(); q != "" {
		call = call.Q(q)
	}
	if options.PageSize > 0 {
		call = call.PageSize(options.PageSize)
	}
	if options.OrderBy != "" {
		call = call.OrderBy(options.OrderBy)
	}
	if options.PageToken != "" {
		call = call.PageToken(options.PageToken)
	}

	fileList, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list files: %w", err)
	}

	files := make([]FileInfo, 0, len(fileList.Files))
	for _, f := range fileList.Files {
		files = append(files, convertToFileInfo(f))
	}
	return files, fileList.NextPageToken, nil
}

// GetFile retrieves metadata about a specific file
func (c *Client) GetFile(ctx context.Context, fileID string) (FileInfo, error) {
	file, err := c.service.Files.Get(fileID).
		Context(ctx).
		Fields(fileFields).
		Do()
	if err != nil {
		return FileInfo{}, fmt.Errorf("failed to get file %s: %w", fileID, err)
	}
	return convertToFileInfo(file), nil
}

// DeleteFile permanently deletes a file, skipping the trash
func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	if err := c.service.Files.Delete(fileID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete file %s: %w", fileID, err)
	}
	return nil
}

// convertToFileInfo converts a Drive API file to our FileInfo type
func convertToFileInfo(f *drive.File) FileInfo {
	info := FileInfo{
		ID:           f.Id,
		Name:         render.OrDefault(f.Name, render.Untitled),
		MimeType:     f.MimeType,
		Size:         f.Size,
		CreatedTime:  render.OrDefault(f.CreatedTime, render.Unknown),
		ModifiedTime: render.OrDefault(f.ModifiedTime, render.Unknown),
		WebViewLink:  f.WebViewLink,
		Parents:      f.Parents,
		Shared:       f.Shared,
		Trashed:      f.Trashed,
		IsFolder:     f.MimeType == FolderMimeType,
	}
	for _, owner := range f.Owners {
		if owner == nil {
			continue
		}
		info.Owners = append(info.Owners, User{
			DisplayName:  render.OrDefault(owner.DisplayName, render.Unknown),
			EmailAddress: owner.EmailAddress,
		})
	}
	return info
}
