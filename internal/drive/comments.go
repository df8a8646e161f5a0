package drive

import (
	"context"
	"fmt"

	drive "google.golang.org/api/drive/v3"

	"github.com/teemow/gworkspace-mcp/internal/render"
)

// The comments API returns nothing unless fields are requested explicitly.
const (
	replyFields       = "id,content,author(displayName,emailAddress),createdTime,modifiedTime,action,deleted"
	commentFields     = "id,content,author(displayName,emailAddress),createdTime,modifiedTime,resolved,deleted,quotedFileContent(value),replies(" + replyFields + ")"
	commentListFields = "nextPageToken,comments(" + commentFields + ")"
	replyListFields   = "nextPageToken,replies(" + replyFields + ")"
)

// CommentListOptions contains options for listing comments
type CommentListOptions struct {
	PageSize       int64
	PageToken      string
	IncludeDeleted bool
}

// ListComments lists the comments of a file in API order
func (c *Client) ListComments(ctx context.Context, fileID string, options CommentListOptions) ([]Comment, string, error) {
	call := c.service.Comments.List(fileID).
		Context(ctx).
		Fields(commentListFields).
		IncludeDeleted(options.IncludeDeleted)
	if options.PageSize > 0 {
		call = call.PageSize(options.PageSize)
	}
	if options.PageToken != "" {
		call = call.PageToken(options.PageToken)
	}

	list, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list comments on file %s: %w", fileID, err)
	}

	comments := make([]Comment, 0, len(list.Comments))
	for _, cm := range list.Comments {
		comments = append(comments, convertComment(cm))
	}
	return comments, list.NextPageToken, nil
}

// GetComment retrieves a single comment with its replies
func (c *Client) GetComment(ctx context.Context, fileID, commentID string) (Comment, error) {
	cm, err := c.service.Comments.Get(fileID, commentID).
		Context(ctx).
		Fields(commentFields).
		Do()
	if err != nil {
		return Comment{}, fmt.Errorf("failed to get comment %s on file %s: %w", commentID, fileID, err)
	}
	return convertComment(cm), nil
}

// CreateComment adds an unanchored comment to a file. quotedText is shown
// as the quoted content of the comment when set.
func (c *Client) CreateComment(ctx context.Context, fileID, content, quotedText string) (Comment, error) {
	comment := &drive.Comment{Content: content}
	if quotedText != "" {
		comment.QuotedFileContent = &drive.CommentQuotedFileContent{Value: quotedText}
	}

	cm, err := c.service.Comments.Create(fileID, comment).
		Context(ctx).
		Fields(commentFields).
		Do()
	if err != nil {
		return Comment{}, fmt.Errorf("failed to create comment on file %s: %w", fileID, err)
	}
	return convertComment(cm), nil
}

// DeleteComment deletes a comment
func (c *Client) DeleteComment(ctx context.Context, fileID, commentID string) error {
	if err := c.service.Comments.Delete(fileID, commentID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete comment %s on file %s: %w", commentID, fileID, err)
	}
	return nil
}

// ResolveComment resolves a comment by posting a reply with the resolve action
func (c *Client) ResolveComment(ctx context.Context, fileID, commentID, content string) (Reply, error) {
	return c.createReply(ctx, fileID, commentID, &drive.Reply{Content: content, Action: "resolve"})
}

// CreateReply adds a reply to a comment
func (c *Client) CreateReply(ctx context.Context, fileID, commentID, content string) (Reply, error) {
	return c.createReply(ctx, fileID, commentID, &drive.Reply{Content: content})
}

func (c *Client) createReply(ctx context.Context, fileID, commentID string, reply *drive.Reply) (Reply, error) {
	r, err := c.service.Replies.Create(fileID, commentID, reply).
		Context(ctx).
		Fields(replyFields).
		Do()
	if err != nil {
		return Reply{}, fmt.Errorf("failed to reply to comment %s on file %s: %w", commentID, fileID, err)
	}
	return convertReply(r), nil
}

// ListReplies lists the replies of a comment in API order
func (c *Client) ListReplies(ctx context.Context, fileID, commentID string, options CommentListOptions) ([]Reply, string, error) {
	call := c.service.Replies.List(fileID, commentID).
		Context(ctx).
		Fields(replyListFields).
		IncludeDeleted(options.IncludeDeleted)
	if options.PageSize > 0 {
		call = call.PageSize(options.PageSize)
	}
	if options.PageToken != "" {
		call = call.PageToken(options.PageToken)
	}

	list, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list replies of comment %s on file %s: %w", commentID, fileID, err)
	}

	replies := make([]Reply, 0, len(list.Replies))
	for _, r := range list.Replies {
		replies = append(replies, convertReply(r))
	}
	return replies, list.NextPageToken, nil
}

func convertComment(cm *drive.Comment) Comment {
	comment := Comment{
		ID:           cm.Id,
		Content:      cm.Content,
		Author:       render.Unknown,
		CreatedTime:  render.OrDefault(cm.CreatedTime, render.Unknown),
		ModifiedTime: cm.ModifiedTime,
		Resolved:     cm.Resolved,
		Deleted:      cm.Deleted,
		Replies:      make([]Reply, 0, len(cm.Replies)),
	}
	if cm.Author != nil {
		comment.Author = render.OrDefault(cm.Author.DisplayName, render.Unknown)
		comment.AuthorEmail = cm.Author.EmailAddress
	}
	if cm.QuotedFileContent != nil {
		comment.QuotedText = cm.QuotedFileContent.Value
	}
	for _, r := range cm.Replies {
		if r == nil {
			continue
		}
		comment.Replies = append(comment.Replies, convertReply(r))
	}
	return comment
}

func convertReply(r *drive.Reply) Reply {
	reply := Reply{
		ID:          r.Id,
		Content:     r.Content,
		Author:      render.Unknown,
		CreatedTime: render.OrDefault(r.CreatedTime, render.Unknown),
		Action:      r.Action,
		Deleted:     r.Deleted,
	}
	if r.Author != nil {
		reply.Author = render.OrDefault(r.Author.DisplayName, render.Unknown)
	}
	return reply
}
