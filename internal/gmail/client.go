package gmail

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// userID addresses the authenticated user in every Gmail call
const userID = "me"

const (
	formatFull     = "full"
	formatMetadata = "metadata"
)

// Client wraps the Gmail API service
type Client struct {
	service *gmail.Service
}

// NewClient creates a Gmail client from the shared client options
func NewClient(ctx context.Context, opts ...option.ClientOption) (*Client, error) {
	service, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gmail service: %w", err)
	}
	return &Client{service: service}, nil
}

// ListMessages lists messages matching the options and fetches the metadata
// of each one concurrently. The returned order is the order of the list call.
func (c *Client) ListMessages(ctx context.Context, options ListOptions) ([]MessageSummary, string, error) {
	call := c.service.Users.Messages.List(userID).
		Context(ctx).
		IncludeSpamTrash(options.IncludeSpamTrash)
	if options.Query != "" {
		call = call.Q(options.Query)
	}
	if len(options.LabelIDs) > 0 {
		call = call.LabelIds(options.LabelIDs...)
	}
	if options.MaxResults > 0 {
		call = call.MaxResults(options.MaxResults)
	}
	if options.PageToken != "" {
		call = call.PageToken(options.PageToken)
	}

	res, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list messages: %w", err)
	}

	ids := make([]string, 0, len(res.Messages))
	for _, m := range res.Messages {
		ids = append(ids, m.Id)
	}

	summaries, err := fetchAll(ctx, ids, c.getMessageSummary)
	if err != nil {
		return nil, "", err
	}
	return summaries, res.NextPageToken, nil
}

func (c *Client) getMessageSummary(ctx context.Context, messageID string) (MessageSummary, error) {
	msg, err := c.service.Users.Messages.Get(userID, messageID).
		Context(ctx).
		Format(formatMetadata).
		MetadataHeaders(summaryHeaders...).
		Do()
	if err != nil {
		return MessageSummary{}, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return newMessageSummary(msg), nil
}

// GetMessage retrieves a full message with its body and attachment list
func (c *Client) GetMessage(ctx context.Context, messageID string) (Message, error) {
	msg, err := c.service.Users.Messages.Get(userID, messageID).
		Context(ctx).
		Format(formatFull).
		Do()
	if err != nil {
		return Message{}, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return newMessage(msg)
}

// ListThreads lists threads matching the options and fetches the metadata of
// each one concurrently. The returned order is the order of the list call.
func (c *Client) ListThreads(ctx context.Context, options ListOptions) ([]ThreadSummary, string, error) {
	call := c.service.Users.Threads.List(userID).
		Context(ctx).
		IncludeSpamTrash(options.IncludeSpamTrash)
	if options.Query != "" {
		call = call.Q(options.Query)
	}
	if len(options.LabelIDs) > 0 {
		call = call.LabelIds(options.LabelIDs...)
	}
	if options.MaxResults > 0 {
		call = call.MaxResults(options.MaxResults)
	}
	if options.PageToken != "" {
		call = call.PageToken(options.PageToken)
	}

	res, err := call.Do()
	if err != nil {
		return nil, "", fmt.Errorf("failed to list threads: %w", err)
	}

	ids := make([]string, 0, len(res.Threads))
	for _, t := range res.Threads {
		ids = append(ids, t.Id)
	}

	summaries, err := fetchAll(ctx, ids, c.getThreadSummary)
	if err != nil {
		return nil, "", err
	}
	return summaries, res.NextPageToken, nil
}

func (c *Client) getThreadSummary(ctx context.Context, threadID string) (ThreadSummary, error) {
	thread, err := c.service.Users.Threads.Get(userID, threadID).
		Context(ctx).
		Format(formatMetadata).
		MetadataHeaders(summaryHeaders...).
		Do()
	if err != nil {
		return ThreadSummary{}, fmt.Errorf("failed to get thread %s: %w", threadID, err)
	}
	return newThreadSummary(thread), nil
}

// GetThread retrieves a full thread with the extracted body of every message
func (c *Client) GetThread(ctx context.Context, threadID string) (Thread, error) {
	thread, err := c.service.Users.Threads.Get(userID, threadID).
		Context(ctx).
		Format(formatFull).
		Do()
	if err != nil {
		return Thread{}, fmt.Errorf("failed to get thread %s: %w", threadID, err)
	}

	result := Thread{
		ID:       thread.Id,
		Subject:  NoSubject,
		Messages: make([]Message, 0, len(thread.Messages)),
	}
	for _, m := range thread.Messages {
		msg, err := newMessage(m)
		if err != nil {
			return Thread{}, err
		}
		result.Messages = append(result.Messages, msg)
	}
	if len(result.Messages) > 0 {
		result.Subject = result.Messages[0].Subject
	}
	return result, nil
}

// ListLabels lists all labels in API order
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	res, err := c.service.Users.Labels.List(userID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}

	labels := make([]Label, 0, len(res.Labels))
	for _, l := range res.Labels {
		labels = append(labels, newLabel(l))
	}
	return labels, nil
}

// CreateLabel creates a user label. Empty visibilities use the Gmail defaults.
func (c *Client) CreateLabel(ctx context.Context, name, labelListVisibility, messageListVisibility string) (Label, error) {
	label, err := c.service.Users.Labels.Create(userID, &gmail.Label{
		Name:                  name,
		LabelListVisibility:   labelListVisibility,
		MessageListVisibility: messageListVisibility,
	}).Context(ctx).Do()
	if err != nil {
		return Label{}, fmt.Errorf("failed to create label %s: %w", name, err)
	}
	return newLabel(label), nil
}

// DeleteLabel deletes a user label and removes it from all messages
func (c *Client) DeleteLabel(ctx context.Context, labelID string) error {
	if err := c.service.Users.Labels.Delete(userID, labelID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to delete label %s: %w", labelID, err)
	}
	return nil
}

// ModifyMessageLabels adds and removes labels on a message
func (c *Client) ModifyMessageLabels(ctx context.Context, messageID string, addLabelIDs, removeLabelIDs []string) (ModifyResult, error) {
	msg, err := c.service.Users.Messages.Modify(userID, messageID, &gmail.ModifyMessageRequest{
		AddLabelIds:    addLabelIDs,
		RemoveLabelIds: removeLabelIDs,
	}).Context(ctx).Do()
	if err != nil {
		return ModifyResult{}, fmt.Errorf("failed to modify labels of message %s: %w", messageID, err)
	}

	labels := msg.LabelIds
	if labels == nil {
		labels = []string{}
	}
	return ModifyResult{MessageID: msg.Id, ThreadID: msg.ThreadId, LabelIDs: labels}, nil
}

// fetchAll runs fetch for every id concurrently and returns the results in
// the order of ids. The first error cancels the remaining fetches.
func fetchAll[T any](ctx context.Context, ids []string, fetch func(context.Context, string) (T, error)) ([]T, error) {
	results := make([]T, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			item, err := fetch(gctx, id)
			if err != nil {
				return err
			}
			results[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
