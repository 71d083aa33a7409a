package supp

import (
	"context"
	"time"

	"github.com/suppsupport/client-go/internal/api"
)

// ConversationPage is one page of conversation list results. Pass NextCursor
// to the next List call to continue; an empty NextCursor means the last page.
type ConversationPage struct {
	Items      []*Conversation
	NextCursor string
}

// ConversationFilter narrows List results. Zero values are not sent.
type ConversationFilter struct {
	Status     ConversationStatus
	Priority   Priority
	AssigneeID string
	Limit      int
	Cursor     string
}

// Conversations provides access to conversation and message operations.
type Conversations interface {
	// Create opens a new conversation on the given channel.
	Create(ctx context.Context, subject string, channel Channel, customerEmail string, opts ...ConversationCreateOption) (*Conversation, error)

	// Get returns a conversation by ID.
	Get(ctx context.Context, id string) (*Conversation, error)

	// List returns a page of conversations matching the filter.
	List(ctx context.Context, filter ConversationFilter) (*ConversationPage, error)

	// Update applies a partial update to a conversation. Fields not named
	// by an option are left unchanged.
	Update(ctx context.Context, id string, opts ...ConversationUpdateOption) (*Conversation, error)

	// Delete removes a conversation and its messages.
	Delete(ctx context.Context, id string) error

	// Messages returns all messages in a conversation, oldest first.
	Messages(ctx context.Context, conversationID string) ([]*Message, error)

	// GetMessage returns a single message.
	GetMessage(ctx context.Context, conversationID, messageID string) (*Message, error)

	// AddMessage appends a message to a conversation.
	AddMessage(ctx context.Context, conversationID string, role Role, body string, opts ...MessageOption) (*Message, error)

	// Assign assigns a conversation to an agent and/or team. Empty IDs are
	// not sent.
	Assign(ctx context.Context, id, assigneeID, teamID string) (*Conversation, error)

	// Resolve marks a conversation resolved.
	Resolve(ctx context.Context, id string) (*Conversation, error)
}

// conversationsImpl implements the Conversations interface.
type conversationsImpl struct {
	client *Client
}

// Conversations returns the conversation API.
func (c *Client) Conversations() Conversations {
	return &conversationsImpl{client: c}
}

// conversationCreateConfig holds optional fields for Create.
type conversationCreateConfig struct {
	priority Priority
	tags     []string
}

// ConversationCreateOption configures conversation creation.
type ConversationCreateOption func(*conversationCreateConfig)

// WithPriority sets the initial priority of the conversation.
func WithPriority(priority Priority) ConversationCreateOption {
	return func(c *conversationCreateConfig) {
		c.priority = priority
	}
}

// WithTags sets the initial tags of the conversation.
func WithTags(tags ...string) ConversationCreateOption {
	return func(c *conversationCreateConfig) {
		c.tags = tags
	}
}

// conversationUpdateConfig holds the fields touched by an update.
type conversationUpdateConfig struct {
	subject  *string
	status   *ConversationStatus
	priority *Priority
	tags     *[]string
}

// ConversationUpdateOption configures a conversation update.
type ConversationUpdateOption func(*conversationUpdateConfig)

// WithUpdateSubject changes the conversation subject.
func WithUpdateSubject(subject string) ConversationUpdateOption {
	return func(c *conversationUpdateConfig) {
		c.subject = &subject
	}
}

// WithUpdateStatus changes the conversation status.
func WithUpdateStatus(status ConversationStatus) ConversationUpdateOption {
	return func(c *conversationUpdateConfig) {
		c.status = &status
	}
}

// WithUpdatePriority changes the conversation priority.
func WithUpdatePriority(priority Priority) ConversationUpdateOption {
	return func(c *conversationUpdateConfig) {
		c.priority = &priority
	}
}

// WithUpdateTags replaces the conversation tags.
func WithUpdateTags(tags ...string) ConversationUpdateOption {
	return func(c *conversationUpdateConfig) {
		c.tags = &tags
	}
}

// messageConfig holds optional fields for AddMessage.
type messageConfig struct {
	authorID string
}

// MessageOption configures message creation.
type MessageOption func(*messageConfig)

// WithAuthor sets the author ID recorded on the message.
func WithAuthor(authorID string) MessageOption {
	return func(c *messageConfig) {
		c.authorID = authorID
	}
}

func (r *conversationsImpl) Create(ctx context.Context, subject string, channel Channel, customerEmail string, opts ...ConversationCreateOption) (*Conversation, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &conversationCreateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.CreateConversationRequest{
		Subject:       subject,
		Channel:       string(channel),
		CustomerEmail: customerEmail,
		Priority:      string(cfg.priority),
		Tags:          cfg.tags,
	}

	dto, err := r.client.apiClient.CreateConversation(ctx, req)
	if err != nil {
		return nil, err
	}
	return conversationFromAPI(dto), nil
}

func (r *conversationsImpl) Get(ctx context.Context, id string) (*Conversation, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	return conversationFromAPI(dto), nil
}

func (r *conversationsImpl) List(ctx context.Context, filter ConversationFilter) (*ConversationPage, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	params := api.ListConversationsParams{
		Status:     string(filter.Status),
		Priority:   string(filter.Priority),
		AssigneeID: filter.AssigneeID,
		Limit:      filter.Limit,
		Cursor:     filter.Cursor,
	}

	dto, err := r.client.apiClient.ListConversations(ctx, params)
	if err != nil {
		return nil, err
	}

	page := &ConversationPage{
		Items:      make([]*Conversation, 0, len(dto.Items)),
		NextCursor: dto.NextCursor,
	}
	for i := range dto.Items {
		page.Items = append(page.Items, conversationFromAPI(&dto.Items[i]))
	}
	return page, nil
}

func (r *conversationsImpl) Update(ctx context.Context, id string, opts ...ConversationUpdateOption) (*Conversation, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &conversationUpdateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.UpdateConversationRequest{
		Subject: cfg.subject,
		Tags:    cfg.tags,
	}
	if cfg.status != nil {
		s := string(*cfg.status)
		req.Status = &s
	}
	if cfg.priority != nil {
		p := string(*cfg.priority)
		req.Priority = &p
	}

	dto, err := r.client.apiClient.UpdateConversation(ctx, id, req)
	if err != nil {
		return nil, err
	}
	return conversationFromAPI(dto), nil
}

func (r *conversationsImpl) Delete(ctx context.Context, id string) error {
	if err := r.client.checkClosed(); err != nil {
		return err
	}
	return r.client.apiClient.DeleteConversation(ctx, id)
}

func (r *conversationsImpl) Messages(ctx context.Context, conversationID string) ([]*Message, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := r.client.apiClient.ListMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	messages := make([]*Message, 0, len(dtos))
	for i := range dtos {
		messages = append(messages, messageFromAPI(&dtos[i]))
	}
	return messages, nil
}

func (r *conversationsImpl) GetMessage(ctx context.Context, conversationID, messageID string) (*Message, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetMessage(ctx, conversationID, messageID)
	if err != nil {
		return nil, err
	}
	return messageFromAPI(dto), nil
}

func (r *conversationsImpl) AddMessage(ctx context.Context, conversationID string, role Role, body string, opts ...MessageOption) (*Message, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	cfg := &messageConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	req := api.AddMessageRequest{
		Role:     string(role),
		Body:     body,
		AuthorID: cfg.authorID,
	}

	dto, err := r.client.apiClient.AddMessage(ctx, conversationID, req)
	if err != nil {
		return nil, err
	}
	return messageFromAPI(dto), nil
}

func (r *conversationsImpl) Assign(ctx context.Context, id, assigneeID, teamID string) (*Conversation, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.AssignConversation(ctx, id, assigneeID, teamID)
	if err != nil {
		return nil, err
	}
	return conversationFromAPI(dto), nil
}

func (r *conversationsImpl) Resolve(ctx context.Context, id string) (*Conversation, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.ResolveConversation(ctx, id)
	if err != nil {
		return nil, err
	}
	return conversationFromAPI(dto), nil
}

func conversationFromAPI(dto *api.Conversation) *Conversation {
	var lastMessageAt *time.Time
	if dto.LastMessageAt != nil {
		t := *dto.LastMessageAt
		lastMessageAt = &t
	}
	return &Conversation{
		ID:            dto.ID,
		Subject:       dto.Subject,
		Status:        ConversationStatus(dto.Status),
		Priority:      Priority(dto.Priority),
		Channel:       Channel(dto.Channel),
		CustomerEmail: dto.CustomerEmail,
		AssigneeID:    dto.AssigneeID,
		TeamID:        dto.TeamID,
		Tags:          dto.Tags,
		CreatedAt:     dto.CreatedAt,
		UpdatedAt:     dto.UpdatedAt,
		LastMessageAt: lastMessageAt,
	}
}

func messageFromAPI(dto *api.Message) *Message {
	return &Message{
		ID:             dto.ID,
		ConversationID: dto.ConversationID,
		Role:           Role(dto.Role),
		Body:           dto.Body,
		AuthorID:       dto.AuthorID,
		CreatedAt:      dto.CreatedAt,
	}
}
