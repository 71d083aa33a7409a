package supp

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/suppsupport/client-go/internal/api"
	"github.com/suppsupport/client-go/internal/delivery"
)

// eventFetchTimeout is the timeout for fetching a message after receiving
// a stream notification.
const eventFetchTimeout = 30 * time.Second

// syncState tracks the synchronization state for a watched conversation to
// enable efficient reconnection sync using the /sync endpoint.
type syncState struct {
	seenMessages map[string]struct{} // Set of message IDs already delivered to subscribers
}

// computeEventsHash computes the hash of seen messages to compare with the
// server's sync hash. Algorithm: sort IDs alphabetically, join with comma,
// SHA256, base64url encode (no padding).
func (s *syncState) computeEventsHash() string {
	if len(s.seenMessages) == 0 {
		// Empty set has a specific hash
		hash := sha256.Sum256([]byte(""))
		return base64.RawURLEncoding.EncodeToString(hash[:])
	}

	ids := make([]string, 0, len(s.seenMessages))
	for id := range s.seenMessages {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	joined := strings.Join(ids, ",")
	hash := sha256.Sum256([]byte(joined))
	return base64.RawURLEncoding.EncodeToString(hash[:])
}

// Client is the main Supp client. It exposes the resource APIs and manages
// real-time delivery of conversation events.
type Client struct {
	apiClient  *api.Client
	strategy   delivery.Strategy
	workspace  *Workspace
	watched    map[string]struct{}   // conversation IDs tracked by the delivery strategy
	syncStates map[string]*syncState // keyed by conversation ID
	mu         sync.RWMutex
	closed     bool

	// Subscription manager for conversation event notifications
	subs *subscriptionManager

	strategyCtx    context.Context
	strategyCancel context.CancelFunc

	// Error callback for background sync failures
	onSyncError func(error)
}

// buildAPIClient creates and configures an API client from the given config.
func buildAPIClient(apiKey string, cfg *clientConfig) (*api.Client, error) {
	apiOpts := []api.Option{
		api.WithBaseURL(cfg.baseURL),
	}
	if cfg.timeout > 0 {
		apiOpts = append(apiOpts, api.WithTimeout(cfg.timeout))
	}
	if cfg.retries >= 0 {
		apiOpts = append(apiOpts, api.WithRetries(cfg.retries))
	}

	apiClient, err := api.New(apiKey, apiOpts...)
	if err != nil {
		return nil, err
	}

	if cfg.httpClient != nil {
		apiClient.SetHTTPClient(cfg.httpClient)
	}

	return apiClient, nil
}

// createDeliveryStrategy creates a delivery strategy based on the config.
func createDeliveryStrategy(cfg *clientConfig, apiClient *api.Client) delivery.Strategy {
	deliveryCfg := delivery.Config{
		APIClient:                apiClient,
		PollingInitialInterval:   cfg.pollingInitialInterval,
		PollingMaxBackoff:        cfg.pollingMaxBackoff,
		PollingBackoffMultiplier: cfg.pollingBackoffMultiplier,
		PollingJitterFactor:      cfg.pollingJitterFactor,
		SSEConnectionTimeout:     cfg.sseConnectionTimeout,
	}
	switch cfg.deliveryStrategy {
	case StrategyPolling:
		return delivery.NewPollingStrategy(deliveryCfg)
	case StrategyAuto:
		return delivery.NewAutoStrategy(deliveryCfg)
	default:
		return delivery.NewSSEStrategy(deliveryCfg)
	}
}

// New creates a new Supp client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL:          defaultBaseURL,
		deliveryStrategy: StrategySSE,
		retries:          -1,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	apiClient, err := buildAPIClient(apiKey, cfg)
	if err != nil {
		return nil, err
	}

	if !cfg.skipKeyCheck {
		timeout := cfg.timeout
		if timeout <= 0 {
			timeout = api.DefaultTimeout
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		if err := apiClient.CheckKey(ctx); err != nil {
			return nil, err
		}
	}

	strategy := createDeliveryStrategy(cfg, apiClient)

	strategyCtx, strategyCancel := context.WithCancel(context.Background())

	c := &Client{
		apiClient:      apiClient,
		strategy:       strategy,
		watched:        make(map[string]struct{}),
		syncStates:     make(map[string]*syncState),
		subs:           newSubscriptionManager(),
		strategyCtx:    strategyCtx,
		strategyCancel: strategyCancel,
		onSyncError:    cfg.onSyncError,
	}

	// Start the strategy with an event handler
	if err := strategy.Start(strategyCtx, nil, c.handleEvent); err != nil {
		strategyCancel()
		return nil, fmt.Errorf("start delivery strategy: %w", err)
	}

	// Register reconnect handler to sync watched conversations after
	// reconnection. This catches any events that arrived during the
	// reconnection window.
	strategy.OnReconnect(c.syncAllWatched)

	return c, nil
}

// checkClosed returns ErrClientClosed if the client has been closed.
func (c *Client) checkClosed() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrClientClosed
	}
	return nil
}

// CheckKey validates the API key.
// Returns nil if the key is valid, otherwise returns an error.
func (c *Client) CheckKey(ctx context.Context) error {
	if err := c.checkClosed(); err != nil {
		return err
	}
	return c.apiClient.CheckKey(ctx)
}

// Workspace returns the workspace configuration attached to the API key.
// The result is cached after the first successful fetch.
func (c *Client) Workspace(ctx context.Context) (*Workspace, error) {
	if err := c.checkClosed(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	cached := c.workspace
	c.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}

	ws, err := c.apiClient.GetWorkspace(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch workspace: %w", err)
	}

	workspace := workspaceFromAPI(ws)
	c.mu.Lock()
	c.workspace = workspace
	c.mu.Unlock()

	return workspace, nil
}

func workspaceFromAPI(ws *api.Workspace) *Workspace {
	channels := make([]Channel, 0, len(ws.AllowedChannels))
	for _, ch := range ws.AllowedChannels {
		channels = append(channels, Channel(ch))
	}
	return &Workspace{
		ID:              ws.ID,
		Name:            ws.Name,
		Plan:            ws.Plan,
		AllowedChannels: channels,
		MaxRoutingRules: ws.MaxRoutingRules,
		CreatedAt:       ws.CreatedAt,
	}
}

// watchConversation adds a conversation to the client's tracking maps and
// delivery strategy. Idempotent.
func (c *Client) watchConversation(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClientClosed
	}
	if _, ok := c.watched[id]; ok {
		return nil
	}
	c.watched[id] = struct{}{}
	c.syncStates[id] = &syncState{
		seenMessages: make(map[string]struct{}),
	}
	return c.strategy.AddConversation(delivery.ConversationInfo{ID: id})
}

// unwatchConversation removes a conversation from tracking once no
// subscribers remain.
func (c *Client) unwatchConversation(id string) {
	if c.subs.hasSubscribers(id) {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.watched[id]; !ok {
		return
	}
	delete(c.watched, id)
	delete(c.syncStates, id)
	c.strategy.RemoveConversation(id)
}

// registerEventCallback subscribes fn to events on a conversation and starts
// watching it. The returned function unsubscribes and stops watching the
// conversation when it has no other subscribers.
func (c *Client) registerEventCallback(conversationID string, fn func(*ConversationEvent)) (func(), error) {
	if err := c.watchConversation(conversationID); err != nil {
		return nil, err
	}
	unsub := c.subs.subscribe(conversationID, fn)
	return func() {
		unsub()
		c.unwatchConversation(conversationID)
	}, nil
}

// WatchConversations returns a channel that receives events from the given
// conversations. The channel is not closed when the context is cancelled;
// use a select on ctx.Done() to detect cancellation.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
//	defer cancel()
//
//	ch, err := client.WatchConversations(ctx, "conv_1", "conv_2")
//	if err != nil {
//	    return err
//	}
//	for {
//	    select {
//	    case <-ctx.Done():
//	        return nil
//	    case event := <-ch:
//	        fmt.Printf("%s on %s\n", event.Type, event.ConversationID)
//	    }
//	}
func (c *Client) WatchConversations(ctx context.Context, conversationIDs ...string) (<-chan *ConversationEvent, error) {
	ch := make(chan *ConversationEvent, 16)

	if len(conversationIDs) == 0 {
		close(ch)
		return ch, nil
	}

	// Track unsubscribe functions
	unsubscribes := make([]func(), 0, len(conversationIDs))

	for _, id := range conversationIDs {
		unsub, err := c.registerEventCallback(id, func(event *ConversationEvent) {
			// Spawn goroutine to guarantee delivery without blocking event source
			go func(e *ConversationEvent) { ch <- e }(event)
		})
		if err != nil {
			for _, u := range unsubscribes {
				u()
			}
			return nil, err
		}
		unsubscribes = append(unsubscribes, unsub)
	}

	// Cleanup goroutine: unsubscribe when context is cancelled.
	// We intentionally do not close(ch) to avoid a race where an
	// in-flight callback tries to send after close.
	go func() {
		<-ctx.Done()
		for _, unsub := range unsubscribes {
			unsub()
		}
	}()

	return ch, nil
}

// WatchConversationsFunc calls fn for each event from the given conversations
// until the context is cancelled. This is a convenience wrapper around
// WatchConversations for simpler use cases.
func (c *Client) WatchConversationsFunc(ctx context.Context, fn func(*ConversationEvent), conversationIDs ...string) error {
	events, err := c.WatchConversations(ctx, conversationIDs...)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case event := <-events:
			if event != nil {
				fn(event)
			}
		}
	}
}

// syncAllWatched syncs every watched conversation and notifies watchers of
// messages that arrived while disconnected.
func (c *Client) syncAllWatched(ctx context.Context) {
	c.mu.RLock()
	if c.closed {
		c.mu.RUnlock()
		return
	}
	// Copy the watched set to avoid holding the lock during API calls
	ids := make([]string, 0, len(c.watched))
	for id := range c.watched {
		ids = append(ids, id)
	}
	c.mu.RUnlock()

	for _, id := range ids {
		c.syncConversation(ctx, id)
	}
}

// syncConversation syncs a single conversation and notifies subscribers of
// new messages. It uses the sync endpoint to check for changes before
// fetching, and only emits events for messages that haven't been seen
// before. Message IDs no longer on the server are dropped from the seen set.
func (c *Client) syncConversation(ctx context.Context, conversationID string) {
	c.mu.RLock()
	state := c.syncStates[conversationID]
	var localHash string
	if state != nil {
		localHash = state.computeEventsHash()
	}
	c.mu.RUnlock()

	if state == nil {
		// Conversation was unwatched, skip
		return
	}

	// Check sync status first (lightweight call)
	status, err := c.apiClient.GetConversationSync(ctx, conversationID)
	if err != nil {
		if c.onSyncError != nil {
			c.onSyncError(err)
		}
		return
	}

	// If hash unchanged, no changes - skip fetching
	if status.EventsHash == localHash {
		return
	}

	messages, err := c.apiClient.ListMessages(ctx, conversationID)
	if err != nil {
		if c.onSyncError != nil {
			c.onSyncError(err)
		}
		return
	}

	// Build set of server message IDs
	serverIDs := make(map[string]struct{}, len(messages))
	for _, m := range messages {
		serverIDs[m.ID] = struct{}{}
	}

	c.mu.Lock()
	state = c.syncStates[conversationID]
	if state == nil {
		c.mu.Unlock()
		return
	}

	// Find new messages (on server but not yet seen)
	var newMessages []api.Message
	for _, m := range messages {
		if _, seen := state.seenMessages[m.ID]; !seen {
			newMessages = append(newMessages, m)
			state.seenMessages[m.ID] = struct{}{}
		}
	}

	// Drop deleted messages (seen locally but gone from the server)
	for id := range state.seenMessages {
		if _, exists := serverIDs[id]; !exists {
			delete(state.seenMessages, id)
		}
	}
	c.mu.Unlock()

	for i := range newMessages {
		msg := messageFromAPI(&newMessages[i])
		c.subs.notify(conversationID, &ConversationEvent{
			Type:           EventMessageCreated,
			ConversationID: conversationID,
			Message:        msg,
			OccurredAt:     msg.CreatedAt,
		})
	}
}

// handleEvent processes incoming events from the delivery strategy.
func (c *Client) handleEvent(ctx context.Context, event *api.Event) error {
	if event == nil {
		return nil
	}

	c.mu.RLock()
	_, watched := c.watched[event.ConversationID]
	c.mu.RUnlock()

	if !watched {
		return nil
	}

	converted := &ConversationEvent{
		Type:           EventType(event.Type),
		ConversationID: event.ConversationID,
		ApprovalID:     event.ApprovalID,
		OccurredAt:     event.OccurredAt,
	}

	if event.Type == api.EventMessageCreated && event.MessageID != "" {
		ctx, cancel := context.WithTimeout(ctx, eventFetchTimeout)
		defer cancel()

		msg, err := c.apiClient.GetMessage(ctx, event.ConversationID, event.MessageID)
		if err != nil {
			return err
		}

		// Mark the message as seen to avoid duplicate notifications on
		// reconnection sync
		c.mu.Lock()
		if state := c.syncStates[event.ConversationID]; state != nil {
			state.seenMessages[msg.ID] = struct{}{}
		}
		c.mu.Unlock()

		converted.Message = messageFromAPI(msg)
	}

	c.subs.notify(event.ConversationID, converted)

	return nil
}

// Close closes the client and releases resources.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}

	c.closed = true

	// Cancel strategy context
	if c.strategyCancel != nil {
		c.strategyCancel()
	}

	// Stop delivery strategy
	if c.strategy != nil {
		if err := c.strategy.Stop(); err != nil {
			return err
		}
	}

	// Clear watched conversations and subscriptions
	c.watched = make(map[string]struct{})
	c.syncStates = make(map[string]*syncState)
	c.subs.clear()

	return nil
}
