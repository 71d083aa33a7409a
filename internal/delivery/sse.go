package delivery

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/suppsupport/client-go/internal/api"
)

const (
	SSEReconnectInterval    = 5 * time.Second
	SSEMaxReconnectAttempts = 10
)

// SSEStrategy implements event delivery via Server-Sent Events.
type SSEStrategy struct {
	apiClient     *api.Client
	conversations map[string]struct{}
	handler       EventHandler
	onReconnect   func(ctx context.Context)
	cancel        context.CancelFunc
	mu            sync.RWMutex
	reconnectWait time.Duration
	attempts      int
	started       bool
	connected     chan struct{} // closed when the first connection is established
	connectedOnce sync.Once
	lastError     error
}

// NewSSEStrategy creates a new SSE strategy.
func NewSSEStrategy(cfg Config) *SSEStrategy {
	return &SSEStrategy{
		apiClient:     cfg.APIClient,
		conversations: make(map[string]struct{}),
		reconnectWait: SSEReconnectInterval,
		connected:     make(chan struct{}),
	}
}

// Name returns the strategy name.
func (s *SSEStrategy) Name() string {
	return "sse"
}

// Connected returns a channel that is closed once the SSE connection is
// established.
func (s *SSEStrategy) Connected() <-chan struct{} {
	return s.connected
}

// LastError returns the last connection error, if any.
func (s *SSEStrategy) LastError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastError
}

// Start begins listening for events on the given conversations.
func (s *SSEStrategy) Start(ctx context.Context, conversations []ConversationInfo, handler EventHandler) error {
	s.mu.Lock()
	for _, conv := range conversations {
		s.conversations[conv.ID] = struct{}{}
	}
	s.handler = handler
	s.started = true
	s.mu.Unlock()

	ctx, s.cancel = context.WithCancel(ctx)
	go s.connectLoop(ctx)
	return nil
}

// Stop gracefully shuts down the strategy.
func (s *SSEStrategy) Stop() error {
	s.mu.Lock()
	s.started = false
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

// AddConversation adds a conversation to watch. The current connection keeps
// its conversation set; new conversations are picked up on the next
// reconnection.
func (s *SSEStrategy) AddConversation(conv ConversationInfo) error {
	s.mu.Lock()
	s.conversations[conv.ID] = struct{}{}
	s.mu.Unlock()
	return nil
}

// RemoveConversation stops watching a conversation.
func (s *SSEStrategy) RemoveConversation(id string) error {
	s.mu.Lock()
	delete(s.conversations, id)
	s.mu.Unlock()
	return nil
}

// OnReconnect sets the reconnection callback.
func (s *SSEStrategy) OnReconnect(fn func(ctx context.Context)) {
	s.mu.Lock()
	s.onReconnect = fn
	s.mu.Unlock()
}

func (s *SSEStrategy) connectLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if s.conversationCount() == 0 {
			// Nothing to stream yet; re-check once conversations are added.
			select {
			case <-ctx.Done():
				return
			case <-time.After(time.Second):
			}
			continue
		}

		err := s.connect(ctx)
		if ctx.Err() != nil {
			return
		}
		if err == nil {
			// Server closed the stream cleanly; reconnect after the base
			// interval to pick up the current conversation set.
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.reconnectWait):
			}
			continue
		}

		s.attempts++
		if s.attempts >= SSEMaxReconnectAttempts {
			return
		}

		wait := s.reconnectWait * time.Duration(1<<(s.attempts-1))
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

func (s *SSEStrategy) conversationCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.conversations)
}

func (s *SSEStrategy) connect(ctx context.Context) error {
	s.mu.RLock()
	ids := make([]string, 0, len(s.conversations))
	for id := range s.conversations {
		ids = append(ids, id)
	}
	onReconnect := s.onReconnect
	s.mu.RUnlock()

	if len(ids) == 0 {
		return nil
	}

	if s.apiClient == nil {
		err := fmt.Errorf("sse strategy: API client is nil")
		s.mu.Lock()
		s.lastError = err
		s.mu.Unlock()
		return err
	}

	resp, err := s.apiClient.OpenEventStream(ctx, ids)
	if err != nil {
		s.mu.Lock()
		s.lastError = err
		s.mu.Unlock()
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		err := fmt.Errorf("sse strategy: unexpected status %d", resp.StatusCode)
		s.mu.Lock()
		s.lastError = err
		s.mu.Unlock()
		return err
	}

	// Reset attempts on successful connection
	s.attempts = 0

	s.connectedOnce.Do(func() {
		close(s.connected)
	})

	if onReconnect != nil {
		onReconnect(ctx)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()

		// Skip blank lines and comments
		if line == "" || strings.HasPrefix(line, ":") {
			continue
		}

		if strings.HasPrefix(line, "data: ") {
			data := strings.TrimPrefix(line, "data: ")

			var event api.Event
			if err := json.Unmarshal([]byte(data), &event); err != nil {
				continue // Skip malformed events
			}

			s.mu.RLock()
			handler := s.handler
			s.mu.RUnlock()

			if handler != nil {
				handler(ctx, &event)
			}
		}
	}

	return scanner.Err()
}
