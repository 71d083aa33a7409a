package delivery

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/suppsupport/client-go/internal/api"
)

// PollingStrategy implements event delivery by polling each conversation's
// sync endpoint with adaptive per-conversation backoff. The lightweight
// sync call carries only an event count and hash; messages are fetched only
// when the hash changes.
type PollingStrategy struct {
	apiClient     *api.Client
	cfg           Config
	conversations map[string]*polledConversation
	handler       EventHandler
	cancel        context.CancelFunc
	mu            sync.RWMutex
	started       bool
}

type polledConversation struct {
	id           string
	lastHash     string
	seenMessages map[string]struct{}
	interval     time.Duration
}

// NewPollingStrategy creates a new polling strategy.
func NewPollingStrategy(cfg Config) *PollingStrategy {
	cfg = cfg.withDefaults()
	return &PollingStrategy{
		apiClient:     cfg.APIClient,
		cfg:           cfg,
		conversations: make(map[string]*polledConversation),
	}
}

// Name returns the strategy name.
func (p *PollingStrategy) Name() string {
	return "polling"
}

// Start begins polling the given conversations.
func (p *PollingStrategy) Start(ctx context.Context, conversations []ConversationInfo, handler EventHandler) error {
	p.mu.Lock()
	p.handler = handler
	for _, conv := range conversations {
		p.conversations[conv.ID] = p.newPolled(conv.ID)
	}
	p.started = true
	p.mu.Unlock()

	ctx, p.cancel = context.WithCancel(ctx)
	go p.pollLoop(ctx)
	return nil
}

// Stop gracefully shuts down the strategy.
func (p *PollingStrategy) Stop() error {
	p.mu.Lock()
	p.started = false
	p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
	}
	return nil
}

// AddConversation adds a conversation to poll.
func (p *PollingStrategy) AddConversation(conv ConversationInfo) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conversations[conv.ID] = p.newPolled(conv.ID)
	return nil
}

// RemoveConversation stops polling a conversation.
func (p *PollingStrategy) RemoveConversation(id string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.conversations, id)
	return nil
}

// OnReconnect is a no-op: polling has no persistent connection.
func (p *PollingStrategy) OnReconnect(fn func(ctx context.Context)) {}

func (p *PollingStrategy) newPolled(id string) *polledConversation {
	return &polledConversation{
		id:           id,
		seenMessages: make(map[string]struct{}),
		interval:     p.cfg.PollingInitialInterval,
	}
}

func (p *PollingStrategy) pollLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		minWait := p.pollAll(ctx)
		if minWait <= 0 {
			minWait = p.cfg.PollingInitialInterval
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(minWait):
		}
	}
}

// pollAll polls every watched conversation once and returns the minimum
// wait before the next round, with jitter applied.
func (p *PollingStrategy) pollAll(ctx context.Context) time.Duration {
	p.mu.RLock()
	convs := make([]*polledConversation, 0, len(p.conversations))
	for _, conv := range p.conversations {
		convs = append(convs, conv)
	}
	p.mu.RUnlock()

	if len(convs) == 0 {
		return p.cfg.PollingInitialInterval
	}

	for _, conv := range convs {
		p.pollConversation(ctx, conv)
	}

	var minWait time.Duration
	for _, conv := range convs {
		wait := p.withJitter(conv.interval)
		if minWait == 0 || wait < minWait {
			minWait = wait
		}
	}
	return minWait
}

func (p *PollingStrategy) pollConversation(ctx context.Context, conv *polledConversation) {
	if p.apiClient == nil {
		return
	}

	sync, err := p.apiClient.GetConversationSync(ctx, conv.id)
	if err != nil {
		return
	}

	// No changes since last poll: back off.
	if sync.EventsHash == conv.lastHash {
		newInterval := time.Duration(float64(conv.interval) * p.cfg.PollingBackoffMultiplier)
		if newInterval > p.cfg.PollingMaxBackoff {
			newInterval = p.cfg.PollingMaxBackoff
		}
		conv.interval = newInterval
		return
	}

	// Changes detected: fetch messages and reset backoff.
	conv.lastHash = sync.EventsHash
	conv.interval = p.cfg.PollingInitialInterval

	messages, err := p.apiClient.ListMessages(ctx, conv.id)
	if err != nil {
		return
	}

	p.mu.RLock()
	handler := p.handler
	p.mu.RUnlock()

	for _, msg := range messages {
		if _, seen := conv.seenMessages[msg.ID]; seen {
			continue
		}
		conv.seenMessages[msg.ID] = struct{}{}

		if handler != nil {
			handler(ctx, &api.Event{
				Type:           api.EventMessageCreated,
				ConversationID: conv.id,
				MessageID:      msg.ID,
				OccurredAt:     msg.CreatedAt,
			})
		}
	}
}

func (p *PollingStrategy) withJitter(interval time.Duration) time.Duration {
	if p.cfg.PollingJitterFactor <= 0 {
		return interval
	}
	jitter := rand.Float64() * p.cfg.PollingJitterFactor * float64(interval)
	return interval + time.Duration(jitter)
}
