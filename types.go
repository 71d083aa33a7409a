package supp

import (
	"encoding/json"
	"time"
)

// ConversationStatus is the lifecycle state of a conversation.
type ConversationStatus string

// Conversation statuses.
const (
	StatusOpen     ConversationStatus = "open"
	StatusPending  ConversationStatus = "pending"
	StatusResolved ConversationStatus = "resolved"
	StatusClosed   ConversationStatus = "closed"
)

// Priority is the urgency ranking assigned to a conversation.
type Priority string

// Conversation priorities.
const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Channel identifies where a conversation originated.
type Channel string

// Conversation channels.
const (
	ChannelEmail Channel = "email"
	ChannelChat  Channel = "chat"
	ChannelSlack Channel = "slack"
)

// Role identifies the author side of a message.
type Role string

// Message roles.
const (
	RoleCustomer  Role = "customer"
	RoleAgent     Role = "agent"
	RoleAssistant Role = "assistant"
)

// ApprovalStatus is the decision state of an approval request.
type ApprovalStatus string

// Approval statuses.
const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Conversation is a support conversation with a customer.
type Conversation struct {
	ID            string
	Subject       string
	Status        ConversationStatus
	Priority      Priority
	Channel       Channel
	CustomerEmail string
	AssigneeID    string
	TeamID        string
	Tags          []string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastMessageAt *time.Time
}

// Message is a single message within a conversation.
type Message struct {
	ID             string
	ConversationID string
	Role           Role
	Body           string
	AuthorID       string
	CreatedAt      time.Time
}

// Classification is the model's assessment of a customer message.
type Classification struct {
	Intent            string
	Sentiment         string
	Urgency           string
	Confidence        float64
	SuggestedPriority Priority
	Language          string
}

// RuleCondition is one predicate of a routing or priority rule.
type RuleCondition struct {
	Field    string
	Operator string
	Value    string
}

// RoutingDecision is the server's answer to "who should handle this".
type RoutingDecision struct {
	ConversationID string
	TeamID         string
	AssigneeID     string
	RuleID         string
	Reason         string
	Confidence     float64
}

// RoutingRule assigns conversations matching its conditions to a team or agent.
type RoutingRule struct {
	ID         string
	Name       string
	Enabled    bool
	Conditions []RuleCondition
	TeamID     string
	AssigneeID string
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// PriorityRule sets the priority of conversations matching its conditions.
type PriorityRule struct {
	ID         string
	Name       string
	Enabled    bool
	Priority   Priority
	Conditions []RuleCondition
	Position   int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Integration is a connected third-party provider.
type Integration struct {
	ID          string
	Provider    string
	Status      string
	Settings    map[string]string
	ConnectedAt time.Time
}

// AnalyticsOverview aggregates conversation metrics over a window.
type AnalyticsOverview struct {
	TotalConversations    int
	OpenConversations     int
	ResolvedConversations int
	AvgFirstResponse      time.Duration
	AvgResolution         time.Duration
	DeflectionRate        float64
}

// UsagePoint is one bucket of usage counts.
type UsagePoint struct {
	Date            string
	Conversations   int
	Classifications int
	CreditsSpent    float64
}

// Balance is the workspace's credit balance.
type Balance struct {
	CreditsRemaining float64
	SpendCap         *float64
	SpendThisPeriod  float64
	Currency         string
	PlanID           string
	PeriodEnd        time.Time
}

// BillingUsage is the credit spend for the current billing period.
type BillingUsage struct {
	PeriodStart  time.Time
	PeriodEnd    time.Time
	CreditsSpent float64
	Breakdown    map[string]float64
}

// APIKey is an API key's metadata. The full secret is only available on
// CreatedAPIKey at creation time.
type APIKey struct {
	ID         string
	Name       string
	Prefix     string
	CreatedAt  time.Time
	LastUsedAt *time.Time
	ExpiresAt  *time.Time
	Revoked    bool
}

// CreatedAPIKey is a freshly minted API key including its one-time secret.
type CreatedAPIKey struct {
	APIKey
	Key string
}

// Approval is an action awaiting (or past) human sign-off.
type Approval struct {
	ID             string
	ConversationID string
	Action         string
	Status         ApprovalStatus
	RequestedBy    string
	Payload        json.RawMessage
	CreatedAt      time.Time
	DecidedAt      *time.Time
	DecidedBy      string
}

// Webhook is a registered webhook endpoint. Secret is populated only on
// creation and rotation.
type Webhook struct {
	ID        string
	URL       string
	Events    []string
	Active    bool
	Secret    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// WebhookTestResult reports the outcome of a test delivery.
type WebhookTestResult struct {
	Success    bool
	StatusCode int
	Error      string
}

// WebhookSecretRotation is the result of rotating a webhook's signing
// secret. The previous secret stays valid until PreviousValidUntil.
type WebhookSecretRotation struct {
	Secret             string
	PreviousValidUntil time.Time
}

// Workspace is the workspace configuration attached to the API key.
type Workspace struct {
	ID              string
	Name            string
	Plan            string
	AllowedChannels []Channel
	MaxRoutingRules int
	CreatedAt       time.Time
}

// EventType identifies the kind of a conversation event.
type EventType string

// Conversation event types.
const (
	EventMessageCreated      EventType = "message.created"
	EventConversationUpdated EventType = "conversation.updated"
	EventApprovalRequested   EventType = "approval.requested"
)

// ConversationEvent is a server-pushed event on a watched conversation.
// Message is populated for EventMessageCreated.
type ConversationEvent struct {
	Type           EventType
	ConversationID string
	Message        *Message
	ApprovalID     string
	OccurredAt     time.Time
}
