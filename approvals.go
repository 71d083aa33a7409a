package supp

import (
	"context"

	"github.com/suppsupport/client-go/internal/api"
)

// Approvals provides access to approval requests awaiting human sign-off,
// such as AI reply drafts or refunds.
type Approvals interface {
	// List returns approvals, optionally filtered by status. Pass an empty
	// status to list all.
	List(ctx context.Context, status ApprovalStatus) ([]*Approval, error)

	// Get returns an approval by ID.
	Get(ctx context.Context, id string) (*Approval, error)

	// Approve approves a pending approval. The comment is recorded on the
	// decision and may be empty.
	Approve(ctx context.Context, id, comment string) (*Approval, error)

	// Reject rejects a pending approval. The reason is recorded on the
	// decision and may be empty.
	Reject(ctx context.Context, id, reason string) (*Approval, error)
}

// approvalsImpl implements the Approvals interface.
type approvalsImpl struct {
	client *Client
}

// Approvals returns the approval API.
func (c *Client) Approvals() Approvals {
	return &approvalsImpl{client: c}
}

func (r *approvalsImpl) List(ctx context.Context, status ApprovalStatus) ([]*Approval, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dtos, err := r.client.apiClient.ListApprovals(ctx, string(status))
	if err != nil {
		return nil, err
	}

	approvals := make([]*Approval, 0, len(dtos))
	for i := range dtos {
		approvals = append(approvals, approvalFromAPI(&dtos[i]))
	}
	return approvals, nil
}

func (r *approvalsImpl) Get(ctx context.Context, id string) (*Approval, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.GetApproval(ctx, id)
	if err != nil {
		return nil, err
	}
	return approvalFromAPI(dto), nil
}

func (r *approvalsImpl) Approve(ctx context.Context, id, comment string) (*Approval, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.ApproveApproval(ctx, id, comment)
	if err != nil {
		return nil, err
	}
	return approvalFromAPI(dto), nil
}

func (r *approvalsImpl) Reject(ctx context.Context, id, reason string) (*Approval, error) {
	if err := r.client.checkClosed(); err != nil {
		return nil, err
	}

	dto, err := r.client.apiClient.RejectApproval(ctx, id, reason)
	if err != nil {
		return nil, err
	}
	return approvalFromAPI(dto), nil
}

func approvalFromAPI(dto *api.Approval) *Approval {
	return &Approval{
		ID:             dto.ID,
		ConversationID: dto.ConversationID,
		Action:         dto.Action,
		Status:         ApprovalStatus(dto.Status),
		RequestedBy:    dto.RequestedBy,
		Payload:        dto.Payload,
		CreatedAt:      dto.CreatedAt,
		DecidedAt:      dto.DecidedAt,
		DecidedBy:      dto.DecidedBy,
	}
}
