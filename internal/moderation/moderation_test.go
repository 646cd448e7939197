package moderation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/launchlist/launchlist-go/internal/config"
	"github.com/launchlist/launchlist-go/internal/models"
)

type stubReviewer struct {
	verdict Verdict
	err     error
}

func (s *stubReviewer) Review(_ context.Context, _ Submission) (Verdict, error) {
	return s.verdict, s.err
}

func TestDecideFollowsVerdict(t *testing.T) {
	sub := Submission{Name: "Cool App"}

	svc := NewService(&stubReviewer{verdict: Verdict{Approve: true}}, config.ModerationApprove, zap.NewNop())
	status, reason := svc.Decide(context.Background(), sub)
	assert.Equal(t, models.StartupStatusApproved, status)
	assert.Empty(t, reason)

	svc = NewService(&stubReviewer{verdict: Verdict{Approve: false, Reason: "spam"}}, config.ModerationApprove, zap.NewNop())
	status, reason = svc.Decide(context.Background(), sub)
	assert.Equal(t, models.StartupStatusRejected, status)
	assert.Equal(t, "spam", reason)
}

func TestDecideFailurePolicy(t *testing.T) {
	failing := &stubReviewer{err: errors.New("upstream down")}
	sub := Submission{Name: "Cool App"}

	tests := []struct {
		policy     config.ModerationPolicy
		wantStatus string
	}{
		{config.ModerationApprove, models.StartupStatusApproved},
		{config.ModerationReject, models.StartupStatusRejected},
		{config.ModerationQueue, models.StartupStatusPending},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			svc := NewService(failing, tt.policy, zap.NewNop())
			status, _ := svc.Decide(context.Background(), sub)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestDecideNilReviewerUsesPolicy(t *testing.T) {
	svc := NewService(nil, config.ModerationQueue, zap.NewNop())
	status, _ := svc.Decide(context.Background(), Submission{Name: "x"})
	assert.Equal(t, models.StartupStatusPending, status)
}
