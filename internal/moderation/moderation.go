// Package moderation reviews startup submissions with an LLM before they
// reach the public directory.
package moderation

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/launchlist/launchlist-go/internal/config"
	"github.com/launchlist/launchlist-go/internal/models"
)

// Submission is the content under review.
type Submission struct {
	Name        string `json:"name"`
	Tagline     string `json:"tagline"`
	Description string `json:"description"`
	WebsiteURL  string `json:"website_url"`
}

// Verdict is the reviewer's decision.
type Verdict struct {
	Approve bool   `json:"approve"`
	Reason  string `json:"reason"`
}

// Reviewer decides whether a submission may be listed.
type Reviewer interface {
	Review(ctx context.Context, sub Submission) (Verdict, error)
}

const reviewPrompt = `You review submissions to a startup directory.
Reject spam, scams, adult content, malware distribution, and listings whose
name or description is abusive or meaningless. Approve everything else.
Respond with JSON only.

Submission:
%s`

// GeminiReviewer reviews submissions with the Gemini API.
type GeminiReviewer struct {
	client *genai.Client
	model  string
}

// NewGeminiReviewer creates a Gemini-backed reviewer.
func NewGeminiReviewer(ctx context.Context, apiKey, model string) (*GeminiReviewer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiReviewer{client: client, model: model}, nil
}

// Review sends the submission to the model and parses its JSON verdict.
func (r *GeminiReviewer) Review(ctx context.Context, sub Submission) (Verdict, error) {
	payload, err := json.Marshal(sub)
	if err != nil {
		return Verdict{}, err
	}

	result, err := r.client.Models.GenerateContent(ctx,
		r.model,
		genai.Text(fmt.Sprintf(reviewPrompt, payload)),
		&genai.GenerateContentConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"approve": {Type: genai.TypeBoolean},
					"reason":  {Type: genai.TypeString},
				},
				Required: []string{"approve", "reason"},
			},
		},
	)
	if err != nil {
		return Verdict{}, fmt.Errorf("moderation call failed: %w", err)
	}

	var verdict Verdict
	if err := json.Unmarshal([]byte(result.Text()), &verdict); err != nil {
		return Verdict{}, fmt.Errorf("failed to parse moderation verdict: %w", err)
	}

	return verdict, nil
}

// Service applies the configured failure policy on top of a Reviewer.
type Service struct {
	reviewer Reviewer
	policy   config.ModerationPolicy
	log      *zap.Logger
}

func NewService(reviewer Reviewer, policy config.ModerationPolicy, log *zap.Logger) *Service {
	return &Service{reviewer: reviewer, policy: policy, log: log}
}

// Decide returns the initial startup status for a submission plus an
// optional rejection reason. When the reviewer is unavailable or fails, the
// configured policy applies: approve (fail-open), reject, or queue (leave
// pending for human review).
func (s *Service) Decide(ctx context.Context, sub Submission) (status string, reason string) {
	if s.reviewer == nil {
		return s.fallback(fmt.Errorf("no reviewer configured"))
	}

	verdict, err := s.reviewer.Review(ctx, sub)
	if err != nil {
		return s.fallback(err)
	}

	if verdict.Approve {
		return models.StartupStatusApproved, ""
	}
	return models.StartupStatusRejected, verdict.Reason
}

func (s *Service) fallback(err error) (string, string) {
	s.log.Warn("moderation unavailable, applying failure policy",
		zap.String("policy", string(s.policy)),
		zap.Error(err),
	)

	switch s.policy {
	case config.ModerationReject:
		return models.StartupStatusRejected, "automatic review unavailable"
	case config.ModerationQueue:
		return models.StartupStatusPending, ""
	default:
		return models.StartupStatusApproved, ""
	}
}
