// Package chat implements the support chat responder: sentiment and
// keyword escalation checks followed by a profile-aware generative
// reply, with every turn appended to the audit log.
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
)

const (
	// apologyReply is returned when the generative model call fails.
	apologyReply = "Sorry, I'm having trouble responding right now. Please try again in a moment."

	// noProfilePlaceholder stands in when the user has no survey on record.
	noProfilePlaceholder = "no profile on record"

	// systemInstruction frames every generated reply.
	systemInstruction = "You are a helpful personal finance assistant. Answer briefly and concretely."
)

// ServiceError wraps a generative model failure. It never reaches the
// caller of Respond; the reply degrades to the apology text instead.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("chat service failed: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Service produces chat replies.
type Service struct {
	generator      interfaces.TextGenerator
	scorer         interfaces.SentimentScorer
	turns          interfaces.ChatLogStorage
	users          interfaces.UserStorage
	logger         arbor.ILogger
	threshold      float64
	keywords       []string
	supportContact string
}

// NewService creates a chat responder. Escalation keywords are matched
// case-insensitively as substrings.
func NewService(
	generator interfaces.TextGenerator,
	scorer interfaces.SentimentScorer,
	turns interfaces.ChatLogStorage,
	users interfaces.UserStorage,
	logger arbor.ILogger,
	threshold float64,
	keywords []string,
	supportContact string,
) *Service {
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw != "" {
			lowered = append(lowered, kw)
		}
	}
	return &Service{
		generator:      generator,
		scorer:         scorer,
		turns:          turns,
		users:          users,
		logger:         logger,
		threshold:      threshold,
		keywords:       lowered,
		supportContact: supportContact,
	}
}

// EscalationReply is the fixed message returned when a conversation is
// handed to human support.
func (s *Service) EscalationReply() string {
	reply := "This looks like something our support team should handle, so we're connecting you with a human agent."
	if s.supportContact != "" {
		reply += " " + s.supportContact
	}
	return reply
}

// Respond produces the reply for a user message. The escalation check
// (sentiment below threshold, or an escalation keyword present) strictly
// precedes any generative call. A generative failure degrades to a
// static apology; it is never propagated. Every reply path appends the
// turn to the audit log.
func (s *Service) Respond(ctx context.Context, username, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("message is empty")
	}

	var reply string
	score := s.scorer.Compound(message)
	if score < s.threshold || s.matchesKeyword(message) {
		reply = s.EscalationReply()
		s.logger.Info().
			Str("username", username).
			Float64("sentiment", score).
			Msg("Chat escalated to human support")
	} else {
		reply = s.generateReply(ctx, username, message)
	}

	s.record(ctx, username, message, reply)

	return reply, nil
}

// matchesKeyword reports whether the message contains any escalation
// phrase, case-insensitive.
func (s *Service) matchesKeyword(message string) bool {
	lowered := strings.ToLower(message)
	for _, kw := range s.keywords {
		if strings.Contains(lowered, kw) {
			return true
		}
	}
	return false
}

// generateReply builds the profile-aware prompt and requests a
// completion. Failures degrade to the apology reply.
func (s *Service) generateReply(ctx context.Context, username, message string) string {
	if s.generator == nil {
		s.logger.Warn().Str("username", username).Msg("Chat generator unavailable")
		return apologyReply
	}

	profile := s.profileFor(ctx, username)

	response, err := s.generator.Generate(ctx, interfaces.GenerateRequest{
		System: fmt.Sprintf("%s\nUser profile: %s", systemInstruction, profile),
		Prompt: message,
	})
	if err != nil {
		serviceErr := &ServiceError{Err: err}
		s.logger.Error().Err(serviceErr).Str("username", username).Msg("Chat reply generation failed")
		return apologyReply
	}

	return strings.TrimSpace(response)
}

// profileFor reads the user's survey text, substituting the placeholder
// when the user or survey is missing.
func (s *Service) profileFor(ctx context.Context, username string) string {
	if username == "" || s.users == nil {
		return noProfilePlaceholder
	}
	survey, err := s.users.SurveyByUsername(ctx, username)
	if err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("Profile lookup failed")
		return noProfilePlaceholder
	}
	if strings.TrimSpace(survey) == "" {
		return noProfilePlaceholder
	}
	return survey
}

// record appends the turn to the audit log. Log-append failures are
// logged but never fail the request.
func (s *Service) record(ctx context.Context, username, message, reply string) {
	if s.turns == nil {
		return
	}
	turn := &models.ChatTurn{
		ID:        uuid.NewString(),
		Username:  username,
		Message:   message,
		Reply:     reply,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.turns.Append(ctx, turn); err != nil {
		s.logger.Warn().Err(err).Str("username", username).Msg("Failed to append chat turn")
	}
}
