package chat

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/interfaces"
	"github.com/ternarybob/finsight/internal/models"
)

type fakeGenerator struct {
	response string
	err      error
	calls    int
	lastReq  interfaces.GenerateRequest
}

func (f *fakeGenerator) Generate(ctx context.Context, req interfaces.GenerateRequest) (string, error) {
	f.calls++
	f.lastReq = req
	return f.response, f.err
}

func (f *fakeGenerator) HealthCheck(ctx context.Context) error { return nil }
func (f *fakeGenerator) Close() error                          { return nil }

// fakeScorer returns a fixed compound score for any message.
type fakeScorer struct {
	score float64
}

func (f *fakeScorer) Compound(text string) float64 { return f.score }

type fakeTurns struct {
	appended []models.ChatTurn
	err      error
}

func (f *fakeTurns) Append(ctx context.Context, turn *models.ChatTurn) error {
	if f.err != nil {
		return f.err
	}
	f.appended = append(f.appended, *turn)
	return nil
}

func (f *fakeTurns) ListByUser(ctx context.Context, username string, limit int) ([]models.ChatTurn, error) {
	return f.appended, nil
}

func (f *fakeTurns) Count(ctx context.Context) (int, error) { return len(f.appended), nil }

type fakeUsers struct {
	surveys map[string]string
	err     error
}

func (f *fakeUsers) Create(ctx context.Context, user *models.User) error { return nil }

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return nil, nil
}

func (f *fakeUsers) SurveyByUsername(ctx context.Context, username string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.surveys[username], nil
}

func (f *fakeUsers) SaveSurvey(ctx context.Context, username, survey string) error { return nil }

func defaultKeywords() []string {
	return []string{"talk to an agent", "human support", "customer service"}
}

func newTestService(gen *fakeGenerator, scorer *fakeScorer, turns *fakeTurns, users *fakeUsers) *Service {
	return NewService(gen, scorer, turns, users, arbor.NewLogger(),
		-0.5, defaultKeywords(), "Support is available 9am-5pm weekdays on 1800 346 744.")
}

func TestRespond_KeywordEscalationPrecedesGeneration(t *testing.T) {
	tests := []struct {
		name    string
		message string
	}{
		{"exact phrase", "I want to talk to an agent"},
		{"mixed case", "Please let me TALK TO AN AGENT now"},
		{"embedded", "honestly, can I just talk to an agent about this?"},
		{"other keyword", "get me Customer Service"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: "should not be used"}
			turns := &fakeTurns{}
			// Positive sentiment: only the keyword should trigger escalation.
			service := newTestService(gen, &fakeScorer{score: 0.9}, turns, &fakeUsers{})

			reply, err := service.Respond(context.Background(), "alice", tt.message)
			require.NoError(t, err)

			assert.Equal(t, service.EscalationReply(), reply)
			assert.Zero(t, gen.calls, "escalation must strictly precede the generative call")
		})
	}
}

func TestRespond_KeywordEscalationSurvivesGeneratorOutage(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("model down")}
	service := newTestService(gen, &fakeScorer{score: 0.5}, &fakeTurns{}, &fakeUsers{})

	reply, err := service.Respond(context.Background(), "alice", "talk to an agent")
	require.NoError(t, err)
	assert.Equal(t, service.EscalationReply(), reply)
	assert.Zero(t, gen.calls)
}

func TestRespond_SentimentEscalation(t *testing.T) {
	gen := &fakeGenerator{response: "should not be used"}
	service := newTestService(gen, &fakeScorer{score: -0.8}, &fakeTurns{}, &fakeUsers{})

	// No escalation keyword; the score alone triggers the hand-off.
	reply, err := service.Respond(context.Background(), "alice", "everything broke and nothing works")
	require.NoError(t, err)

	assert.Equal(t, service.EscalationReply(), reply)
	assert.Zero(t, gen.calls)
}

func TestRespond_ThresholdIsStrict(t *testing.T) {
	gen := &fakeGenerator{response: "generated reply"}
	service := newTestService(gen, &fakeScorer{score: -0.5}, &fakeTurns{}, &fakeUsers{})

	// Exactly at the threshold does not escalate; below it does.
	reply, err := service.Respond(context.Background(), "alice", "not thrilled about these fees")
	require.NoError(t, err)
	assert.Equal(t, "generated reply", reply)
	assert.Equal(t, 1, gen.calls)
}

func TestRespond_GeneratedReplyEmbedsProfile(t *testing.T) {
	gen := &fakeGenerator{response: "here is a savings plan"}
	users := &fakeUsers{surveys: map[string]string{"alice": "age 34, moderate risk appetite, saving for a house"}}
	service := newTestService(gen, &fakeScorer{score: 0.3}, &fakeTurns{}, users)

	reply, err := service.Respond(context.Background(), "alice", "how should I save?")
	require.NoError(t, err)

	assert.Equal(t, "here is a savings plan", reply)
	assert.Contains(t, gen.lastReq.System, "age 34, moderate risk appetite")
	assert.Equal(t, "how should I save?", gen.lastReq.Prompt)
}

func TestRespond_MissingProfileUsesPlaceholder(t *testing.T) {
	tests := []struct {
		name  string
		users *fakeUsers
	}{
		{"unknown user", &fakeUsers{surveys: map[string]string{}}},
		{"lookup failure", &fakeUsers{err: fmt.Errorf("storage offline")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{response: "reply"}
			service := newTestService(gen, &fakeScorer{score: 0.3}, &fakeTurns{}, tt.users)

			_, err := service.Respond(context.Background(), "bob", "hello")
			require.NoError(t, err)
			assert.Contains(t, gen.lastReq.System, noProfilePlaceholder)
		})
	}
}

func TestRespond_GeneratorFailureReturnsApology(t *testing.T) {
	gen := &fakeGenerator{err: fmt.Errorf("deadline exceeded")}
	turns := &fakeTurns{}
	service := newTestService(gen, &fakeScorer{score: 0.3}, turns, &fakeUsers{})

	reply, err := service.Respond(context.Background(), "alice", "what is an index fund?")
	require.NoError(t, err, "a generative failure must not propagate to the caller")
	assert.Equal(t, apologyReply, reply)
}

func TestRespond_PersistsEveryReplyPath(t *testing.T) {
	tests := []struct {
		name    string
		gen     *fakeGenerator
		scorer  *fakeScorer
		message string
	}{
		{"generated", &fakeGenerator{response: "reply"}, &fakeScorer{score: 0.3}, "hello"},
		{"escalated", &fakeGenerator{}, &fakeScorer{score: -0.9}, "this is awful"},
		{"apology", &fakeGenerator{err: fmt.Errorf("down")}, &fakeScorer{score: 0.3}, "hello"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			turns := &fakeTurns{}
			service := newTestService(tt.gen, tt.scorer, turns, &fakeUsers{})

			reply, err := service.Respond(context.Background(), "alice", tt.message)
			require.NoError(t, err)

			require.Len(t, turns.appended, 1)
			turn := turns.appended[0]
			assert.NotEmpty(t, turn.ID)
			assert.Equal(t, "alice", turn.Username)
			assert.Equal(t, tt.message, turn.Message)
			assert.Equal(t, reply, turn.Reply)
			assert.False(t, turn.CreatedAt.IsZero())
		})
	}
}

func TestRespond_AuditAppendFailureDoesNotFailRequest(t *testing.T) {
	gen := &fakeGenerator{response: "reply"}
	turns := &fakeTurns{err: fmt.Errorf("disk full")}
	service := newTestService(gen, &fakeScorer{score: 0.3}, turns, &fakeUsers{})

	reply, err := service.Respond(context.Background(), "alice", "hello")
	require.NoError(t, err)
	assert.Equal(t, "reply", reply)
}

func TestRespond_EmptyMessage(t *testing.T) {
	service := newTestService(&fakeGenerator{}, &fakeScorer{}, &fakeTurns{}, &fakeUsers{})

	_, err := service.Respond(context.Background(), "alice", "   ")
	require.Error(t, err)
}
