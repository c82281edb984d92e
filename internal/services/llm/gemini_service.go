// Package llm provides the generative text capability behind the chat
// responder and the narrative paraphraser, implemented on the Gemini API.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finsight/internal/common"
	"github.com/ternarybob/finsight/internal/interfaces"
	"google.golang.org/genai"
)

// GeminiService implements interfaces.TextGenerator using Gemini models.
type GeminiService struct {
	config  *common.LLMConfig
	logger  arbor.ILogger
	client  *genai.Client
	timeout time.Duration
}

// NewGeminiService creates a Gemini-backed text generator.
//
// Initialization resolves the Google API key from config, defaults the
// chat model name, parses the timeout, and constructs the genai client.
func NewGeminiService(config *common.Config, logger arbor.ILogger) (*GeminiService, error) {
	apiKey := config.LLM.GoogleAPIKey
	if apiKey == "" {
		return nil, fmt.Errorf("Google API key is required for the LLM service (set FINSIGHT_LLM_GOOGLE_API_KEY or llm.google_api_key in config)")
	}

	if config.LLM.ChatModelName == "" {
		config.LLM.ChatModelName = "gemini-2.0-flash"
	}

	timeout, err := time.ParseDuration(config.LLM.Timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid timeout duration '%s': %w", config.LLM.Timeout, err)
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	service := &GeminiService{
		config:  &config.LLM,
		logger:  logger,
		client:  client,
		timeout: timeout,
	}

	logger.Info().
		Str("chat_model", config.LLM.ChatModelName).
		Dur("timeout", timeout).
		Msg("Gemini LLM service initialized")

	return service, nil
}

// Generate produces a completion for the request. The call is bounded by
// the configured timeout; any upstream failure is returned to the caller,
// never a partial result.
func (s *GeminiService) Generate(ctx context.Context, req interfaces.GenerateRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()

	temperature := s.config.Temperature
	if req.Temperature != nil {
		temperature = *req.Temperature
	}
	maxTokens := s.config.MaxOutputTokens
	if req.MaxOutputTokens > 0 {
		maxTokens = req.MaxOutputTokens
	}

	config := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(temperature),
	}
	if maxTokens > 0 {
		config.MaxOutputTokens = maxTokens
	}
	if req.System != "" {
		config.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}

	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}

	resp, err := s.client.Models.GenerateContent(timeoutCtx, s.config.ChatModelName, contents, config)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("prompt_length", len(req.Prompt)).
			Msg("Text generation failed")
		return "", fmt.Errorf("text generation failed: %w", err)
	}

	// Extract text from the response, taking the first candidate with
	// non-empty parts.
	var response strings.Builder
	if resp != nil && len(resp.Candidates) > 0 {
		for _, candidate := range resp.Candidates {
			if candidate.Content == nil {
				continue
			}
			for _, part := range candidate.Content.Parts {
				if part.Text != "" {
					response.WriteString(part.Text)
				}
			}
			if response.Len() > 0 {
				break
			}
		}
	}

	if response.Len() == 0 {
		return "", fmt.Errorf("no response generated from model")
	}

	s.logger.Debug().
		Int("prompt_length", len(req.Prompt)).
		Int("response_length", response.Len()).
		Dur("duration", time.Since(startTime)).
		Msg("Text generation completed")

	return response.String(), nil
}

// HealthCheck exercises the chat model with a minimal probe.
func (s *GeminiService) HealthCheck(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("genai client is not initialized")
	}

	healthCheckCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	response, err := s.Generate(healthCheckCtx, interfaces.GenerateRequest{Prompt: "ping"})
	if err != nil {
		return fmt.Errorf("chat probe failed: %w", err)
	}
	if len(strings.TrimSpace(response)) == 0 {
		return fmt.Errorf("chat probe returned empty response")
	}

	s.logger.Debug().
		Str("chat_model", s.config.ChatModelName).
		Msg("Gemini LLM service health check passed")

	return nil
}

// Close releases the client reference. The genai.Client does not require
// explicit cleanup beyond this.
func (s *GeminiService) Close() error {
	s.logger.Info().Msg("Closing Gemini LLM service")
	s.client = nil
	return nil
}
