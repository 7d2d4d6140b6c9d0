// Package advisor wraps the external generative-text service that reviews
// draft submissions and suggests grade placements. It is a plain
// request/response call with no retry policy: any failure degrades to a
// static fallback message.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// FallbackMessage is returned whenever the advisory service cannot be reached.
const FallbackMessage = "Layanan asisten pintar sedang tidak tersedia."

// AdvisorService defines the interface for advisory-text operations
type AdvisorService interface {
	ReviewSubmission(ctx context.Context, draft map[string]interface{}) string
	SuggestPlacement(ctx context.Context, institution string, age int) (*PlacementSuggestion, error)
}

// Config holds configuration for the advisory endpoint
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// PlacementSuggestion is the structured grade/section recommendation
type PlacementSuggestion struct {
	Suggestion string `json:"suggestion"`
	Reason     string `json:"reason"`
}

type generateRequest struct {
	Prompt      string `json:"prompt"`
	Instruction string `json:"instruction,omitempty"`
	JSONOutput  bool   `json:"jsonOutput,omitempty"`
}

type generateResponse struct {
	Text string `json:"text"`
}

// AdvisorServiceImpl implements AdvisorService
type AdvisorServiceImpl struct {
	config Config
	client *http.Client
	logger zerolog.Logger
}

// NewAdvisorService creates a new AdvisorService
func NewAdvisorService(config Config, logger zerolog.Logger) AdvisorService {
	if config.Timeout <= 0 {
		config.Timeout = 10 * time.Second
	}
	return &AdvisorServiceImpl{
		config: config,
		client: &http.Client{Timeout: config.Timeout},
		logger: logger,
	}
}

// ReviewSubmission asks the advisory service for feedback on a draft
// submission. It never fails: any error collapses to the static fallback.
func (s *AdvisorServiceImpl) ReviewSubmission(ctx context.Context, draft map[string]interface{}) string {
	payload, err := json.Marshal(draft)
	if err != nil {
		return FallbackMessage
	}

	text, err := s.generate(ctx, generateRequest{
		Prompt:      fmt.Sprintf("Validasi data pendaftaran siswa berikut ini. Berikan saran atau perbaikan jika ada format yang salah (misal No Telepon, Format Nama, dll). Data: %s", payload),
		Instruction: "Anda adalah asisten administrasi sekolah yang teliti di Indonesia. Berikan feedback singkat dan profesional dalam Bahasa Indonesia.",
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Advisory review call failed, returning fallback message")
		return FallbackMessage
	}
	return text
}

// SuggestPlacement asks for a grade/section recommendation for an applicant.
func (s *AdvisorServiceImpl) SuggestPlacement(ctx context.Context, institution string, age int) (*PlacementSuggestion, error) {
	text, err := s.generate(ctx, generateRequest{
		Prompt:     fmt.Sprintf("Seorang siswa mendaftar ke %s dengan usia %d tahun. Berikan rekomendasi Tingkat/Rombel yang sesuai di sistem pendidikan Indonesia (MTs untuk SMP, MA untuk SMA).", institution, age),
		JSONOutput: true,
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("Advisory placement call failed")
		return nil, err
	}

	var suggestion PlacementSuggestion
	if err := json.Unmarshal([]byte(text), &suggestion); err != nil {
		return nil, fmt.Errorf("advisory service returned malformed suggestion: %w", err)
	}
	return &suggestion, nil
}

func (s *AdvisorServiceImpl) generate(ctx context.Context, request generateRequest) (string, error) {
	if s.config.Endpoint == "" {
		return "", fmt.Errorf("advisory endpoint not configured")
	}

	body, err := json.Marshal(request)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.config.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("advisory service returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decoding advisory response: %w", err)
	}
	return out.Text, nil
}
