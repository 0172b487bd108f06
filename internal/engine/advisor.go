package engine

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"text/template"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/tatianab/miu-game/internal/logging"
	"github.com/tatianab/miu-game/internal/rules"
)

//go:embed prompts/hint.txt
var hintPrompt string

var hintTemplate = template.Must(template.New("hint").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(hintPrompt))

// ErrAdvisorUnavailable is returned when hints are requested without an advisor.
var ErrAdvisorUnavailable = errors.New("hints are disabled (set GEMINI_API_KEY)")

// Advisor produces a free-text hint for the current position. Hints are advice
// only; nothing in the engine depends on them.
type Advisor interface {
	Hint(ctx context.Context, req HintRequest) (string, error)
}

// HintRule is the part of a rule shown to the advisor.
type HintRule struct {
	ID, Name, Description string
}

// HintRequest describes the position a hint is asked for.
type HintRequest struct {
	SetTitle      string
	Bidirectional bool
	Rules         []HintRule
	Start         string
	Target        string
	Forward       []string
	Reverse       []string
	Active        rules.Direction
	Current       string
	Invalid       bool
}

// HintRequest builds the advisor input for the session's current position.
func (s *Session) HintRequest() HintRequest {
	req := HintRequest{
		SetTitle:      s.config.Title,
		Bidirectional: s.config.Bidirectional,
		Start:         s.Level().Start,
		Target:        s.Level().Target,
		Forward:       s.chain.Forward.IntermediateStrings,
		Reverse:       s.chain.Reverse.IntermediateStrings,
		Active:        s.direction,
		Current:       s.ActiveChain().CurrentString,
		Invalid:       !s.ActiveChain().CanExtend(),
	}
	for _, r := range s.config.Rules {
		req.Rules = append(req.Rules, HintRule{ID: r.ID, Name: r.Name, Description: r.Description})
	}
	return req
}

// RenderHintPrompt renders the prompt sent to the model.
func RenderHintPrompt(req HintRequest) (string, error) {
	var buf bytes.Buffer
	if err := hintTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// GeminiAdvisor asks a Gemini model for hints.
type GeminiAdvisor struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiAdvisor connects to Gemini with the given key and model name.
func NewGeminiAdvisor(ctx context.Context, apiKey, modelName string) (*GeminiAdvisor, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	model := client.GenerativeModel(modelName)
	return &GeminiAdvisor{
		client: client,
		model:  model,
	}, nil
}

// Close releases the client.
func (a *GeminiAdvisor) Close() {
	a.client.Close()
}

// Model exposes the underlying model for callers that need raw generation.
func (a *GeminiAdvisor) Model() *genai.GenerativeModel {
	return a.model
}

// Hint implements Advisor.
func (a *GeminiAdvisor) Hint(ctx context.Context, req HintRequest) (string, error) {
	prompt, err := RenderHintPrompt(req)
	if err != nil {
		return "", err
	}
	hint, err := Generate(ctx, a.model, prompt)
	if err != nil {
		logging.New("advisor").Warn("hint request failed", "error", err, "current", req.Current)
		return "", err
	}
	return hint, nil
}

// Generate sends prompt to model and returns the first text part.
func Generate(ctx context.Context, model *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content returned from Gemini")
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("unexpected response type from Gemini")
	}
	return strings.TrimSpace(string(text)), nil
}
