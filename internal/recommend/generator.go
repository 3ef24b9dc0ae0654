// Package recommend produces AI-backed marketing recommendations for a
// region and date window. Generation never fails: when the model is
// unreachable or returns garbage, a single deterministic fallback
// recommendation stands in for the batch.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/eventcal/eventcal-go/internal/model"
	"github.com/eventcal/eventcal-go/internal/store"
)

const (
	chatTemperature = 0.7
	chatTimeout     = 60 * time.Second
)

// Request carries everything the prompt needs.
type Request struct {
	RegionID  int64
	StartDate string
	EndDate   string
	Language  string
	Events    []store.Event
	Holidays  []store.Holiday
}

// Candidate is one generated recommendation, not yet persisted.
type Candidate struct {
	Title           string  `json:"title"`
	Description     string  `json:"description"`
	SuggestedDate   string  `json:"suggestedDate"`
	ConfidenceScore float64 `json:"confidenceScore"`
	Reasoning       string  `json:"reasoning"`
	EventTypeID     int64   `json:"eventTypeId"`
}

// chatFunc performs one chat completion. Tests substitute their own.
type chatFunc func(ctx context.Context, system, user string) (string, error)

// Generator talks to an OpenAI-compatible chat endpoint.
type Generator struct {
	apiKey  string
	baseURL string
	model   string

	chat chatFunc

	clientOnce sync.Once
	client     openai.Client
}

// New builds a Generator for the given endpoint. An empty apiKey
// disables the remote call; every request then yields the fallback.
func New(apiKey, baseURL, model string) *Generator {
	g := &Generator{apiKey: apiKey, baseURL: baseURL, model: model}
	g.chat = g.completeChat
	return g
}

// Generate returns 3-5 model-produced candidates, or exactly one
// fallback candidate when anything goes wrong.
func (g *Generator) Generate(ctx context.Context, req Request) []Candidate {
	zh := isChinese(req.Language)

	if g.apiKey == "" {
		return []Candidate{fallback(req, zh)}
	}

	content, err := g.chat(ctx, systemPrompt(zh), buildPrompt(req, zh))
	if err != nil {
		slog.Warn("recommendation generation failed, using fallback",
			"region_id", req.RegionID, "error", err)
		return []Candidate{fallback(req, zh)}
	}

	candidates, err := parseCandidates(content)
	if err != nil {
		slog.Warn("unparseable recommendation response, using fallback",
			"region_id", req.RegionID, "error", err)
		return []Candidate{fallback(req, zh)}
	}

	for i := range candidates {
		candidates[i].ConfidenceScore = clampConfidence(candidates[i].ConfidenceScore)
		if candidates[i].EventTypeID == 0 {
			candidates[i].EventTypeID = model.CategoryMarketing
		}
	}
	return candidates
}

func (g *Generator) completeChat(ctx context.Context, system, user string) (string, error) {
	g.clientOnce.Do(func() {
		opts := []option.RequestOption{
			option.WithAPIKey(g.apiKey),
			option.WithRequestTimeout(chatTimeout),
		}
		if g.baseURL != "" {
			opts = append(opts, option.WithBaseURL(g.baseURL))
		}
		g.client = openai.NewClient(opts...)
	})

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(g.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		Temperature: openai.Float(chatTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion: no choices returned")
	}
	return resp.Choices[0].Message.Content, nil
}

// parseCandidates extracts the recommendations array, tolerating
// markdown code fences around the JSON body.
func parseCandidates(content string) ([]Candidate, error) {
	content = stripFences(content)

	var payload struct {
		Recommendations []Candidate `json:"recommendations"`
	}
	if err := json.Unmarshal([]byte(content), &payload); err != nil {
		return nil, fmt.Errorf("decoding recommendations: %w", err)
	}
	if len(payload.Recommendations) == 0 {
		return nil, fmt.Errorf("empty recommendations array")
	}
	return payload.Recommendations, nil
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// clampConfidence forces scores into the advertised [0.7, 1.0] band.
func clampConfidence(score float64) float64 {
	if score < 0.7 {
		return 0.7
	}
	if score > 1.0 {
		return 1.0
	}
	return score
}

// fallback builds the deterministic stand-in candidate: suggested date
// at the window end, confidence 0.8, marketing category.
func fallback(req Request, zh bool) Candidate {
	c := cultureFor(req.RegionID, zh)
	if zh {
		return Candidate{
			Title:           fmt.Sprintf("Winner12 %s足球预测推广活动", c.name),
			Description:     fmt.Sprintf("针对%s足球爱好者的Winner12 AI预测产品专项推广，结合当地足球文化特色，提升用户对AI足球预测的认知和使用率", c.name),
			SuggestedDate:   req.EndDate,
			ConfidenceScore: 0.8,
			Reasoning:       fmt.Sprintf("%s地区具有浓厚的足球文化氛围，Winner12的AI预测功能能够满足当地足球爱好者对比赛分析的需求，是理想的产品推广时机", c.name),
			EventTypeID:     model.CategoryMarketing,
		}
	}
	return Candidate{
		Title:           fmt.Sprintf("Winner12 %s Football Prediction Campaign", c.name),
		Description:     fmt.Sprintf("Specialized Winner12 AI prediction product promotion targeting %s football enthusiasts, combining local football culture to enhance user awareness and adoption of AI football prediction", c.name),
		SuggestedDate:   req.EndDate,
		ConfidenceScore: 0.8,
		Reasoning:       fmt.Sprintf("%s region has a strong football culture atmosphere, Winner12's AI prediction features can meet local football fans' needs for match analysis, making it an ideal product promotion opportunity", c.name),
		EventTypeID:     model.CategoryMarketing,
	}
}
