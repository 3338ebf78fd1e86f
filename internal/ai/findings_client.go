// file: internal/ai/findings_client.go
// version: 1.1.0
// guid: 6c7d8e9f-0a1b-2c3d-4e5f-6a7b8c9d0eb6

package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"
	"golang.org/x/time/rate"

	"github.com/mkurosawa/honne/internal/models"
)

// findingsEnvelope is the JSON shape the model is asked to return.
type findingsEnvelope struct {
	Findings []models.Finding `json:"findings"`
}

// FindingsClient asks an LLM to read a Japanese job posting and report
// euphemistic phrases with their likely hidden meanings. It sits upstream of
// the matching engine: the engine only ever sees the findings it returns.
type FindingsClient struct {
	client  *openai.Client
	model   string
	limiter *rate.Limiter
	enabled bool
}

// NewFindingsClient creates a findings client. With no API key the client is
// disabled and every call returns an error.
func NewFindingsClient(apiKey, model string, requestsPerMinute int) *FindingsClient {
	if apiKey == "" {
		return &FindingsClient{enabled: false}
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if requestsPerMinute <= 0 {
		requestsPerMinute = 20
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &FindingsClient{
		client:  &client,
		model:   model,
		limiter: rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), 1),
		enabled: true,
	}
}

// IsEnabled returns whether the client has credentials to work with.
func (c *FindingsClient) IsEnabled() bool {
	return c.enabled
}

const findingsSystemPrompt = `あなたは日本の求人票を読み解く専門家です。求人票の中から、実態を曖昧にしている婉曲表現を見つけてください。

対象となる表現の例:
- 「アットホームな職場」「やる気次第で昇給」「みなし残業」など、条件や環境の実態を覆い隠す言い回し
- 給与・勤務時間・休日について具体性を欠く記述

Return ONLY valid JSON in this exact shape:
{
  "findings": [
    {
      "original_phrase": "求人票に現れる表現そのまま",
      "potential_realities": ["その表現が隠している可能性のある実態"],
      "points_to_check": ["面接等で確認すべき点"],
      "severity": "high|medium|low",
      "category": "labor|salary|culture|other",
      "confidence": 0.0,
      "related_keywords": ["本文中の関連語"],
      "suggested_questions": ["確認のための質問"]
    }
  ]
}

original_phrase は必ず求人票本文に現れる表現をそのまま使ってください。`

// AnalyzePosting sends one posting to the LLM and decodes the findings.
// Malformed model output is an error; there is no repair pass.
func (c *FindingsClient) AnalyzePosting(ctx context.Context, text string) ([]models.Finding, error) {
	if !c.enabled {
		return nil, fmt.Errorf("findings client is not enabled (missing API key)")
	}
	if text == "" {
		return []models.Finding{}, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	userPrompt := fmt.Sprintf("次の求人票を分析してください:\n\n%s", text)
	jsonObjectFormat := shared.NewResponseFormatJSONObjectParam()

	completion, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(findingsSystemPrompt),
			openai.UserMessage(userPrompt),
		},
		Model:       shared.ChatModel(c.model),
		Temperature: param.NewOpt(0.2),
		MaxTokens:   param.NewOpt[int64](2000),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &jsonObjectFormat,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(completion.Choices) == 0 {
		return nil, fmt.Errorf("no response from OpenAI")
	}

	return decodeFindings(completion.Choices[0].Message.Content)
}

// decodeFindings parses the model's JSON envelope.
func decodeFindings(content string) ([]models.Finding, error) {
	var envelope findingsEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse findings response: %w", err)
	}
	return envelope.Findings, nil
}
