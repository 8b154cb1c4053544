package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"
)

// OpenAITranslator translates subtitle lines via the chat completions API.
type OpenAITranslator struct {
	apiKey     string
	baseURL    string
	model      string
	httpClient *http.Client
}

func NewOpenAITranslator(apiKey, baseURL, model string) *OpenAITranslator {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}
	return &OpenAITranslator{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		httpClient: &http.Client{
			Timeout: 2 * time.Minute,
		},
	}
}

func (o *OpenAITranslator) Line(ctx context.Context, text, targetLang, contextText string) (string, error) {
	if o.apiKey == "" {
		return "", fmt.Errorf("OpenAI API key not configured")
	}

	userPrompt := fmt.Sprintf("Translate this subtitle line into natural, conversational %s:\n\nLine: %s",
		langName(targetLang), text)
	if contextText != "" {
		userPrompt += "\n\nSurrounding context: " + contextText
	}

	reqBody := map[string]interface{}{
		"model": o.model,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt(targetLang)},
			{"role": "user", "content": userPrompt},
		},
		// Low randomness keeps repeated runs consistent across segments.
		"temperature": 0.3,
		"max_tokens":  200,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+"/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("translation request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("translation API error (status %d): %s", resp.StatusCode, string(body))
	}

	var chatResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", fmt.Errorf("parse translation response: %w", err)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("empty translation response")
	}

	return chatResp.Choices[0].Message.Content, nil
}
