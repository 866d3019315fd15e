package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Input 是一次審核請求的完整上下文
type Input struct {
	TopicTitle string   // 辯論主題標題
	History    []string // 最近的辯論訊息，舊到新，已標註發言者立場
	Side       string   // 發言者當前立場的顯示名稱
	Username   string   // 發言者用戶名
	Message    string   // 原始訊息內容
}

// Moderator 將原始訊息改寫為文明的轉述
// 回傳空字串且無錯誤表示訊息只含人身攻擊，應被拒絕；
// 錯誤表示審核呼叫本身失敗（網路、超時、配額等），由呼叫端處理
type Moderator interface {
	Moderate(ctx context.Context, input Input) (string, error)
}

const defaultBaseURL = "https://api.groq.com/openai/v1"

// GroqClient 透過 Groq 的 chat completions API 實作 Moderator
type GroqClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

func NewGroqClient(apiKey, model string) *GroqClient {
	return &GroqClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Moderate 把訊息連同辯論上下文送交語言模型，取得文明轉述
func (c *GroqClient) Moderate(ctx context.Context, input Input) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: buildPrompt(input)}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("moderation service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return "", err
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("moderation service returned no choices")
	}

	content := strings.TrimSpace(chatResp.Choices[0].Message.Content)
	// 模型以 "Invalid" 回應表示訊息只含人身攻擊
	if lower := strings.ToLower(content); lower == "invalid" || lower == "invalid." {
		return "", nil
	}
	return content, nil
}

// buildPrompt 組裝送交模型的審核提示
func buildPrompt(input Input) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Debate Topic: %s\n\n", input.TopicTitle)
	b.WriteString("Debate Chat History:\n")
	b.WriteString(strings.Join(input.History, "\n"))
	b.WriteString("\n\n")
	b.WriteString("Respond with a polite and civil summary of the arguments made by the message below. ")
	b.WriteString("Make sure it is in line with the message author's position, no matter how controversial. ")
	b.WriteString("DO NOT begin your message with any other content, just rephrase the message in a polite and civil way but without losing the intensity and surety that the author intended in the message. ")
	b.WriteString("Don't use any markdown formatting - just plain text. Respond as if you're the one writing the message (so response must be in first person and conversational). Keep it concise but don't skip any points or make up new points. ")
	b.WriteString("If the message is not supporting the side that the user is on, summarize it anyway.\n\n")
	b.WriteString("If the message contains only personal attacks or hate speech without any substantive points, respond with 'Invalid'\n\n")
	fmt.Fprintf(&b, "Message Author: %s\n", input.Username)
	fmt.Fprintf(&b, "Message Author's Position: %s\n\n", input.Side)
	fmt.Fprintf(&b, "Message: %s", input.Message)
	return b.String()
}
