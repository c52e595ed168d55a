package refiner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/nguyentantai21042004/dialogue-flow/internal/dialogue"
	"github.com/nguyentantai21042004/dialogue-flow/internal/pipeline"
)

const refinePrompt = `你是一名课堂实录整理专家。下面是一节课的对话实录，每个话轮都有编号和说话人。

课题：%s
视频标题：%s

要求：
%s
- 只返回 JSON 数组，每个元素形如 {"index": 编号, "text": "润色后的文字"}
- 每个编号必须且只能出现一次

话轮：
%s`

type promptTurn struct {
	Index   int    `json:"index"`
	Speaker string `json:"speaker"`
	Text    string `json:"text"`
}

type refinedTurn struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Refine sends every turn in one request and maps the reply back by index.
// Speakers and time ranges are copied from t, never from the reply.
func (r *implRefiner) Refine(ctx context.Context, t dialogue.Transcript, contract pipeline.PromptContract) (dialogue.Transcript, error) {
	if len(r.apiKeys) == 0 {
		return dialogue.Transcript{}, errors.New("no Gemini API keys configured")
	}

	turns := make([]promptTurn, len(t.Turns))
	for i, tr := range t.Turns {
		turns[i] = promptTurn{Index: i, Speaker: r.names.Name(tr.Speaker), Text: tr.Text}
	}
	body, err := json.MarshalIndent(turns, "", "  ")
	if err != nil {
		return dialogue.Transcript{}, fmt.Errorf("encode turns: %w", err)
	}

	prompt := fmt.Sprintf(refinePrompt, contract.Theme, contract.Title, contract.Instructions, body)
	r.logger.Debug(ctx, "Refining %d turns with %s", len(turns), r.model)

	reply, err := r.callGemini(ctx, prompt)
	if err != nil {
		return dialogue.Transcript{}, err
	}

	texts, err := parseReply(reply, len(t.Turns))
	if err != nil {
		return dialogue.Transcript{}, err
	}
	return t.WithTexts(texts), nil
}

// callGemini rotates API keys on 429 / quota errors.
func (r *implRefiner) callGemini(ctx context.Context, prompt string) (string, error) {
	attempts := len(r.apiKeys)
	var lastErr error

	for range attempts {
		key, idx := r.key()
		reply, err := r.gen.generate(ctx, key, prompt)
		if err == nil {
			return reply, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if isRateLimited(err) {
			r.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
			r.rotateKey()
			lastErr = err
			continue
		}
		return "", fmt.Errorf("generate content: %w", err)
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (r *implRefiner) key() (string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.apiKeys[r.currentKey], r.currentKey
}

func (r *implRefiner) rotateKey() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.currentKey = (r.currentKey + 1) % len(r.apiKeys)
}

// parseReply decodes the model's JSON array, tolerating a markdown fence.
func parseReply(reply string, n int) ([]string, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")

	var items []refinedTurn
	if err := json.Unmarshal([]byte(strings.TrimSpace(reply)), &items); err != nil {
		return nil, fmt.Errorf("decode refined turns: %w", err)
	}

	texts := make([]string, n)
	seen := make([]bool, n)
	for _, it := range items {
		if it.Index < 0 || it.Index >= n {
			return nil, fmt.Errorf("refined turn index %d out of range", it.Index)
		}
		if seen[it.Index] {
			return nil, fmt.Errorf("refined turn index %d repeated", it.Index)
		}
		seen[it.Index] = true
		texts[it.Index] = strings.TrimSpace(it.Text)
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("refined turn %d missing", i)
		}
	}
	return texts, nil
}
