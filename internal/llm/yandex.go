package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Morwran/yagpt"
)

// IAM tokens live up to 12 hours; refresh well before that.
const iamTokenTTL = time.Hour

type YandexClient struct {
	ya         yagpt.YaGPTFace
	createIAM  func() (string, error)
	mu         sync.Mutex
	iamToken   string
	iamFetched time.Time
}

func NewYandex(oauthToken, folderID string) (*YandexClient, error) {
	iam, err := yagpt.NewYaIam(oauthToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init yandex iam: %w", err)
	}

	ya, err := yagpt.NewYagpt(folderID)
	if err != nil {
		return nil, fmt.Errorf("failed to init yagpt: %w", err)
	}

	c := &YandexClient{
		ya: ya,
		createIAM: func() (string, error) {
			resp, err := iam.Create()
			if err != nil {
				return "", err
			}
			return resp.IamToken, nil
		},
	}
	if _, err := c.token(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *YandexClient) token() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.iamToken != "" && time.Since(c.iamFetched) < iamTokenTTL {
		return c.iamToken, nil
	}
	tok, err := c.createIAM()
	if err != nil {
		return "", fmt.Errorf("failed to create iam token: %w", err)
	}
	c.iamToken = tok
	c.iamFetched = time.Now()
	return tok, nil
}

func (c *YandexClient) Generate(ctx context.Context, messages []Message) (Response, error) {
	iamToken, err := c.token()
	if err != nil {
		return Response{}, err
	}

	yaMsgs := make([]yagpt.Message, 0, len(messages))
	for _, m := range messages {
		yaMsgs = append(yaMsgs, yagpt.Message{Role: yandexRole(m.Role), Content: m.Content})
	}

	resp, err := c.ya.CompletionWithCtx(ctx, iamToken, yaMsgs)
	if err != nil {
		return Response{}, fmt.Errorf("yagpt completion failed: %w", err)
	}
	if resp == nil || len(resp.Alternatives) == 0 {
		return Response{}, errors.New("yagpt returned empty response")
	}

	out := Response{Content: resp.Alternatives[0].Message.Content, Model: yagpt.YaModelLite}
	out.PromptTokens = int(resp.Usage.InputTextTokens)
	out.CompletionTokens = int(resp.Usage.CompletionTokens)
	out.TotalTokens = int(resp.Usage.TotalTokens)
	return out, nil
}

func yandexRole(role string) string {
	switch role {
	case RoleSystem:
		return "system"
	case RoleAssistant:
		return "assistant"
	default:
		return "user"
	}
}
