// Package oracle implements the generative-AI boundary. Every call here is a
// remote procedure with an explicit request/response shape: prompts go out
// through templates, responses come back as text or image bytes, and anything
// that does not parse into the expected schema fails closed with a typed error.
package oracle

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"google.golang.org/genai"

	"github.com/auradecor/studio/internal/llm"
	"github.com/auradecor/studio/prompts"
	"github.com/auradecor/studio/types"
)

// Client talks to the oracle. Structured and advisory calls run on an Eino
// chat model (any supported provider); floorplan analysis and rendering run on
// Gemini, which is the only wired backend with image input/output.
type Client struct {
	chat         model.BaseChatModel
	vision       *genai.Client
	visionModel  string
	imageModel   string
	templatesDir string
}

// New builds a Client from the LLM configuration. templatesDir may be empty;
// prompt overrides are then disabled.
func New(ctx context.Context, cfg llm.Config, templatesDir string) (*Client, error) {
	chat, err := llm.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create chat model: %w", err)
	}

	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required for floorplan analysis and rendering")
	}
	vision, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create vision client: %w", err)
	}

	imageModel := cfg.ImageModel
	if imageModel == "" {
		imageModel = llm.DefaultImageModel
	}

	return &Client{
		chat:         chat,
		vision:       vision,
		visionModel:  llm.DefaultModelForProvider(llm.ProviderGemini),
		imageModel:   imageModel,
		templatesDir: templatesDir,
	}, nil
}

// prompt loads a prompt by key and fills its template slots.
func (c *Client) prompt(key prompts.PromptKey, data any) (string, error) {
	content, err := prompts.GetPrompt(key, c.templatesDir)
	if err != nil {
		return "", err
	}
	tmpl, err := template.New(string(key)).Parse(content)
	if err != nil {
		return "", fmt.Errorf("parse prompt template %s: %w", key, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute prompt template %s: %w", key, err)
	}
	return buf.String(), nil
}

// generate runs a single-turn chat completion and returns the raw text.
func (c *Client) generate(ctx context.Context, call, prompt string) (string, error) {
	resp, err := c.chat.Generate(ctx, []*schema.Message{schema.UserMessage(prompt)})
	if err != nil {
		return "", &types.OracleUnavailableError{Call: call, Err: err}
	}
	return resp.Content, nil
}
