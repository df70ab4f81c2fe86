package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/auradecor/studio/internal/llm"
)

// LoadLLMConfig loads LLM configuration from Viper and environment variables.
// It handles precedence: explicit Viper config > environment variables >
// defaults. Interactive prompting stays in the CLI layer.
func LoadLLMConfig() (llm.Config, error) {
	provider := viper.GetString("llm.provider")
	if provider == "" {
		provider = llm.DefaultProvider
	}

	llmProvider, err := llm.ValidateProvider(provider)
	if err != nil {
		return llm.Config{}, fmt.Errorf("invalid provider: %w", err)
	}

	model := viper.GetString("llm.model")
	if model == "" {
		model = llm.DefaultModelForProvider(string(llmProvider))
	}

	imageModel := viper.GetString("llm.imageModel")
	if imageModel == "" {
		imageModel = llm.DefaultImageModel
	}

	// A missing API key is not an error here; the CLI may prompt for it, and
	// Ollama does not need one.
	apiKey := ResolveAPIKey(llmProvider)

	baseURL := viper.GetString("llm.baseURL")
	if baseURL == "" && llmProvider == llm.ProviderOllama {
		baseURL = llm.DefaultOllamaURL
	}

	return llm.Config{
		Provider:   llmProvider,
		Model:      model,
		ImageModel: imageModel,
		APIKey:     apiKey,
		BaseURL:    baseURL,
	}, nil
}

// ResolveAPIKey returns the best API key for the given provider using
// per-provider config keys, then provider-specific env vars.
func ResolveAPIKey(provider llm.Provider) string {
	if viper.IsSet(fmt.Sprintf("llm.apiKeys.%s", provider)) {
		if key := strings.TrimSpace(viper.GetString(fmt.Sprintf("llm.apiKeys.%s", provider))); key != "" {
			return key
		}
	}
	if viper.IsSet("llm.apiKey") {
		if key := strings.TrimSpace(viper.GetString("llm.apiKey")); key != "" {
			return key
		}
	}
	return providerEnvKey(provider)
}

func providerEnvKey(provider llm.Provider) string {
	switch provider {
	case llm.ProviderOpenAI:
		return strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	case llm.ProviderAnthropic:
		return strings.TrimSpace(os.Getenv("ANTHROPIC_API_KEY"))
	case llm.ProviderGemini:
		key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
		if key == "" {
			key = strings.TrimSpace(os.Getenv("GOOGLE_API_KEY"))
		}
		return key
	default:
		return ""
	}
}
