package llm

// Provider constants
const (
	// DefaultProvider is the default LLM provider. Floorplan analysis is
	// multimodal and image rendering needs an image-capable model, so Gemini
	// is the default end to end.
	DefaultProvider = ProviderGemini

	// ProviderOpenAI represents the OpenAI provider
	ProviderOpenAI = "openai"

	// ProviderOllama represents the Ollama provider
	ProviderOllama = "ollama"

	// ProviderAnthropic represents the Anthropic provider
	ProviderAnthropic = "anthropic"

	// ProviderGemini represents the Google Gemini provider
	ProviderGemini = "gemini"
)

// DefaultOllamaURL is the default URL for an Ollama server
const DefaultOllamaURL = "http://localhost:11434"

// DefaultImageModel is the image-generation model used for renders and
// refinements regardless of the text provider.
const DefaultImageModel = "gemini-2.5-flash-image"

// DefaultModelForProvider returns the default chat model ID for a provider.
func DefaultModelForProvider(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return "gpt-4o-mini"
	case ProviderAnthropic:
		return "claude-sonnet-4-20250514"
	case ProviderGemini:
		return "gemini-3-flash-preview"
	case ProviderOllama:
		return "llama3.1"
	default:
		return ""
	}
}
