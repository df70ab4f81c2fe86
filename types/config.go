package types

// AppConfig is the unified application configuration, populated by Viper from
// .auradecor.yaml, AURADECOR_* environment variables, and flags.
type AppConfig struct {
	Project   ProjectConfig   `mapstructure:"project" validate:"required"`
	LLM       LLMConfig       `mapstructure:"llm" validate:"required"`
	Server    ServerConfig    `mapstructure:"server"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Verbose   bool            `mapstructure:"verbose"`
}

// ProjectConfig holds filesystem locations used by the studio.
type ProjectConfig struct {
	// RootDir is the working directory for studio data.
	RootDir string `mapstructure:"rootDir" validate:"required"`
	// DataDir holds the project database and stored images, under RootDir.
	DataDir string `mapstructure:"dataDir" validate:"required"`
	// ExportDir receives downloaded design artifacts.
	ExportDir string `mapstructure:"exportDir" validate:"required"`
	// TemplatesDir optionally holds prompt override files.
	TemplatesDir string `mapstructure:"templatesDir"`
}

// LLMConfig mirrors the oracle client configuration. The text provider and the
// image model are configured separately: corrections and design aids run on a
// chat model, renders on an image-capable Gemini model.
type LLMConfig struct {
	Provider   string `mapstructure:"provider" validate:"required"`
	Model      string `mapstructure:"model"`
	ImageModel string `mapstructure:"imageModel"`
	APIKey     string `mapstructure:"apiKey"`
	BaseURL    string `mapstructure:"baseURL"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	// AuthToken is the bearer credential required on persistence routes.
	// Oracle calls use the LLM API key instead and never see this token.
	AuthToken string `mapstructure:"authToken"`
}

// TelemetryConfig controls anonymous usage analytics. Disabled unless both the
// flag and an API key are present.
type TelemetryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	APIKey  string `mapstructure:"apiKey"`
}
