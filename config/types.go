package config

// Cloud providers
const (
	ProviderOpenAI    = "openai"
	ProviderAzure     = "azure"
	ProviderAnthropic = "anthropic"
)

// Local summarizer backends
const (
	LocalModePlain      = "plain"
	LocalModeStructured = "structured"
)

// Lab report transmission modes
const (
	ReportModeInline    = "inline"
	ReportModeReference = "reference"
)

// Config is the application configuration
type Config struct {
	Cloud   CloudConfig   `yaml:"cloud" toml:"cloud"`
	Local   LocalConfig   `yaml:"local" toml:"local"`
	Privacy PrivacyConfig `yaml:"privacy" toml:"privacy"`
	Case    CaseConfig    `yaml:"case" toml:"case"`
	Log     LogConfig     `yaml:"log" toml:"log"`
}

// CloudConfig configures the triage agent model
type CloudConfig struct {
	Provider string `yaml:"provider" toml:"provider"`
	APIKey   string `yaml:"api_key" toml:"api_key"`
	BaseURL  string `yaml:"base_url" toml:"base_url"`
	// Model is the model name, or the deployment name for azure
	Model           string  `yaml:"model" toml:"model"`
	AzureAPIVersion string  `yaml:"azure_api_version" toml:"azure_api_version"`
	Temperature     float32 `yaml:"temperature" toml:"temperature"`
	MaxTokens       int     `yaml:"max_tokens" toml:"max_tokens"`
	MaxSteps        int     `yaml:"max_steps" toml:"max_steps"`
}

// LocalConfig configures the openai compatible local endpoint
type LocalConfig struct {
	BaseURL        string  `yaml:"base_url" toml:"base_url"`
	APIKey         string  `yaml:"api_key" toml:"api_key"`
	Model          string  `yaml:"model" toml:"model"`
	Mode           string  `yaml:"mode" toml:"mode"`
	MaxTokens      int     `yaml:"max_tokens" toml:"max_tokens"`
	Temperature    float32 `yaml:"temperature" toml:"temperature"`
	TimeoutSeconds int     `yaml:"timeout_seconds" toml:"timeout_seconds"`
	// MaxRetries bounds re-asks of the structured backend
	MaxRetries int `yaml:"max_retries" toml:"max_retries"`
}

type PrivacyConfig struct {
	ReportMode string `yaml:"report_mode" toml:"report_mode"`
	// LeakRunLength is the verbatim word run length logged as a leak
	LeakRunLength int `yaml:"leak_run_length" toml:"leak_run_length"`
}

// CaseConfig selects the case to triage, the built-in demo case is used when empty
type CaseConfig struct {
	Narrative  string `yaml:"narrative" toml:"narrative"`
	ReportFile string `yaml:"report_file" toml:"report_file"`
}

type LogConfig struct {
	Level string `yaml:"level" toml:"level"`
}
