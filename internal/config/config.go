package config

import "fmt"

type Config struct {
	Env                        string
	HTTPListenAddr             string
	PublicBaseURL              string
	DatabaseURL                string
	DefaultTranscribeLanguage  string
	GoogleCloudProjectID       string
	GoogleCloudCredentialsJSON string
	GoogleCloudSpeechLocation  string
	GoogleCloudSpeechModel     string
	LLMAPIKey                  string
	LLMBaseURL                 string
	LLMModel                   string
	LLMReplyEnabled            bool
	TwilioAccountSID           string
	TwilioAuthToken            string
	BridgeCallerID             string
	RecordMaxLengthSec         int
	RecordTimeoutSec           int
	RecordingFetchTimeoutSec   int
	DefaultModeDurationMin     int
	MaxModeDurationMin         int
	ClearForwardOnDeactivate   bool
	NotifyWebhookURL           string
	AudioDir                   string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	for _, pos := range []struct {
		name  string
		value int
	}{
		{name: "RECORD_MAX_LENGTH_SEC", value: c.RecordMaxLengthSec},
		{name: "RECORD_TIMEOUT_SEC", value: c.RecordTimeoutSec},
		{name: "RECORDING_FETCH_TIMEOUT_SEC", value: c.RecordingFetchTimeoutSec},
		{name: "DEFAULT_MODE_DURATION_MIN", value: c.DefaultModeDurationMin},
		{name: "MAX_MODE_DURATION_MIN", value: c.MaxModeDurationMin},
	} {
		if pos.value <= 0 {
			return fmt.Errorf("%s must be positive, got %d", pos.name, pos.value)
		}
	}
	if c.DefaultModeDurationMin > c.MaxModeDurationMin {
		return fmt.Errorf("DEFAULT_MODE_DURATION_MIN must not exceed MAX_MODE_DURATION_MIN")
	}
	if c.LLMReplyEnabled && c.LLMAPIKey == "" {
		return fmt.Errorf("LLM_API_KEY is required when LLM_REPLY_ENABLED=true")
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "HTTP_LISTEN_ADDR", value: c.HTTPListenAddr},
		{name: "PUBLIC_BASE_URL", value: c.PublicBaseURL},
		{name: "DATABASE_URL", value: c.DatabaseURL},
		{name: "DEFAULT_TRANSCRIBE_LANGUAGE", value: c.DefaultTranscribeLanguage},
		{name: "GOOGLE_CLOUD_PROJECT_ID", value: c.GoogleCloudProjectID},
		{name: "GOOGLE_CLOUD_CREDENTIALS_JSON", value: c.GoogleCloudCredentialsJSON},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// EnhancedClassifierEnabled reports whether the external LLM urgency path
// is configured. Without it the keyword scan is the only strategy.
func (c *Config) EnhancedClassifierEnabled() bool {
	return c.LLMAPIKey != ""
}
