package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/foxseedlab/rusuban/internal/config"
)

type envConfig struct {
	Env                        string `env:"ENV" envDefault:"production"`
	HTTPListenAddr             string `env:"HTTP_LISTEN_ADDR" envDefault:":5000"`
	PublicBaseURL              string `env:"PUBLIC_BASE_URL,required"`
	DatabaseURL                string `env:"DATABASE_URL,required"`
	DefaultTranscribeLanguage  string `env:"DEFAULT_TRANSCRIBE_LANGUAGE,required"`
	GoogleCloudProjectID       string `env:"GOOGLE_CLOUD_PROJECT_ID,required"`
	GoogleCloudCredentialsJSON string `env:"GOOGLE_CLOUD_CREDENTIALS_JSON,required"`
	GoogleCloudSpeechLocation  string `env:"GOOGLE_CLOUD_SPEECH_LOCATION" envDefault:"global"`
	GoogleCloudSpeechModel     string `env:"GOOGLE_CLOUD_SPEECH_MODEL" envDefault:"latest_short"`
	LLMAPIKey                  string `env:"LLM_API_KEY"`
	LLMBaseURL                 string `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel                   string `env:"LLM_MODEL" envDefault:"llama3-8b-8192"`
	LLMReplyEnabled            bool   `env:"LLM_REPLY_ENABLED" envDefault:"false"`
	TwilioAccountSID           string `env:"TWILIO_ACCOUNT_SID"`
	TwilioAuthToken            string `env:"TWILIO_AUTH_TOKEN"`
	BridgeCallerID             string `env:"BRIDGE_CALLER_ID"`
	RecordMaxLengthSec         int    `env:"RECORD_MAX_LENGTH_SEC" envDefault:"120"`
	RecordTimeoutSec           int    `env:"RECORD_TIMEOUT_SEC" envDefault:"60"`
	RecordingFetchTimeoutSec   int    `env:"RECORDING_FETCH_TIMEOUT_SEC" envDefault:"15"`
	DefaultModeDurationMin     int    `env:"DEFAULT_MODE_DURATION_MIN" envDefault:"5"`
	MaxModeDurationMin         int    `env:"MAX_MODE_DURATION_MIN" envDefault:"60"`
	ClearForwardOnDeactivate   bool   `env:"CLEAR_FORWARD_ON_DEACTIVATE" envDefault:"false"`
	NotifyWebhookURL           string `env:"NOTIFY_WEBHOOK_URL"`
	AudioDir                   string `env:"AUDIO_DIR" envDefault:"./testaudio"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:                        raw.Env,
		HTTPListenAddr:             raw.HTTPListenAddr,
		PublicBaseURL:              raw.PublicBaseURL,
		DatabaseURL:                raw.DatabaseURL,
		DefaultTranscribeLanguage:  raw.DefaultTranscribeLanguage,
		GoogleCloudProjectID:       raw.GoogleCloudProjectID,
		GoogleCloudCredentialsJSON: raw.GoogleCloudCredentialsJSON,
		GoogleCloudSpeechLocation:  raw.GoogleCloudSpeechLocation,
		GoogleCloudSpeechModel:     raw.GoogleCloudSpeechModel,
		LLMAPIKey:                  raw.LLMAPIKey,
		LLMBaseURL:                 raw.LLMBaseURL,
		LLMModel:                   raw.LLMModel,
		LLMReplyEnabled:            raw.LLMReplyEnabled,
		TwilioAccountSID:           raw.TwilioAccountSID,
		TwilioAuthToken:            raw.TwilioAuthToken,
		BridgeCallerID:             raw.BridgeCallerID,
		RecordMaxLengthSec:         raw.RecordMaxLengthSec,
		RecordTimeoutSec:           raw.RecordTimeoutSec,
		RecordingFetchTimeoutSec:   raw.RecordingFetchTimeoutSec,
		DefaultModeDurationMin:     raw.DefaultModeDurationMin,
		MaxModeDurationMin:         raw.MaxModeDurationMin,
		ClearForwardOnDeactivate:   raw.ClearForwardOnDeactivate,
		NotifyWebhookURL:           raw.NotifyWebhookURL,
		AudioDir:                   raw.AudioDir,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
