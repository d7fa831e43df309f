package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	internalconfig "github.com/lipika1080/np03frontend/internal/config"
)

type envConfig struct {
	Env                     string `env:"ENV" envDefault:"production"`
	ServerURL               string `env:"SERVER_URL,required"`
	SocketURL               string `env:"SOCKET_URL,required"`
	SocketReconnectAttempts int    `env:"SOCKET_RECONNECT_ATTEMPTS" envDefault:"3"`
	AudioChunkIntervalMs    int    `env:"AUDIO_CHUNK_INTERVAL_MS" envDefault:"1000"`
	AudioSampleRate         int    `env:"AUDIO_SAMPLE_RATE" envDefault:"16000"`
	AudioCaptureDevice      string `env:"AUDIO_CAPTURE_DEVICE"`
}

func Load() (*internalconfig.Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return nil, fmt.Errorf("environment variables are invalid or missing: %w", err)
	}

	cfg := &internalconfig.Config{
		Env:               raw.Env,
		ServerURL:         raw.ServerURL,
		SocketURL:         raw.SocketURL,
		ReconnectAttempts: raw.SocketReconnectAttempts,
		ChunkInterval:     time.Duration(raw.AudioChunkIntervalMs) * time.Millisecond,
		SampleRate:        raw.AudioSampleRate,
		CaptureDevice:     raw.AudioCaptureDevice,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
