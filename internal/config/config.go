package config

import (
	"fmt"
	"time"
)

type Config struct {
	Env               string
	ServerURL         string
	SocketURL         string
	ReconnectAttempts int
	ChunkInterval     time.Duration
	SampleRate        int
	CaptureDevice     string
}

func (c *Config) Validate() error {
	for _, req := range c.requiredFieldChecks() {
		if req.value == "" {
			return fmt.Errorf("%s is required", req.name)
		}
	}
	if c.ReconnectAttempts <= 0 {
		return fmt.Errorf("SOCKET_RECONNECT_ATTEMPTS must be positive, got %d", c.ReconnectAttempts)
	}
	if c.ChunkInterval <= 0 {
		return fmt.Errorf("AUDIO_CHUNK_INTERVAL_MS must be positive, got %s", c.ChunkInterval)
	}
	if c.SampleRate <= 0 {
		return fmt.Errorf("AUDIO_SAMPLE_RATE must be positive, got %d", c.SampleRate)
	}
	return nil
}

type requiredEnvField struct {
	name  string
	value string
}

func (c *Config) requiredFieldChecks() []requiredEnvField {
	return []requiredEnvField{
		{name: "SERVER_URL", value: c.ServerURL},
		{name: "SOCKET_URL", value: c.SocketURL},
	}
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
