package capture

import (
	"github.com/lipika1080/np03frontend/internal/capture"
	"github.com/lipika1080/np03frontend/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (capture.Factory, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return func() capture.Capture {
			return NewMicCapture(cfg.SampleRate, cfg.ChunkInterval)
		}, nil
	})
}
