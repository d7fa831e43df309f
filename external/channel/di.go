package channel

import (
	"github.com/lipika1080/np03frontend/internal/channel"
	"github.com/lipika1080/np03frontend/internal/config"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (channel.Channel, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewWebsocketChannel(cfg.SocketURL, cfg.ReconnectAttempts), nil
	})
}
