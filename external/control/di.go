package control

import (
	"github.com/lipika1080/np03frontend/internal/config"
	"github.com/lipika1080/np03frontend/internal/control"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (control.Client, error) {
		cfg := do.MustInvoke[*config.Config](i)
		return NewHTTPClient(cfg.ServerURL), nil
	})
}
