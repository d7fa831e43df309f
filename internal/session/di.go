package session

import (
	"github.com/lipika1080/np03frontend/internal/capture"
	"github.com/lipika1080/np03frontend/internal/channel"
	"github.com/lipika1080/np03frontend/internal/control"
	"github.com/samber/do/v2"
)

func RegisterDI(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*Aggregator, error) {
		return NewAggregator(), nil
	})
	do.Provide(injector, func(i do.Injector) (*Controller, error) {
		ctrl := do.MustInvoke[control.Client](i)
		ch := do.MustInvoke[channel.Channel](i)
		newCapture := do.MustInvoke[capture.Factory](i)
		agg := do.MustInvoke[*Aggregator](i)
		return NewController(ctrl, ch, newCapture, agg), nil
	})
}
