package capture

import (
	"encoding/binary"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gen2brain/malgo"
	"github.com/lipika1080/np03frontend/internal/capture"
)

// MicCapture records from the default microphone as single-channel
// 16-bit PCM and emits one WAV-encoded chunk per interval.
type MicCapture struct {
	sampleRate int
	interval   time.Duration

	mu        sync.Mutex
	capturing bool
	samples   []int16

	malgoCtx *malgo.AllocatedContext
	device   *malgo.Device
	stop     chan struct{}
	done     chan struct{}
}

func NewMicCapture(sampleRate int, interval time.Duration) capture.Capture {
	return &MicCapture{
		sampleRate: sampleRate,
		interval:   interval,
	}
}

func (m *MicCapture) Begin(onChunk func(chunk []byte)) error {
	m.mu.Lock()
	if m.capturing {
		m.mu.Unlock()
		return capture.ErrAlreadyCapturing
	}
	m.capturing = true
	m.samples = nil
	m.mu.Unlock()

	malgoCtx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		m.release()
		return fmt.Errorf("%w: init audio context: %v", capture.ErrPermissionDenied, err)
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = uint32(m.sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	callbacks := malgo.DeviceCallbacks{
		Data: func(_, input []byte, frameCount uint32) {
			m.appendPCM(input, frameCount)
		},
	}
	device, err := malgo.InitDevice(malgoCtx.Context, deviceConfig, callbacks)
	if err != nil {
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
		m.release()
		return fmt.Errorf("%w: init capture device: %v", capture.ErrPermissionDenied, err)
	}
	if err := device.Start(); err != nil {
		device.Uninit()
		_ = malgoCtx.Uninit()
		malgoCtx.Free()
		m.release()
		return fmt.Errorf("%w: start capture device: %v", capture.ErrPermissionDenied, err)
	}

	m.mu.Lock()
	m.malgoCtx = malgoCtx
	m.device = device
	m.stop = make(chan struct{})
	m.done = make(chan struct{})
	m.mu.Unlock()

	slog.Info("microphone capture started", "sample_rate", m.sampleRate, "chunk_interval", m.interval)
	go m.flushLoop(onChunk)
	return nil
}

func (m *MicCapture) End(onComplete func()) {
	m.mu.Lock()
	if !m.capturing {
		m.mu.Unlock()
		return
	}
	m.capturing = false
	device := m.device
	malgoCtx := m.malgoCtx
	stop := m.stop
	done := m.done
	m.device = nil
	m.malgoCtx = nil
	m.mu.Unlock()

	close(stop)
	<-done

	device.Uninit()
	_ = malgoCtx.Uninit()
	malgoCtx.Free()
	slog.Info("microphone capture stopped")

	if onComplete != nil {
		onComplete()
	}
}

func (m *MicCapture) appendPCM(input []byte, frameCount uint32) {
	n := int(frameCount)
	if n*2 > len(input) {
		n = len(input) / 2
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := 0; i < n; i++ {
		m.samples = append(m.samples, int16(binary.LittleEndian.Uint16(input[i*2:])))
	}
}

// flushLoop cuts a chunk every interval and once more on shutdown so
// the trailing partial interval is not lost.
func (m *MicCapture) flushLoop(onChunk func(chunk []byte)) {
	defer close(m.done)
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.stop:
			m.flush(onChunk)
			return
		case <-ticker.C:
			m.flush(onChunk)
		}
	}
}

func (m *MicCapture) flush(onChunk func(chunk []byte)) {
	m.mu.Lock()
	samples := m.samples
	m.samples = nil
	m.mu.Unlock()
	if len(samples) == 0 {
		return
	}

	chunk, err := encodeWAV(samples, m.sampleRate)
	if err != nil {
		slog.Error("failed to encode audio chunk", "error", err, "samples", len(samples))
		return
	}
	onChunk(chunk)
}

func (m *MicCapture) release() {
	m.mu.Lock()
	m.capturing = false
	m.mu.Unlock()
}
