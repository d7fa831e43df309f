package capture

import (
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavBitDepth = 16

// wavBuffer is an in-memory io.WriteSeeker for the WAV encoder, which
// seeks back to patch the RIFF header once the data chunk is written.
type wavBuffer struct {
	buf []byte
	pos int
}

func (b *wavBuffer) Write(p []byte) (int, error) {
	if need := b.pos + len(p); need > len(b.buf) {
		grown := make([]byte, need)
		copy(grown, b.buf)
		b.buf = grown
	}
	copy(b.buf[b.pos:], p)
	b.pos += len(p)
	return len(p), nil
}

func (b *wavBuffer) Seek(offset int64, whence int) (int64, error) {
	var next int64
	switch whence {
	case io.SeekStart:
		next = offset
	case io.SeekCurrent:
		next = int64(b.pos) + offset
	case io.SeekEnd:
		next = int64(len(b.buf)) + offset
	default:
		return 0, fmt.Errorf("invalid whence: %d", whence)
	}
	if next < 0 {
		return 0, fmt.Errorf("negative seek position: %d", next)
	}
	b.pos = int(next)
	return next, nil
}

func (b *wavBuffer) Bytes() []byte {
	return b.buf
}

func encodeWAV(samples []int16, sampleRate int) ([]byte, error) {
	buf := &wavBuffer{}
	enc := wav.NewEncoder(buf, sampleRate, wavBitDepth, 1, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		data[i] = int(s)
	}
	if err := enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
