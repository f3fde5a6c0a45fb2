package audio

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fdnverb/dsp/fdn"
)

func testFrames(n int) []fdn.Frame {
	frames := make([]fdn.Frame, n)
	for i := range frames {
		v := float64(i%17)/8 - 1
		frames[i] = fdn.Frame{Left: v * 0.9, Right: -v * 0.5}
	}
	return frames
}

func TestWAVRoundTrip(t *testing.T) {
	for _, bits := range []int{16, 24, 32} {
		t.Run(fmt.Sprintf("%d-bit", bits), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "clip.wav")
			frames := testFrames(1000)

			require.NoError(t, WriteWAVFile(path, frames, 48000, bits))
			clip, err := ReadWAVFile(path)
			require.NoError(t, err)

			assert.Equal(t, 48000, clip.SampleRate)
			require.Len(t, clip.Frames, len(frames))
			eps := 2 / fullScale(bits)
			for i := range frames {
				assert.InDelta(t, frames[i].Left, clip.Frames[i].Left, eps)
				assert.InDelta(t, frames[i].Right, clip.Frames[i].Right, eps)
			}
			assert.InDelta(t, 1000.0/48000, clip.Seconds(), 1e-12)
		})
	}
}

func TestWriteWAVClips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hot.wav")
	require.NoError(t, WriteWAVFile(path, []fdn.Frame{{Left: 3, Right: -3}}, 44100, 16))

	clip, err := ReadWAVFile(path)
	require.NoError(t, err)
	require.Len(t, clip.Frames, 1)
	assert.InDelta(t, 1, clip.Frames[0].Left, 1e-4)
	assert.InDelta(t, -1, clip.Frames[0].Right, 1e-4)
}

func TestReadWAVMonoDuplicates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mono.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	enc := wav.NewEncoder(f, 22050, 16, 1, 1)
	require.NoError(t, enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: 22050},
		Data:           []int{0, 16384, -16384},
		SourceBitDepth: 16,
	}))
	require.NoError(t, enc.Close())
	require.NoError(t, f.Close())

	clip, err := ReadWAVFile(path)
	require.NoError(t, err)
	assert.Equal(t, 22050, clip.SampleRate)
	assert.Equal(t, []fdn.Frame{
		{Left: 0, Right: 0},
		{Left: 0.5, Right: 0.5},
		{Left: -0.5, Right: -0.5},
	}, clip.Frames)
}

func TestReadWAVErrors(t *testing.T) {
	_, err := ReadWAV(bytes.NewReader([]byte("definitely not a riff file")))
	assert.ErrorIs(t, err, ErrInvalidWAV)

	_, err = ReadWAVFile(filepath.Join(t.TempDir(), "missing.wav"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteWAVValidation(t *testing.T) {
	dir := t.TempDir()
	assert.ErrorIs(t, WriteWAVFile(filepath.Join(dir, "a.wav"), nil, 48000, 12), ErrBitDepth)
	assert.ErrorIs(t, WriteWAVFile(filepath.Join(dir, "b.wav"), nil, 0, 16), ErrInvalidRate)
}
