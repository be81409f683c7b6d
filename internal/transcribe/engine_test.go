package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"media-summarizer/internal/domain"
	"media-summarizer/internal/logger"
)

type fakeExecutor struct {
	commands [][]string
	outputs  map[string]string
	onRun    func(name string, args []string) error
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.commands = append(f.commands, append([]string{name}, args...))
	if f.onRun != nil {
		if err := f.onRun(name, args); err != nil {
			return "", err
		}
	}
	return f.outputs[name], nil
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

type stubTranscriber struct {
	calls  []string
	failAt int
}

func (s *stubTranscriber) Transcribe(ctx context.Context, audioPath, model, language string) (string, error) {
	s.calls = append(s.calls, audioPath)
	if s.failAt > 0 && len(s.calls) == s.failAt {
		return "", errors.New("model ran out of memory")
	}
	base := filepath.Base(audioPath)
	return "text:" + strings.TrimSuffix(base, filepath.Ext(base)), nil
}

func writeAudioFile(t *testing.T, size int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.mp3")
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0644))
	return path
}

func TestTranscribeSinglePass(t *testing.T) {
	path := writeAudioFile(t, 100)
	provider := &stubTranscriber{}
	exec := &fakeExecutor{}

	engine := NewForTest(provider, exec, logger.New("error", "text"), 1024, 600)
	text, err := engine.Transcribe(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "text:input", text)
	require.Len(t, provider.calls, 1)
	assert.Equal(t, path, provider.calls[0])
	// No ffmpeg or ffprobe invocations for the single-pass path.
	assert.Empty(t, exec.commands)
}

func TestTranscribeChunked(t *testing.T) {
	path := writeAudioFile(t, 100)
	provider := &stubTranscriber{}
	exec := &fakeExecutor{outputs: map[string]string{"ffprobe": "1450.3\n"}}

	engine := NewForTest(provider, exec, logger.New("error", "text"), 10, 600)
	text, err := engine.Transcribe(context.Background(), path)
	require.NoError(t, err)

	// ceil(1450/600) = 3 windows, stitched in order with newlines.
	assert.Equal(t, "text:chunk_000\ntext:chunk_001\ntext:chunk_002", text)
	require.Len(t, provider.calls, 3)

	var starts []string
	for _, cmd := range exec.commands {
		if cmd[0] != "ffmpeg" {
			continue
		}
		require.Equal(t, "-ss", cmd[1])
		starts = append(starts, cmd[2])
	}
	assert.Equal(t, []string{"0", "600", "1200"}, starts)
}

func TestTranscribeChunkFailureAborts(t *testing.T) {
	path := writeAudioFile(t, 100)
	provider := &stubTranscriber{failAt: 2}
	exec := &fakeExecutor{outputs: map[string]string{"ffprobe": "1800"}}

	engine := NewForTest(provider, exec, logger.New("error", "text"), 10, 600)
	_, err := engine.Transcribe(context.Background(), path)

	var trErr *domain.TranscriptionError
	require.ErrorAs(t, err, &trErr)
	// No partial success: processing stopped at the failing window.
	assert.Len(t, provider.calls, 2)
}

func TestTranscribeMissingFile(t *testing.T) {
	engine := NewForTest(&stubTranscriber{}, &fakeExecutor{}, logger.New("error", "text"), 1024, 600)
	_, err := engine.Transcribe(context.Background(), "/no/such/file.mp3")

	var trErr *domain.TranscriptionError
	require.ErrorAs(t, err, &trErr)
}

func TestWhisperProviderReadsAndCleansTranscript(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "clip.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("x"), 0644))

	exec := &fakeExecutor{
		onRun: func(name string, args []string) error {
			// Simulate whisper writing its .txt artifact.
			return os.WriteFile(filepath.Join(dir, "clip.txt"), []byte("  hello world \n"), 0644)
		},
	}
	p := &whisperProvider{binary: "whisper", modelDir: "/models", threads: 4, executor: exec}

	text, err := p.Transcribe(context.Background(), audioPath, "small", "zh")
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)

	require.Len(t, exec.commands, 1)
	cmd := exec.commands[0]
	assert.Equal(t, "whisper", cmd[0])
	assert.Contains(t, cmd, filepath.Join("/models", "ggml-small.bin"))
	assert.Contains(t, cmd, "-l")
	assert.Contains(t, cmd, "zh")

	// The intermediate .txt is removed after reading.
	_, statErr := os.Stat(filepath.Join(dir, "clip.txt"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestWhisperProviderAutoLanguageOmitted(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "clip.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("x"), 0644))

	exec := &fakeExecutor{
		onRun: func(name string, args []string) error {
			return os.WriteFile(filepath.Join(dir, "clip.txt"), []byte("ok"), 0644)
		},
	}
	p := &whisperProvider{binary: "whisper", executor: exec}

	_, err := p.Transcribe(context.Background(), audioPath, "small", "auto")
	require.NoError(t, err)
	assert.NotContains(t, exec.commands[0], "-l")
}

func TestWhisperProviderMissingOutput(t *testing.T) {
	dir := t.TempDir()
	audioPath := filepath.Join(dir, "clip.mp3")
	require.NoError(t, os.WriteFile(audioPath, []byte("x"), 0644))

	p := &whisperProvider{binary: "whisper", executor: &fakeExecutor{}}

	_, err := p.Transcribe(context.Background(), audioPath, "small", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transcript file is missing")
}
