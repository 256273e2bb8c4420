package transcode

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FFmpegCommand is the default transcoder binary.
const FFmpegCommand = "ffmpeg"

// Transcoder extracts audio tracks from media containers.
type Transcoder struct {
	ffmpegBinary  string
	workDir       string
	commandRunner func(ctx context.Context, name string, args ...string) error
}

// NewTranscoder creates a transcoder that stages temporary files in workDir.
// An empty workDir falls back to the system temp directory.
func NewTranscoder(ffmpegBinary, workDir string) *Transcoder {
	if ffmpegBinary == "" {
		ffmpegBinary = FFmpegCommand
	}
	if workDir == "" {
		workDir = os.TempDir()
	}
	return &Transcoder{
		ffmpegBinary: ffmpegBinary,
		workDir:      workDir,
	}
}

// WithCommandRunner sets a custom command runner (for testing).
func (t *Transcoder) WithCommandRunner(runner func(ctx context.Context, name string, args ...string) error) {
	t.commandRunner = runner
}

// ExtractAudio writes the container bytes to a scoped temporary file, strips
// the video track, and returns the re-encoded audio bytes. Both temporary
// files are removed before return on every path.
func (t *Transcoder) ExtractAudio(ctx context.Context, container []byte) ([]byte, error) {
	if len(container) == 0 {
		return nil, fmt.Errorf("extract audio: empty input")
	}
	if err := os.MkdirAll(t.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("extract audio: ensure work dir: %w", err)
	}

	token := uuid.NewString()
	inputPath := filepath.Join(t.workDir, "transcode_"+token+".bin")
	outputPath := filepath.Join(t.workDir, "transcode_"+token+".mp3")
	defer os.Remove(inputPath)
	defer os.Remove(outputPath)

	if err := os.WriteFile(inputPath, container, 0o600); err != nil {
		return nil, fmt.Errorf("extract audio: stage input: %w", err)
	}
	return t.extract(ctx, inputPath, outputPath)
}

// ExtractAudioFile extracts audio from an existing media file on disk. The
// input file is owned by the caller; only the scoped output file is removed.
func (t *Transcoder) ExtractAudioFile(ctx context.Context, mediaPath string) ([]byte, error) {
	if strings.TrimSpace(mediaPath) == "" {
		return nil, fmt.Errorf("extract audio: media path required")
	}
	if err := os.MkdirAll(t.workDir, 0o755); err != nil {
		return nil, fmt.Errorf("extract audio: ensure work dir: %w", err)
	}

	outputPath := filepath.Join(t.workDir, "transcode_"+uuid.NewString()+".mp3")
	defer os.Remove(outputPath)

	return t.extract(ctx, mediaPath, outputPath)
}

func (t *Transcoder) extract(ctx context.Context, inputPath, outputPath string) ([]byte, error) {
	args := buildExtractArgs(inputPath, outputPath)
	if err := t.run(ctx, t.ffmpegBinary, args...); err != nil {
		return nil, fmt.Errorf("extract audio: %w", err)
	}
	audio, err := os.ReadFile(outputPath)
	if err != nil {
		return nil, fmt.Errorf("extract audio: read output: %w", err)
	}
	return audio, nil
}

func (t *Transcoder) run(ctx context.Context, name string, args ...string) error {
	if t.commandRunner != nil {
		return t.commandRunner(ctx, name, args...)
	}
	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w: %s", name, err, strings.TrimSpace(string(output)))
	}
	return nil
}

func buildExtractArgs(inputPath, outputPath string) []string {
	return []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-i", inputPath,
		"-vn",
		"-sn",
		"-dn",
		"-ac", "1",
		"-ar", "16000",
		"-c:a", "libmp3lame",
		"-q:a", "4",
		outputPath,
	}
}
