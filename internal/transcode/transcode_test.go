package transcode

import (
	"context"
	"errors"
	"os"
	"testing"
)

// fakeRunner simulates ffmpeg by writing output to the destination path (the
// final argument) when succeed is true.
func fakeRunner(t *testing.T, succeed bool, output []byte) func(ctx context.Context, name string, args ...string) error {
	t.Helper()
	return func(ctx context.Context, name string, args ...string) error {
		if !succeed {
			return errors.New("boom")
		}
		dest := args[len(args)-1]
		return os.WriteFile(dest, output, 0o600)
	}
}

func stagedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read work dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestExtractAudioCleansUpOnSuccess(t *testing.T) {
	workDir := t.TempDir()
	transcoder := NewTranscoder("ffmpeg", workDir)
	transcoder.WithCommandRunner(fakeRunner(t, true, []byte("audio-bytes")))

	audio, err := transcoder.ExtractAudio(context.Background(), []byte("container-bytes"))
	if err != nil {
		t.Fatalf("ExtractAudio failed: %v", err)
	}
	if string(audio) != "audio-bytes" {
		t.Errorf("audio = %q, want %q", audio, "audio-bytes")
	}
	if files := stagedFiles(t, workDir); len(files) != 0 {
		t.Errorf("temporary files left behind: %v", files)
	}
}

func TestExtractAudioCleansUpOnTranscoderError(t *testing.T) {
	workDir := t.TempDir()
	transcoder := NewTranscoder("ffmpeg", workDir)
	transcoder.WithCommandRunner(fakeRunner(t, false, nil))

	if _, err := transcoder.ExtractAudio(context.Background(), []byte("container-bytes")); err == nil {
		t.Fatal("expected transcoder error")
	}
	if files := stagedFiles(t, workDir); len(files) != 0 {
		t.Errorf("temporary files left behind: %v", files)
	}
}

func TestExtractAudioCleansUpOnReadError(t *testing.T) {
	workDir := t.TempDir()
	transcoder := NewTranscoder("ffmpeg", workDir)
	// Runner succeeds but never writes the output file, so the read-back fails.
	transcoder.WithCommandRunner(func(ctx context.Context, name string, args ...string) error {
		return nil
	})

	if _, err := transcoder.ExtractAudio(context.Background(), []byte("container-bytes")); err == nil {
		t.Fatal("expected read error")
	}
	if files := stagedFiles(t, workDir); len(files) != 0 {
		t.Errorf("temporary files left behind: %v", files)
	}
}

func TestExtractAudioEmptyInput(t *testing.T) {
	transcoder := NewTranscoder("ffmpeg", t.TempDir())
	if _, err := transcoder.ExtractAudio(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestExtractAudioFileKeepsInput(t *testing.T) {
	workDir := t.TempDir()
	mediaPath := workDir + "/source.mp4"
	if err := os.WriteFile(mediaPath, []byte("media"), 0o600); err != nil {
		t.Fatalf("write media file: %v", err)
	}

	transcoder := NewTranscoder("ffmpeg", workDir)
	transcoder.WithCommandRunner(fakeRunner(t, true, []byte("audio")))

	if _, err := transcoder.ExtractAudioFile(context.Background(), mediaPath); err != nil {
		t.Fatalf("ExtractAudioFile failed: %v", err)
	}
	if _, err := os.Stat(mediaPath); err != nil {
		t.Errorf("input media file removed: %v", err)
	}
	if files := stagedFiles(t, workDir); len(files) != 1 || files[0] != "source.mp4" {
		t.Errorf("work dir contents = %v, want only source.mp4", files)
	}
}
