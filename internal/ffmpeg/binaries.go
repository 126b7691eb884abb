package ffmpeg

import (
	"fmt"
	"os"
	"os/exec"
	"sync"
)

// BinaryPaths holds resolved locations of the ffmpeg tools.
type BinaryPaths struct {
	FFmpeg  string
	FFprobe string
}

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath BinaryPaths
)

// Ensure resolves ffmpeg and ffprobe once per process. Explicit
// YTSUB_FFMPEG_PATH / YTSUB_FFPROBE_PATH overrides win, otherwise
// the binaries must be on PATH.
func Ensure() (BinaryPaths, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = ensure()
	})
	return ensurePath, ensureErr
}

func FFmpegPath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFmpeg, nil
}

func FFprobePath() (string, error) {
	paths, err := Ensure()
	if err != nil {
		return "", err
	}
	return paths.FFprobe, nil
}

func ensure() (BinaryPaths, error) {
	ffmpegPath := os.Getenv("YTSUB_FFMPEG_PATH")
	ffprobePath := os.Getenv("YTSUB_FFPROBE_PATH")

	if ffmpegPath == "" {
		if found, err := exec.LookPath("ffmpeg"); err == nil {
			ffmpegPath = found
		}
	}
	if ffprobePath == "" {
		if found, err := exec.LookPath("ffprobe"); err == nil {
			ffprobePath = found
		}
	}

	if ffmpegPath == "" || ffprobePath == "" {
		return BinaryPaths{}, fmt.Errorf(
			"ffmpeg/ffprobe not found: install them or set YTSUB_FFMPEG_PATH and YTSUB_FFPROBE_PATH",
		)
	}

	return BinaryPaths{FFmpeg: ffmpegPath, FFprobe: ffprobePath}, nil
}
