package audio

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// maxStderr bounds how much transcoder stderr ends up in logs and webhook
// payloads.
const maxStderr = 512

// Normalizer converts arbitrary recordings into the canonical format the
// ASR service expects: mono, fixed sample rate, 16-bit linear PCM in a WAV
// container.
type Normalizer struct {
	ffmpegPath string
	sampleRate int
	channels   int
}

// NewNormalizer creates a Normalizer driving the ffmpeg binary at
// ffmpegPath.
func NewNormalizer(ffmpegPath string, sampleRate, channels int) *Normalizer {
	return &Normalizer{
		ffmpegPath: ffmpegPath,
		sampleRate: sampleRate,
		channels:   channels,
	}
}

// Normalize transcodes sourcePath and returns the path of the temporary
// wav, created next to the source with a unique suffix so a crashed attempt
// never collides with a fresh one. The caller owns the file and must delete
// it on every exit path.
//
// -vn drops embedded cover art and video streams so only the first audio
// stream is encoded.
func (n *Normalizer) Normalize(sourcePath string) (string, error) {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	wavPath := filepath.Join(filepath.Dir(sourcePath),
		fmt.Sprintf("%s_%s_TEMP.wav", base, uuid.NewString()[:8]))

	cmd := exec.Command(n.ffmpegPath,
		"-i", sourcePath,
		"-vn",
		"-ar", strconv.Itoa(n.sampleRate),
		"-ac", strconv.Itoa(n.channels),
		"-c:a", "pcm_s16le",
		wavPath,
		"-y",
	)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		// ffmpeg may leave a partial output behind on failure.
		os.Remove(wavPath)
		return "", fmt.Errorf("ffmpeg: %v, stderr: %s", err, truncate(stderr.String(), maxStderr))
	}
	return wavPath, nil
}

// Duration returns the audio duration of filePath in whole seconds, via
// ffprobe. Informational only; the pipeline does not depend on it.
func Duration(filePath string) (int, error) {
	cmd := exec.Command("ffprobe", "-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, err
	}
	return int(math.Round(f)), nil
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
