package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// DefaultFFprobe is the ffprobe executable used when none is configured.
const DefaultFFprobe = "ffprobe"

// ErrNoVideoStream reports media without a video stream.
var ErrNoVideoStream = errors.New("probe: no video stream")

// Stream is the subset of an ffprobe stream entry used for layout.
type Stream struct {
	Index     int    `json:"index"`
	CodecName string `json:"codec_name"`
	CodecType string `json:"codec_type"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
}

type ffprobeResult struct {
	Streams []Stream `json:"streams"`
}

// runFFprobe executes ffprobe and returns its JSON output.
var runFFprobe = func(ctx context.Context, binary, path string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary,
		"-v", "error", "-hide_banner",
		"-select_streams", "v",
		"-show_entries", "stream=index,codec_name,codec_type,width,height",
		"-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(output)))
	}
	return output, nil
}

// VideoSize returns the dimensions of the first video stream in the file at
// path. An empty binary uses DefaultFFprobe.
func VideoSize(ctx context.Context, binary, path string) (Size, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultFFprobe
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Size{}, errors.New("probe video: empty path")
	}
	output, err := runFFprobe(ctx, binary, path)
	if err != nil {
		return Size{}, fmt.Errorf("probe video: %w", err)
	}
	size, err := parseVideoSize(output)
	if err != nil {
		return Size{}, fmt.Errorf("probe video %s: %w", path, err)
	}
	return size, nil
}

func parseVideoSize(output []byte) (Size, error) {
	var result ffprobeResult
	if err := json.Unmarshal(output, &result); err != nil {
		return Size{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	for _, s := range result.Streams {
		if s.CodecType != "" && !strings.EqualFold(s.CodecType, "video") {
			continue
		}
		if s.Width > 0 && s.Height > 0 {
			return Size{Width: float64(s.Width), Height: float64(s.Height)}, nil
		}
	}
	return Size{}, ErrNoVideoStream
}
