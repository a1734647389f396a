package ffmpegsource

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/asciiplay/pkg/adapters/fftools"
	"github.com/user/asciiplay/pkg/adapters/mp4probe"
	"github.com/user/asciiplay/pkg/pipeline"
)

// ErrNoVideoStream is returned when ffprobe reports no video stream.
var ErrNoVideoStream = errors.New("ffmpegsource: no video stream")

// probeOutput is the subset of `ffprobe -of json` output we read.
type probeOutput struct {
	Streams []probeStream `json:"streams"`
	Format  struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

type probeStream struct {
	CodecName    string `json:"codec_name"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	RFrameRate   string `json:"r_frame_rate"`
	AvgFrameRate string `json:"avg_frame_rate"`
	NbFrames     string `json:"nb_frames"`
	Duration     string `json:"duration"`
}

// ProbeArgs returns the ffprobe arguments describing the first video stream of path.
func ProbeArgs(path string) []string {
	return []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=codec_name,width,height,r_frame_rate,avg_frame_rate,nb_frames,duration:format=duration",
		"-of", "json",
		path,
	}
}

// probe reads metadata with ffprobe, or from MP4 boxes when ffprobe is unavailable.
func (o *Opener) probe(ctx context.Context, path string) (pipeline.VideoInfo, error) {
	bin, err := o.find(fftools.FFprobe, o.opts.FFprobePath)
	if err != nil {
		// An explicitly configured ffprobe must work; only a missing default falls back.
		if o.opts.FFprobePath != "" || os.Getenv(fftools.EnvVar(fftools.FFprobe)) != "" {
			return pipeline.VideoInfo{}, fmt.Errorf("ffprobe: %w", err)
		}
		o.logger.Debug("ffprobe not available, reading MP4 boxes")
		return mp4probe.Probe(path)
	}

	o.logger.Debug("Probing %s with %s", path, bin)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, bin, ProbeArgs(path)...)
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("ffprobe: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	info, err := ParseProbe(out)
	if err != nil {
		return pipeline.VideoInfo{}, err
	}
	info.Path = path
	return info, nil
}

// ParseProbe converts ffprobe JSON output into VideoInfo.
// The frame rate prefers avg_frame_rate; the frame count falls back to
// duration times frame rate when the container does not record it.
func ParseProbe(data []byte) (pipeline.VideoInfo, error) {
	var out probeOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("parse ffprobe output: %w", err)
	}
	if len(out.Streams) == 0 {
		return pipeline.VideoInfo{}, ErrNoVideoStream
	}

	s := out.Streams[0]
	info := pipeline.VideoInfo{
		Width:  s.Width,
		Height: s.Height,
		Codec:  s.CodecName,
	}

	info.FrameRate = ParseFrameRate(s.AvgFrameRate)
	if info.FrameRate <= 0 {
		info.FrameRate = ParseFrameRate(s.RFrameRate)
	}

	if n, err := strconv.Atoi(s.NbFrames); err == nil && n > 0 {
		info.TotalFrames = n
	} else if info.FrameRate > 0 {
		d := parseSeconds(s.Duration)
		if d <= 0 {
			d = parseSeconds(out.Format.Duration)
		}
		info.TotalFrames = int(math.Round(d * info.FrameRate))
	}

	if info.Width <= 0 || info.Height <= 0 {
		return pipeline.VideoInfo{}, fmt.Errorf("%w: missing dimensions", ErrNoVideoStream)
	}
	return info, nil
}

// ParseFrameRate parses an ffprobe rational such as "30000/1001" or a plain number.
// Unparseable or undefined rates return 0.
func ParseFrameRate(s string) float64 {
	num, den, found := strings.Cut(strings.TrimSpace(s), "/")
	n, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0
	}
	if !found {
		return n
	}
	d, err := strconv.ParseFloat(den, 64)
	if err != nil || d == 0 {
		return 0
	}
	return n / d
}

func parseSeconds(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
