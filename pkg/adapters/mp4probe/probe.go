// Package mp4probe reads video metadata from MP4 box structure.
//
// It is the fallback when ffprobe is unavailable: dimensions, sample count
// and frame rate come from the video track's boxes without decoding anything.
package mp4probe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Eyevinn/mp4ff/mp4"

	"github.com/user/asciiplay/pkg/pipeline"
)

// ErrNoVideoTrack is returned when the file has no usable video track.
var ErrNoVideoTrack = errors.New("mp4probe: no video track found")

// Codec names.
const (
	CodecH264    = "h264"
	CodecHEVC    = "hevc"
	CodecAV1     = "av1"
	CodecVP9     = "vp9"
	CodecUnknown = "unknown"
)

// CodecName maps a sample entry fourcc to a codec name.
func CodecName(fourcc string) string {
	switch fourcc {
	case "avc1", "avc3":
		return CodecH264
	case "hvc1", "hev1":
		return CodecHEVC
	case "av01":
		return CodecAV1
	case "vp09":
		return CodecVP9
	default:
		return CodecUnknown
	}
}

// Probe reads metadata for the video track of the MP4 file at path.
func Probe(path string) (pipeline.VideoInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	info, err := ProbeReader(f)
	if err != nil {
		return pipeline.VideoInfo{}, err
	}
	info.Path = path
	return info, nil
}

// ProbeReader reads video metadata from an MP4 stream.
func ProbeReader(reader io.ReadSeeker) (pipeline.VideoInfo, error) {
	mp4File, err := mp4.DecodeFile(reader)
	if err != nil {
		return pipeline.VideoInfo{}, fmt.Errorf("decode mp4: %w", err)
	}

	moov := mp4File.Moov
	if moov == nil && mp4File.Init != nil {
		moov = mp4File.Init.Moov
	}
	if moov == nil {
		return pipeline.VideoInfo{}, ErrNoVideoTrack
	}

	trak := videoTrack(moov)
	if trak == nil {
		return pipeline.VideoInfo{}, ErrNoVideoTrack
	}

	info := pipeline.VideoInfo{Codec: CodecUnknown}
	info.Width, info.Height = dimensions(trak)

	var timescale uint32 = 1000
	if trak.Mdia.Mdhd != nil && trak.Mdia.Mdhd.Timescale > 0 {
		timescale = trak.Mdia.Mdhd.Timescale
	}

	var samples int
	var duration uint64
	if mp4File.IsFragmented() {
		samples, duration, err = countFragmentedSamples(mp4File, moov, trak.Tkhd.TrackID)
		if err != nil {
			return pipeline.VideoInfo{}, err
		}
	}
	// Progressive files, and fragmented files whose moov already lists samples.
	if samples == 0 {
		samples, duration = countProgressiveSamples(trak)
	}

	info.TotalFrames = samples
	if duration > 0 && samples > 0 {
		info.FrameRate = float64(samples) * float64(timescale) / float64(duration)
	}

	if stsd := sampleDescriptions(trak); stsd != nil {
		for _, child := range stsd.Children {
			if name := CodecName(child.Type()); name != CodecUnknown {
				info.Codec = name
				break
			}
		}
	}

	if info.Width <= 0 || info.Height <= 0 {
		return pipeline.VideoInfo{}, fmt.Errorf("%w: missing dimensions", ErrNoVideoTrack)
	}
	return info, nil
}

// videoTrack returns the first track with a "vide" handler.
func videoTrack(moov *mp4.MoovBox) *mp4.TrakBox {
	for _, trak := range moov.Traks {
		if trak.Mdia == nil || trak.Mdia.Hdlr == nil {
			continue
		}
		if trak.Mdia.Hdlr.HandlerType == "vide" {
			return trak
		}
	}
	return nil
}

func sampleDescriptions(trak *mp4.TrakBox) *mp4.StsdBox {
	if trak.Mdia.Minf == nil || trak.Mdia.Minf.Stbl == nil {
		return nil
	}
	return trak.Mdia.Minf.Stbl.Stsd
}

// dimensions prefers the sample entry size and falls back to the track header.
func dimensions(trak *mp4.TrakBox) (int, int) {
	if stsd := sampleDescriptions(trak); stsd != nil {
		for _, child := range stsd.Children {
			if vse, ok := child.(*mp4.VisualSampleEntryBox); ok && vse.Width > 0 && vse.Height > 0 {
				return int(vse.Width), int(vse.Height)
			}
		}
	}
	if trak.Tkhd != nil {
		// Track header sizes are 16.16 fixed point.
		return int(uint32(trak.Tkhd.Width) >> 16), int(uint32(trak.Tkhd.Height) >> 16)
	}
	return 0, 0
}

// countProgressiveSamples reads the sample count from stsz and the duration from mdhd.
func countProgressiveSamples(trak *mp4.TrakBox) (int, uint64) {
	var samples int
	if trak.Mdia.Minf != nil && trak.Mdia.Minf.Stbl != nil && trak.Mdia.Minf.Stbl.Stsz != nil {
		samples = int(trak.Mdia.Minf.Stbl.Stsz.SampleNumber)
	}
	var duration uint64
	if trak.Mdia.Mdhd != nil {
		duration = trak.Mdia.Mdhd.Duration
	}
	return samples, duration
}

// countFragmentedSamples sums samples and their durations across all fragments of trackID.
func countFragmentedSamples(mp4File *mp4.File, moov *mp4.MoovBox, trackID uint32) (int, uint64, error) {
	var trex *mp4.TrexBox
	if moov.Mvex != nil {
		for _, t := range moov.Mvex.Trexs {
			if t.TrackID == trackID {
				trex = t
				break
			}
		}
	}

	var samples int
	var duration uint64
	for _, seg := range mp4File.Segments {
		for _, frag := range seg.Fragments {
			if frag.Moof == nil {
				continue
			}
			if !hasTrack(frag, trackID) {
				continue
			}

			full, err := frag.GetFullSamples(trex)
			if err != nil {
				return 0, 0, fmt.Errorf("get samples: %w", err)
			}
			samples += len(full)
			for _, s := range full {
				duration += uint64(s.Dur)
			}
		}
	}
	return samples, duration, nil
}

func hasTrack(frag *mp4.Fragment, trackID uint32) bool {
	for _, traf := range frag.Moof.Trafs {
		if traf.Tfhd != nil && traf.Tfhd.TrackID == trackID {
			return true
		}
	}
	return false
}
