// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"path/filepath"

	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/ports"
	"github.com/user/asciiplay/pkg/stages/render"
)

// Sink saves debug output to files.
//
// Layout under baseDir:
//
//	session.json
//	frames/frame-0001.ans   ANSI text, replayable with cat
//	frames/frame-0001.txt   characters only
//	frames/frame-0001.png   rasterized preview
type Sink struct {
	baseDir    string
	fs         ports.FileSystem
	rasterizer ports.Rasterizer
}

// New creates a new FileSink. A nil rasterizer skips PNG previews.
func New(baseDir string, fs ports.FileSystem, rasterizer ports.Rasterizer) *Sink {
	return &Sink{
		baseDir:    baseDir,
		fs:         fs,
		rasterizer: rasterizer,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSessionJSON saves the session metadata as JSON.
func (s *Sink) SaveSessionJSON(data []byte) error {
	path := filepath.Join(s.baseDir, "session.json")
	return s.fs.WriteFile(path, data)
}

// SaveGlyphFrame saves a rendered frame as ANSI text, plain text and PNG.
func (s *Sink) SaveGlyphFrame(index int, grid pipeline.GlyphGrid) error {
	dir := filepath.Join(s.baseDir, "frames")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	base := filepath.Join(dir, fmt.Sprintf("frame-%04d", index))

	if err := s.fs.WriteFile(base+".ans", []byte(render.EncodeANSI(grid)+"\n")); err != nil {
		return err
	}
	if err := s.fs.WriteFile(base+".txt", []byte(render.EncodePlain(grid)+"\n")); err != nil {
		return err
	}

	if s.rasterizer == nil {
		return nil
	}
	img := s.rasterizer.Rasterize(grid, 0, 0)
	data, err := s.rasterizer.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("encode frame preview: %w", err)
	}
	return s.fs.WriteFile(base+".png", data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)
