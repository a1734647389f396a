// Package banner implements the session banner stage.
package banner

import (
	"context"
	"fmt"
	"strings"

	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/ports"
)

// Stage formats the banner shown before playback starts.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new banner stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{
		logger: logger.WithComponent("banner"),
	}
}

// Execute renders the banner template for the session.
func (s *Stage) Execute(ctx context.Context, input pipeline.BannerInput) (pipeline.BannerResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.BannerResult{}, err
	}

	text, err := Render(NewTemplateVars(input))
	if err != nil {
		return pipeline.BannerResult{}, fmt.Errorf("render banner: %w", err)
	}

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	s.logger.Debug("Banner rendered: %d lines", len(lines))
	return pipeline.BannerResult{Lines: lines}, nil
}
