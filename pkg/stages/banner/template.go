package banner

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/ideamans/go-l10n"

	"github.com/user/asciiplay/pkg/pipeline"
	"github.com/user/asciiplay/pkg/progress"
)

// RuleWidth is the width of the horizontal rules framing the banner.
const RuleWidth = 60

// TemplateVars contains variables for the banner template.
type TemplateVars struct {
	Rule string

	VideoLabel      string
	Name            string
	ResolutionLabel string
	Width           int
	Height          int
	DurationLabel   string
	Duration        string
	CharWidthLabel  string
	CharWidth       int
	CharactersUnit  string
	ColorLabel      string
	ColorValue      string
	AudioLabel      string
	AudioValue      string
	StopHint        string
}

// NewTemplateVars creates template variables from banner input.
// Labels are translated for the current language.
func NewTemplateVars(input pipeline.BannerInput) TemplateVars {
	audio := l10n.T("Starting...")
	if !input.Audio {
		audio = l10n.T("Disabled")
	}

	return TemplateVars{
		Rule:            strings.Repeat("=", RuleWidth),
		VideoLabel:      l10n.T("Video"),
		Name:            input.Info.Name(),
		ResolutionLabel: l10n.T("Resolution"),
		Width:           input.Info.Width,
		Height:          input.Info.Height,
		DurationLabel:   l10n.T("Duration"),
		Duration:        progress.FormatTime(input.Info.Duration()),
		CharWidthLabel:  l10n.T("ASCII Width"),
		CharWidth:       input.CharWidth,
		CharactersUnit:  l10n.T("characters"),
		ColorLabel:      l10n.T("Color"),
		ColorValue:      l10n.T("Enabled"),
		AudioLabel:      l10n.T("Audio"),
		AudioValue:      audio,
		StopHint:        l10n.T("Press Ctrl+C to stop"),
	}
}

var bannerTemplate = template.Must(template.New("banner").Parse(defaultTemplate))

// Render renders the banner template with the given variables.
func Render(vars TemplateVars) (string, error) {
	var buf bytes.Buffer
	if err := bannerTemplate.Execute(&buf, vars); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// defaultTemplate is the session banner.
const defaultTemplate = `
{{.Rule}}
{{.VideoLabel}}: {{.Name}}
{{.ResolutionLabel}}: {{.Width}}x{{.Height}}
{{.DurationLabel}}: {{.Duration}}
{{.CharWidthLabel}}: {{.CharWidth}} {{.CharactersUnit}}
{{.ColorLabel}}: {{.ColorValue}}
{{.AudioLabel}}: {{.AudioValue}}
{{.Rule}}

{{.StopHint}}
`
