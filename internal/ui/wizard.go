package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"ytclip/internal/model"
	"ytclip/internal/timecode"
	"ytclip/internal/util"
)

// WizardResult holds the raw answers bound to the wizard fields.
type WizardResult struct {
	URL     string
	Start   string
	End     string
	Output  string
	Mode    string
	Quality string
	Width   string
	FPS     string
	Speed   string
	Colors  string
	Keep    bool
}

// NewWizardResult pre-fills the answers from defaults.
func NewWizardResult(d model.Options) WizardResult {
	mode := d.Mode
	if mode == "" {
		mode = model.ModeVideo
	}
	q := d.Params.Quality
	if q == "" {
		q = model.QualityMedium
	}
	return WizardResult{
		URL:     d.URL,
		Start:   d.Start,
		End:     d.End,
		Output:  d.Output,
		Mode:    string(mode),
		Quality: string(q),
		Width:   strconv.Itoa(d.Params.Width),
		FPS:     strconv.Itoa(d.Params.FPS),
		Speed:   strconv.FormatFloat(d.Params.Speed, 'f', -1, 64),
		Colors:  strconv.Itoa(d.Params.MaxColors),
		Keep:    d.KeepSrc,
	}
}

// NewWizardForm builds the three-step clip form. Step 2 depends on the mode
// chosen in step 1.
func NewWizardForm(r *WizardResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("New clip").Description("Step 1 of 3: Source"),
			huh.NewInput().
				Title("Video URL").
				Value(&r.URL).
				Validate(validateURL),
			huh.NewInput().
				Title("Start").
				Description("SS, MM:SS or HH:MM:SS").
				Value(&r.Start).
				Validate(validateTime),
			huh.NewInput().
				Title("End").
				Description("SS, MM:SS or HH:MM:SS").
				Value(&r.End).
				Validate(validateTime),
			huh.NewSelect[string]().
				Title("Output").
				Options(
					huh.NewOption("MP4 + WebM", string(model.ModeVideo)),
					huh.NewOption("Animated GIF", string(model.ModeGIF)),
				).
				Value(&r.Mode),
		),
		huh.NewGroup(
			huh.NewNote().Title("New clip").Description("Step 2 of 3: Video quality"),
			huh.NewSelect[string]().
				Title("Quality").
				Options(
					huh.NewOption("Low", string(model.QualityLow)),
					huh.NewOption("Medium", string(model.QualityMedium)),
					huh.NewOption("High", string(model.QualityHigh)),
				).
				Value(&r.Quality),
		).WithHideFunc(func() bool { return r.Mode == string(model.ModeGIF) }),
		huh.NewGroup(
			huh.NewNote().Title("New clip").Description("Step 2 of 3: GIF palette"),
			huh.NewInput().
				Title("Colors").
				Description(fmt.Sprintf("1..%d", model.MaxPaletteColors)).
				Value(&r.Colors).
				Validate(validateColors),
		).WithHideFunc(func() bool { return r.Mode != string(model.ModeGIF) }),
		huh.NewGroup(
			huh.NewNote().Title("New clip").Description("Step 3 of 3: Rendering"),
			huh.NewInput().
				Title("Output base").
				Description("Extensions are added automatically").
				Value(&r.Output),
			huh.NewInput().
				Title("Width").
				Value(&r.Width).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("FPS").
				Value(&r.FPS).
				Validate(validatePositiveInt),
			huh.NewInput().
				Title("Speed").
				Description("1 = unchanged, 2 = twice as fast").
				Value(&r.Speed).
				Validate(validateSpeed),
			huh.NewConfirm().
				Title("Keep downloaded source").
				Value(&r.Keep),
		),
	).WithTheme(wizardTheme())
}

// Apply merges the answers into base.
func (r WizardResult) Apply(base model.Options) (model.Options, error) {
	o := base
	o.URL = strings.TrimSpace(r.URL)
	o.Start = strings.TrimSpace(r.Start)
	o.End = strings.TrimSpace(r.End)
	if out := strings.TrimSpace(r.Output); out != "" {
		o.Output = out
	}
	mode, err := model.ParseMode(r.Mode)
	if err != nil {
		return o, err
	}
	o.Mode = mode
	if mode == model.ModeVideo {
		q, err := model.ParseQuality(r.Quality)
		if err != nil {
			return o, err
		}
		o.Params.Quality = q
	} else {
		c, err := strconv.Atoi(strings.TrimSpace(r.Colors))
		if err != nil {
			return o, fmt.Errorf("colors: %w", err)
		}
		o.Params.MaxColors = c
	}
	if o.Params.Width, err = strconv.Atoi(strings.TrimSpace(r.Width)); err != nil {
		return o, fmt.Errorf("width: %w", err)
	}
	if o.Params.FPS, err = strconv.Atoi(strings.TrimSpace(r.FPS)); err != nil {
		return o, fmt.Errorf("fps: %w", err)
	}
	if o.Params.Speed, err = strconv.ParseFloat(strings.TrimSpace(r.Speed), 64); err != nil {
		return o, fmt.Errorf("speed: %w", err)
	}
	o.KeepSrc = r.Keep
	return o, nil
}

// RunWizard asks for the clip options interactively.
func RunWizard(ctx context.Context, defaults model.Options) (model.Options, error) {
	r := NewWizardResult(defaults)
	if err := NewWizardForm(&r).RunWithContext(ctx); err != nil {
		return defaults, err
	}
	return r.Apply(defaults)
}

func validateURL(s string) error {
	_, _, err := util.DetectPlatform(s)
	return err
}

func validateTime(s string) error {
	_, err := timecode.Parse(s)
	return err
}

func validatePositiveInt(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive whole number")
	}
	return nil
}

func validateSpeed(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

func validateColors(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 || n > model.MaxPaletteColors {
		return fmt.Errorf("must be within 1..%d", model.MaxPaletteColors)
	}
	return nil
}

func wizardTheme() *huh.Theme {
	t := huh.ThemeBase()
	purple := lipgloss.Color("#7D56F4")
	cyan := lipgloss.Color("#22D3EE")
	red := lipgloss.Color("#EF4444")

	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(purple).
		PaddingLeft(1)
	t.Focused.Title = lipgloss.NewStyle().Foreground(purple).Bold(true)
	t.Focused.NoteTitle = lipgloss.NewStyle().Foreground(cyan).Bold(true)
	t.Focused.ErrorIndicator = lipgloss.NewStyle().Foreground(red).Bold(true)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(red)
	t.Focused.SelectSelector = lipgloss.NewStyle().SetString("▸ ").Foreground(cyan)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(cyan)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(cyan)
	return t
}
