package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/frameless/internal/config"
)

// AppearanceTab edits the window, title bar, content and shadow settings.
type AppearanceTab struct {
	cfg *config.Config

	width  int
	height int

	editing bool
	form    *huh.Form
	err     error

	// Form-bound values (strings for huh, converted on submit)
	fTitle        string
	fBarHeight    string
	fBarBg        string
	fBarFg        string
	fButtonHover  string
	fCloseHover   string
	fContentText  string
	fContentBg    string
	fContentFg    string
	fResizeBorder string
	fHitTest      string
	fStrategy     string
	fBlurRadius   string
	fShadowColor  string
	fShadowAlpha  string
	fOffsetX      string
	fOffsetY      string
	fBackdrop     string
}

// NewAppearanceTab creates an AppearanceTab editing cfg in place.
func NewAppearanceTab(cfg *config.Config) AppearanceTab {
	return AppearanceTab{cfg: cfg}
}

// Update implements tea.Model.
func (a AppearanceTab) Update(msg tea.Msg) (AppearanceTab, tea.Cmd) {
	if a.editing {
		return a.updateEditing(msg)
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			a.startEditing()
			return a, a.form.Init()
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}
	return a, nil
}

func (a AppearanceTab) updateEditing(msg tea.Msg) (AppearanceTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			a.editing = false
			a.form = nil
			return a, nil
		}
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
	}

	form, cmd := a.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.form = f
	}

	if a.form.State == huh.StateCompleted {
		a.err = a.applyForm()
		a.editing = false
		a.form = nil
		return a, nil
	}
	return a, cmd
}

func (a *AppearanceTab) startEditing() {
	cfg := a.cfg
	a.err = nil

	a.fTitle = cfg.Window.Title
	a.fBarHeight = strconv.Itoa(cfg.TitleBar.Height)
	a.fBarBg = cfg.TitleBar.Background.String()
	a.fBarFg = cfg.TitleBar.Foreground.String()
	a.fButtonHover = cfg.TitleBar.ButtonHover.String()
	a.fCloseHover = cfg.TitleBar.CloseHover.String()
	a.fContentText = cfg.Content.Text
	a.fContentBg = cfg.Content.Background.String()
	a.fContentFg = cfg.Content.Foreground.String()
	a.fResizeBorder = strconv.Itoa(cfg.ResizeBorder)
	a.fHitTest = cfg.HitTest
	a.fStrategy = cfg.Shadow.Strategy
	a.fBlurRadius = strconv.Itoa(cfg.Shadow.BlurRadius)
	a.fShadowColor = cfg.Shadow.Color.String()
	a.fShadowAlpha = strconv.Itoa(cfg.Shadow.Alpha)
	a.fOffsetX = strconv.Itoa(cfg.Shadow.OffsetX)
	a.fOffsetY = strconv.Itoa(cfg.Shadow.OffsetY)
	a.fBackdrop = cfg.Shadow.Backdrop.String()

	w := a.width - 4
	if w < 40 {
		w = 40
	}

	a.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Window Title").
				Value(&a.fTitle),
			huh.NewInput().
				Key("title_bar_height").
				Title("Title Bar Height").
				Description("Pixels").
				Validate(validateInt(1, 200)).
				Value(&a.fBarHeight),
			colorInput("Title Bar Background", &a.fBarBg),
			colorInput("Title Bar Foreground", &a.fBarFg),
			colorInput("Button Hover", &a.fButtonHover),
			colorInput("Close Hover", &a.fCloseHover),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("content_text").
				Title("Content Text").
				Value(&a.fContentText),
			colorInput("Content Background", &a.fContentBg),
			colorInput("Content Foreground", &a.fContentFg),
			huh.NewInput().
				Key("resize_border").
				Title("Resize Border").
				Description("Width of the edge that resizes the window").
				Validate(validateInt(0, 64)).
				Value(&a.fResizeBorder),
			huh.NewSelect[string]().
				Key("hit_test").
				Title("Hit Test").
				Description("Who moves and resizes the window").
				Options(huh.NewOptions("app", "wm")...).
				Value(&a.fHitTest),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("strategy").
				Title("Shadow Strategy").
				Options(huh.NewOptions("auto", "native", "soft", "none")...).
				Value(&a.fStrategy),
			huh.NewInput().
				Key("blur_radius").
				Title("Blur Radius").
				Validate(validateInt(0, 200)).
				Value(&a.fBlurRadius),
			colorInput("Shadow Color", &a.fShadowColor),
			huh.NewInput().
				Key("alpha").
				Title("Shadow Alpha").
				Description("0-255").
				Validate(validateInt(0, 255)).
				Value(&a.fShadowAlpha),
			huh.NewInput().
				Key("offset_x").
				Title("Offset X").
				Validate(validateInt(-200, 200)).
				Value(&a.fOffsetX),
			huh.NewInput().
				Key("offset_y").
				Title("Offset Y").
				Validate(validateInt(-200, 200)).
				Value(&a.fOffsetY),
			colorInput("Backdrop", &a.fBackdrop),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	a.editing = true
}

func colorInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description("#rrggbb").
		Validate(func(s string) error {
			_, err := config.ParseColor(strings.TrimSpace(s))
			return err
		}).
		Value(value)
}

func validateInt(lo, hi int) func(string) error {
	return func(s string) error {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("must be a number")
		}
		if v < lo || v > hi {
			return fmt.Errorf("must be between %d and %d", lo, hi)
		}
		return nil
	}
}

// applyForm copies the form values into the config. Nothing changes when
// the result does not validate.
func (a *AppearanceTab) applyForm() error {
	next := cloneConfig(a.cfg)
	if next == nil {
		return fmt.Errorf("config could not be copied")
	}

	var errs []error
	num := func(s string, dst *int) {
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = v
	}
	color := func(s string, dst *config.Color) {
		c, err := config.ParseColor(strings.TrimSpace(s))
		if err != nil {
			errs = append(errs, err)
			return
		}
		*dst = c
	}

	next.Window.Title = a.fTitle
	num(a.fBarHeight, &next.TitleBar.Height)
	color(a.fBarBg, &next.TitleBar.Background)
	color(a.fBarFg, &next.TitleBar.Foreground)
	color(a.fButtonHover, &next.TitleBar.ButtonHover)
	color(a.fCloseHover, &next.TitleBar.CloseHover)
	next.Content.Text = a.fContentText
	color(a.fContentBg, &next.Content.Background)
	color(a.fContentFg, &next.Content.Foreground)
	num(a.fResizeBorder, &next.ResizeBorder)
	next.HitTest = a.fHitTest
	next.Shadow.Strategy = a.fStrategy
	num(a.fBlurRadius, &next.Shadow.BlurRadius)
	color(a.fShadowColor, &next.Shadow.Color)
	num(a.fShadowAlpha, &next.Shadow.Alpha)
	num(a.fOffsetX, &next.Shadow.OffsetX)
	num(a.fOffsetY, &next.Shadow.OffsetY)
	color(a.fBackdrop, &next.Shadow.Backdrop)

	if len(errs) > 0 {
		return errs[0]
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*a.cfg = *next
	return nil
}

// View implements tea.Model.
func (a AppearanceTab) View() string {
	style := lipgloss.NewStyle().
		Width(a.width).
		Height(a.height).
		Padding(1, 2)

	if a.editing && a.form != nil {
		header := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Render("Editing Appearance") +
			dimStyle.Render("  (esc to cancel)")
		return style.Render(header + "\n\n" + a.form.View())
	}

	cfg := a.cfg
	shadow := fmt.Sprintf("%s r=%d %s a=%d offset=%d,%d",
		cfg.Shadow.Strategy, cfg.Shadow.BlurRadius, cfg.Shadow.Color,
		cfg.Shadow.Alpha, cfg.Shadow.OffsetX, cfg.Shadow.OffsetY)

	lines := []string{
		row("Window Title", cfg.Window.Title),
		row("Size", fmt.Sprintf("%dx%d", cfg.Window.Width, cfg.Window.Height)),
		row("Resize Border", strconv.Itoa(cfg.ResizeBorder)),
		row("Hit Test", cfg.HitTest),
		"",
		row("Title Bar", fmt.Sprintf("%dpx %s on %s", cfg.TitleBar.Height, cfg.TitleBar.Foreground, cfg.TitleBar.Background)),
		row("Hover", fmt.Sprintf("%s, close %s", cfg.TitleBar.ButtonHover, cfg.TitleBar.CloseHover)),
		row("Content", fmt.Sprintf("%s on %s", cfg.Content.Foreground, cfg.Content.Background)),
		row("Content Text", displayOrDefault(cfg.Content.Text, "(none)")),
		"",
		row("Shadow", shadow),
		row("Backdrop", cfg.Shadow.Backdrop.String()),
		"",
	}
	if a.err != nil {
		lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("  Not applied: "+a.err.Error()))
	}
	lines = append(lines, dimStyle.Render("  Press 'e' to edit, ctrl-s to save"))
	return style.Render(strings.Join(lines, "\n"))
}
