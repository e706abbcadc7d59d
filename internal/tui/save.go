package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/frameless/internal/config"
)

type savePhase int

const (
	saveHidden savePhase = iota
	savePreview
	saveResult
)

type diffKind int

const (
	diffSection diffKind = iota
	diffRemoved
	diffAdded
)

type diffLine struct {
	kind diffKind
	text string
}

// setting is one leaf of the encoded config, addressed by section and key.
type setting struct {
	section string
	key     string
	value   string
}

// sectionChange collects the changed settings of one config section.
type sectionChange struct {
	name    string
	removed []setting
	added   []setting
}

var saveBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(lipgloss.Color("62")).
	Padding(1, 2)

var (
	saveTitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	saveSectionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	saveAddStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	saveRemoveStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	saveFootStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// SaveOverlay previews the pending config changes section by section and
// writes them on confirmation.
type SaveOverlay struct {
	phase    savePhase
	path     string
	changes  []sectionChange
	lines    []diffLine
	scroll   int
	err      error
	reloaded bool
}

// Active reports whether the overlay is visible.
func (s SaveOverlay) Active() bool {
	return s.phase != saveHidden
}

// Show compares original and current in the encoding of the file at path
// and opens the preview. With nothing to save it goes straight to the
// result view.
func (s *SaveOverlay) Show(original, current *config.Config, path string) {
	*s = SaveOverlay{path: path}

	format := config.FormatFor(path)
	changes, err := diffSettings(original, current, format)
	switch {
	case err != nil:
		s.phase, s.err = saveResult, err
	case len(changes) == 0:
		s.phase, s.err = saveResult, fmt.Errorf("no changes to save")
	default:
		s.phase = savePreview
		s.changes = changes
		s.lines = renderChanges(changes, format)
	}
}

// SaveSucceeded reports whether the last save completed without error.
func (s SaveOverlay) SaveSucceeded() bool {
	return s.phase == saveResult && s.err == nil
}

// Update handles a key while the overlay is visible. A confirmed save asks a
// connected window to reload.
func (s SaveOverlay) Update(msg tea.Msg, cfg *config.Config, client WindowClient, connected bool) SaveOverlay {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return s
	}
	if s.phase == saveResult {
		s.phase = saveHidden
		return s
	}
	if s.phase != savePreview {
		return s
	}

	switch km.String() {
	case "esc", "n":
		s.phase = saveHidden
	case "enter", "y":
		s.err = cfg.SaveTo(s.path)
		if s.err == nil && connected && client != nil {
			s.reloaded = client.Reload() == nil
		}
		s.phase = saveResult
	case "up", "k":
		s.scroll = max(s.scroll-1, 0)
	case "down", "j":
		s.scroll = min(s.scroll+1, max(len(s.lines)-1, 0))
	}
	return s
}

// View renders the overlay centred in a width x height area.
func (s SaveOverlay) View(width, height int) string {
	var body string
	boxW := width - 8
	switch s.phase {
	case savePreview:
		boxW = min(max(boxW, 30), 80)
		body = s.previewBody(boxW-6, max(height-10, 3))
	case saveResult:
		boxW = min(max(boxW, 30), 60)
		body = s.resultBody()
	default:
		return ""
	}
	box := saveBoxStyle.Width(boxW).Render(body)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (s SaveOverlay) previewBody(innerW, rows int) string {
	n := 0
	for _, c := range s.changes {
		n += max(len(c.removed), len(c.added))
	}
	title := saveTitleStyle.Render(fmt.Sprintf("Save %s (%d %s in %d %s)",
		s.path, n, plural(n, "setting"), len(s.changes), plural(len(s.changes), "section")))

	start := min(s.scroll, max(len(s.lines)-rows, 0))
	end := min(start+rows, len(s.lines))
	out := make([]string, 0, end-start)
	for _, l := range s.lines[start:end] {
		text := l.text
		if r := []rune(text); len(r) > innerW-2 && innerW > 2 {
			text = string(r[:innerW-2])
		}
		switch l.kind {
		case diffSection:
			out = append(out, saveSectionStyle.Render(text))
		case diffRemoved:
			out = append(out, saveRemoveStyle.Render("- "+text))
		case diffAdded:
			out = append(out, saveAddStyle.Render("+ "+text))
		}
	}

	footer := saveFootStyle.Render("enter/y: save  esc/n: cancel  j/k: scroll")
	return title + "\n\n" + strings.Join(out, "\n") + "\n\n" + footer
}

func (s SaveOverlay) resultBody() string {
	var msg string
	if s.err != nil {
		msg = saveRemoveStyle.Bold(true).Render("Error: " + s.err.Error())
	} else {
		msg = saveAddStyle.Bold(true).Render("Saved " + s.path)
		if s.reloaded {
			msg += "\n" + saveAddStyle.Render("Window reloaded")
		}
	}
	return msg + "\n\n" + saveFootStyle.Render("press any key to dismiss")
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// computeDiffLines renders the changes between two configs as section
// headers followed by removed and added settings.
func computeDiffLines(original, current *config.Config, format config.Format) []diffLine {
	changes, err := diffSettings(original, current, format)
	if err != nil || len(changes) == 0 {
		return nil
	}
	return renderChanges(changes, format)
}

// diffSettings groups the settings that differ between original and current
// by section, in the order the encoder writes them.
func diffSettings(original, current *config.Config, format config.Format) ([]sectionChange, error) {
	if original == nil || current == nil {
		return nil, nil
	}
	before, err := flattenConfig(original, format)
	if err != nil {
		return nil, err
	}
	after, err := flattenConfig(current, format)
	if err != nil {
		return nil, err
	}

	old := make(map[string]setting, len(before))
	for _, st := range before {
		old[st.section+"."+st.key] = st
	}

	var changes []sectionChange
	index := map[string]int{}
	change := func(section string) *sectionChange {
		i, ok := index[section]
		if !ok {
			i = len(changes)
			index[section] = i
			changes = append(changes, sectionChange{name: section})
		}
		return &changes[i]
	}

	for _, st := range after {
		id := st.section + "." + st.key
		prev, ok := old[id]
		delete(old, id)
		if ok && prev.value == st.value {
			continue
		}
		c := change(st.section)
		if ok {
			c.removed = append(c.removed, prev)
		}
		c.added = append(c.added, st)
	}
	for _, st := range before {
		if _, gone := old[st.section+"."+st.key]; gone {
			c := change(st.section)
			c.removed = append(c.removed, st)
		}
	}
	return changes, nil
}

// flattenConfig lists every leaf setting of cfg. Top-level scalars belong to
// the unnamed section; nested tables are joined with dots.
func flattenConfig(cfg *config.Config, format config.Format) ([]setting, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	var out []setting
	collectSettings(doc.Content[0], "", format, &out)
	return out, nil
}

func collectSettings(node *yaml.Node, section string, format config.Format, out *[]setting) {
	if node.Kind != yaml.MappingNode {
		return
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i].Value, node.Content[i+1]
		if val.Kind == yaml.MappingNode {
			name := key
			if section != "" {
				name = section + "." + key
			}
			collectSettings(val, name, format, out)
			continue
		}
		*out = append(*out, setting{section: section, key: key, value: formatValue(val, format)})
	}
}

// formatValue writes a scalar the way the target file spells it.
func formatValue(n *yaml.Node, format config.Format) string {
	if n.Kind == yaml.SequenceNode {
		parts := make([]string, 0, len(n.Content))
		for _, item := range n.Content {
			parts = append(parts, formatValue(item, format))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	if n.Tag != "!!str" {
		return n.Value
	}
	if format == config.FormatTOML || n.Value == "" || strings.ContainsAny(n.Value[:1], "#&*!|>'\"%@` ") || strings.Contains(n.Value, ": ") {
		return strconv.Quote(n.Value)
	}
	return n.Value
}

func renderChanges(changes []sectionChange, format config.Format) []diffLine {
	var lines []diffLine
	for _, c := range changes {
		indent := ""
		if c.name != "" {
			header := c.name + ":"
			if format == config.FormatTOML {
				header = "[" + c.name + "]"
			} else {
				indent = "  "
			}
			lines = append(lines, diffLine{kind: diffSection, text: header})
		}
		for _, st := range c.removed {
			lines = append(lines, diffLine{kind: diffRemoved, text: indent + assignment(st, format)})
		}
		for _, st := range c.added {
			lines = append(lines, diffLine{kind: diffAdded, text: indent + assignment(st, format)})
		}
	}
	return lines
}

func assignment(st setting, format config.Format) string {
	if format == config.FormatTOML {
		return st.key + " = " + st.value
	}
	return st.key + ": " + st.value
}

// cloneConfig deep-copies cfg through YAML so edits can be validated before
// they replace the live config.
func cloneConfig(cfg *config.Config) *config.Config {
	if cfg == nil {
		return nil
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil
	}
	var clone config.Config
	if err := yaml.Unmarshal(data, &clone); err != nil {
		return nil
	}
	return &clone
}
