package connections

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// TUIOptions controls the full-screen picker.
type TUIOptions struct {
	InitialQuery string
	MaxResults   int
}

// RunTUI runs the full-screen filterable picker over an already-loaded
// connections file and returns the chosen name. ok is false when the
// operator quit without picking. The caller decides between this and the
// line-oriented Selector.Select (typically based on whether stdin/stdout
// are terminals).
func RunTUI(f *File, theme Theme, opts TUIOptions) (string, bool, error) {
	if f == nil || f.Len() == 0 {
		return "", false, fmt.Errorf("no connections to pick from")
	}
	if opts.MaxResults <= 0 {
		opts.MaxResults = 20
	}

	m := newPickModel(f, theme, opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	out, err := p.Run()
	if err != nil {
		return "", false, err
	}
	final, ok := out.(pickModel)
	if !ok {
		return "", false, fmt.Errorf("unexpected picker model %T", out)
	}
	return final.choice, final.chosen, nil
}

// pickItem is one connection ready for filtering and display.
type pickItem struct {
	Name    string
	Display string
	search  string
	pos     int // document position, used as the order tiebreaker
}

type pickModel struct {
	opts  TUIOptions
	theme Theme

	input    textinput.Model
	items    []pickItem
	filtered []pickItem

	selected int
	numBuf   string // numeric quick-select buffer (browse mode)
	browse   bool   // false: typing filters; true: vim-ish navigation

	choice   string
	chosen   bool
	quitting bool

	width  int
	height int
	ready  bool
}

func newPickModel(f *File, theme Theme, opts TUIOptions) pickModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter..."
	ti.CharLimit = 128
	ti.SetValue(strings.TrimSpace(opts.InitialQuery))
	ti.Focus()

	items := make([]pickItem, 0, f.Len())
	for i, name := range f.Names() {
		p, _ := f.Get(name)
		items = append(items, pickItem{
			Name:    name,
			Display: fmt.Sprintf("%s (%s)", name, p.HostPort()),
			search:  strings.ToLower(name + " " + p.HostPort()),
			pos:     i,
		})
	}

	m := pickModel{opts: opts, theme: theme, input: ti, items: items}
	m.recomputeFilter()
	return m
}

func (m pickModel) Init() tea.Cmd { return textinput.Blink }

func (m pickModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "esc":
			if m.browse {
				m.quitting = true
				return m, tea.Quit
			}
			// First esc leaves the filter and enters browse mode.
			m.browse = true
			m.numBuf = ""
			m.input.Blur()
			return m, nil

		case "enter":
			if m.browse && m.numBuf != "" {
				if idx, err := strconv.Atoi(m.numBuf); err == nil && idx >= 1 && idx <= len(m.filtered) {
					return m.pick(m.filtered[idx-1].Name)
				}
				m.numBuf = ""
				return m, nil
			}
			if cur := m.current(); cur != nil {
				return m.pick(cur.Name)
			}
			return m, nil

		case "up", "ctrl+p":
			m.moveSelection(-1)
			return m, nil
		case "down", "ctrl+n":
			m.moveSelection(1)
			return m, nil
		}

		if m.browse {
			switch s := msg.String(); {
			case s == "/":
				m.browse = false
				m.numBuf = ""
				m.input.Focus()
				return m, textinput.Blink
			case s == "q":
				m.quitting = true
				return m, tea.Quit
			case s == "j":
				m.moveSelection(1)
			case s == "k":
				m.moveSelection(-1)
			case s == "g":
				m.selected = 0
			case s == "G":
				m.selected = max(0, len(m.filtered)-1)
			case len(s) == 1 && s[0] >= '0' && s[0] <= '9':
				m.numBuf += s
			}
			return m, nil
		}

		// Filter mode: hand the key to the input and re-rank.
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.recomputeFilter()
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m pickModel) pick(name string) (tea.Model, tea.Cmd) {
	m.choice = name
	m.chosen = true
	m.quitting = true
	return m, tea.Quit
}

func (m *pickModel) current() *pickItem {
	if m.selected < 0 || m.selected >= len(m.filtered) {
		return nil
	}
	return &m.filtered[m.selected]
}

func (m *pickModel) moveSelection(delta int) {
	m.numBuf = ""
	m.selected += delta
	m.clampSelection()
}

func (m *pickModel) clampSelection() {
	if m.selected >= len(m.filtered) {
		m.selected = len(m.filtered) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// recomputeFilter filters and ranks items against the current query.
//
// Query semantics (simple, fzf-like tokenization):
// - Split query on whitespace into tokens.
// - All tokens must match (AND).
// - Score is the sum of token scores (higher is better).
//
// An empty query keeps the document order of the connections file; ranked
// results break score ties by document position for the same reason.
func (m *pickModel) recomputeFilter() {
	q := strings.TrimSpace(m.input.Value())
	if q == "" {
		m.filtered = append([]pickItem(nil), m.items...)
		m.clampSelection()
		return
	}

	tokens := strings.Fields(strings.ToLower(q))

	type scored struct {
		it pickItem
		s  int
	}
	scoreds := make([]scored, 0, len(m.items))
	for _, it := range m.items {
		total := 0
		okAll := true
		for _, t := range tokens {
			if s, ok := fuzzyScore(t, it.search); ok {
				total += s
			} else {
				okAll = false
				break
			}
		}
		if okAll {
			scoreds = append(scoreds, scored{it: it, s: total})
		}
	}

	sort.SliceStable(scoreds, func(i, j int) bool {
		if scoreds[i].s != scoreds[j].s {
			return scoreds[i].s > scoreds[j].s
		}
		return scoreds[i].it.pos < scoreds[j].it.pos
	})

	m.filtered = make([]pickItem, len(scoreds))
	for i := range scoreds {
		m.filtered[i] = scoreds[i].it
	}
	m.clampSelection()
}

// fuzzyScore performs a simple subsequence fuzzy match.
// Returns (score, true) if query is a subsequence of text; otherwise (0, false).
// The score rewards consecutive matches, word boundaries, and early positions.
func fuzzyScore(query, text string) (int, bool) {
	if query == "" {
		return 0, true
	}
	rt := []rune(text)
	rq := []rune(query)

	ti := 0
	lastPos := -1
	consecutive := 0
	score := 0
	firstPos := -1

	for _, qch := range rq {
		found := false
		for i := ti; i < len(rt); i++ {
			if rt[i] == qch {
				score += 10
				if firstPos == -1 {
					firstPos = i
				}
				if lastPos >= 0 && i == lastPos+1 {
					consecutive++
					score += 5 * consecutive
				} else {
					consecutive = 0
				}
				if i == 0 || !isAlphaNum(rt[i-1]) {
					score += 10
				}
				lastPos = i
				ti = i + 1
				found = true
				break
			}
		}
		if !found {
			return 0, false
		}
	}
	if firstPos >= 0 {
		if bonus := 20 - firstPos; bonus > 0 {
			score += bonus
		}
	}
	return score, true
}

func isAlphaNum(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

func (m pickModel) View() string {
	if m.quitting {
		return ""
	}
	t := m.theme
	var b strings.Builder

	b.WriteString(t.Header("pve-connect: select a connection") + "\n")
	b.WriteString(m.input.View() + "\n\n")

	maxRows := m.opts.MaxResults
	if m.ready && m.height > 8 && m.height-8 < maxRows {
		maxRows = m.height - 8
	}
	if maxRows < 1 {
		maxRows = 1
	}

	start := 0
	if m.selected >= maxRows {
		start = m.selected - maxRows + 1
	}
	end := min(len(m.filtered), start+maxRows)

	if len(m.filtered) == 0 {
		b.WriteString(t.Dim("  no matches") + "\n")
	}
	for i := start; i < end; i++ {
		row := fmt.Sprintf("%3d. %s", i+1, m.filtered[i].Display)
		if i == m.selected {
			b.WriteString(t.Selected("> "+row) + "\n")
		} else {
			b.WriteString("  " + row + "\n")
		}
	}

	b.WriteString("\n")
	status := fmt.Sprintf("%d/%d", len(m.filtered), len(m.items))
	if m.browse && m.numBuf != "" {
		status += "  #" + m.numBuf
	}
	b.WriteString(t.Dim(status) + "\n")
	if m.browse {
		b.WriteString(t.Dim("j/k move | <n>+enter jump | / filter | enter select | esc quit") + "\n")
	} else {
		b.WriteString(t.Dim("type to filter | enter select | esc browse | ctrl+c quit") + "\n")
	}
	return b.String()
}
