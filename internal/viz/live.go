package viz

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gleam/internal/intro"
	"github.com/san-kum/gleam/internal/render"
)

const (
	// rows taken by the header (title + spacer) and footer (button box)
	headerRows = 2
	footerRows = 3

	statsWidth      = 40
	historyCapacity = 120

	Title    = "SK8 OR DIE"
	Subtitle = "Workshop"
)

type TickMsg time.Time

type revealMsg struct{}

type Options struct {
	Tuning     intro.Tuning
	Style      render.Style
	// EnterDelay of zero shows the skip button at mount.
	EnterDelay time.Duration
	FPS        int
	Seed       int64
	Theme      string
	Logger     *slog.Logger
	// Clock overrides the host clock; nil uses time since NewModel.
	Clock func() time.Duration
}

func DefaultOptions() Options {
	return Options{
		Tuning:     intro.DefaultTuning(),
		Style:      render.DefaultStyle(),
		EnterDelay: intro.DefaultEnterDelay,
		FPS:        60,
		Seed:       time.Now().UnixNano(),
		Theme:      ThemeNeon.Name,
	}
}

// session is shared by every copy of the Model bubbletea hands around.
type session struct {
	last    intro.Frame
	mixHist []float64
	frames  int
}

func (s *session) OnFrame(f intro.Frame) {
	s.last = f
	s.frames++
	s.mixHist = append(s.mixHist, f.Mix)
	if len(s.mixHist) > historyCapacity {
		s.mixHist = s.mixHist[len(s.mixHist)-historyCapacity:]
	}
}

// Model is the terminal host: it feeds tea ticks into the frame driver and
// renders the braille surface, title, and skip affordance.
type Model struct {
	opts    Options
	anim    *intro.Animation
	driver  *intro.Driver
	sched   *intro.ManualScheduler
	surface *render.BrailleSurface
	gate    *intro.SkipGate
	stats   *session
	theme   Theme
	clock   func() time.Duration
	logger  *slog.Logger

	interval  time.Duration
	termW     int
	termH     int
	started   bool
	showStats bool
	dismissed bool
	quitting  bool
}

func NewModel(opts Options, onFinish func()) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	gate, err := intro.NewSkipGate(intro.Props{OnFinish: onFinish, EnterDelay: intro.ExplicitEnterDelay(opts.EnterDelay)}, 0)
	if err != nil {
		return Model{}, err
	}

	clock := opts.Clock
	if clock == nil {
		start := time.Now()
		clock = func() time.Duration { return time.Since(start) }
	}

	fps := opts.FPS
	if fps <= 0 {
		fps = 60
	}

	surface := render.NewBrailleSurface()
	anim := intro.NewAnimation(opts.Tuning, rand.New(rand.NewSource(opts.Seed)), intro.WithLogger(logger))
	sched := intro.NewManualScheduler()
	driver := intro.NewDriver(anim, render.NewRenderer(surface, opts.Style), sched)

	stats := &session{mixHist: make([]float64, 0, historyCapacity)}
	driver.AddObserver(stats)

	return Model{
		opts:     opts,
		anim:     anim,
		driver:   driver,
		sched:    sched,
		surface:  surface,
		gate:     gate,
		stats:    stats,
		theme:    GetTheme(opts.Theme),
		clock:    clock,
		logger:   logger,
		interval: time.Second / time.Duration(fps),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and forwards ticks to the frame scheduler.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.quitting {
			return m, nil
		}
		m.sched.FireAt(m.clock())
		return m, m.tick()

	case revealMsg:
		return m, nil

	case tea.WindowSizeMsg:
		m.termW, m.termH = msg.Width, msg.Height
		m.layout()
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.onButton(msg.X, msg.Y) {
			if m.gate.Press(m.clock()) {
				return m.quit(true)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch key := msg.String(); key {
		case "ctrl+c", "q", "esc":
			return m.quit(false)
		case "s":
			m.showStats = !m.showStats
			m.layout()
		case "t":
			m.theme = NextTheme(m.theme)
		case "enter", " ", "space":
			if m.gate.Key(m.clock(), key) {
				return m.quit(true)
			}
		}
	}
	return m, nil
}

func (m Model) quit(dismissed bool) (tea.Model, tea.Cmd) {
	m.quitting = true
	m.dismissed = dismissed
	m.driver.Stop()
	return m, tea.Quit
}

// layout sizes the canvas to the terminal minus chrome. The first layout
// starts the driver; later ones resize it, which restarts the run.
func (m *Model) layout() {
	cols := m.termW
	if m.showStats {
		cols -= statsWidth
	}
	rows := m.termH - headerRows - footerRows
	if cols < 1 || rows < 1 {
		return
	}

	vp := intro.NewViewport(float64(cols*m.surface.CellW), float64(rows*m.surface.CellH), 1)
	now := m.clock()

	var err error
	if !m.started {
		err = m.driver.Start(vp, now)
		m.started = err == nil
	} else {
		err = m.driver.Resize(vp, now)
	}
	if err != nil {
		m.logger.Warn("layout failed", "cols", cols, "rows", rows, "err", err)
	}
}

// onButton reports whether the cell at x, y is covered by the ENTER button,
// which View draws at the left edge of the footer.
func (m Model) onButton(x, y int) bool {
	button := buttonStyle(m.theme).Render("ENTER")
	top := m.termH - footerRows
	return x >= 0 && x < lipgloss.Width(button) &&
		y >= top && y < top+lipgloss.Height(button)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	now := m.clock()

	header := GradientText(Title, m.theme.Secondary, m.theme.Primary) + "  " + subtleStyle(m.theme).Render(Subtitle)

	canvas := ""
	if m.started {
		canvas = m.surface.String()
	}
	if m.showStats {
		canvas = lipgloss.JoinHorizontal(lipgloss.Top, canvas, statsStyle.Render(m.statsView()))
	}

	footer := ""
	if m.gate.Visible(now) {
		footer = lipgloss.JoinHorizontal(lipgloss.Center,
			buttonStyle(m.theme).Render("ENTER"),
			"  "+keyHintStyle(m.theme).Render("press enter or space"))
	}

	return header + "\n\n" + canvas + "\n" + footer
}

func (m Model) statsView() string {
	f := m.stats.last
	var s strings.Builder

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Phase", f.Phase.String())
	row("Run", fmt.Sprintf("%d", f.Run))
	row("Head", fmt.Sprintf("%.0f, %.0f", f.Head.X, f.Head.Y))
	row("Target", fmt.Sprintf("%.0f, %.0f", f.Target.X, f.Target.Y))
	row("Trail", fmt.Sprintf("%d", len(f.Trail)))
	row("Elapsed", fmt.Sprintf("%.2fs", f.RunElapsed))
	row("Retarget", fmt.Sprintf("%d", f.Retargets))
	row("Color", lipgloss.NewStyle().Foreground(lipgloss.Color(f.Color.Hex())).Render(f.Color.Hex()))

	if len(m.stats.mixHist) > 1 {
		chart := asciigraph.Plot(m.stats.mixHist,
			asciigraph.Height(4),
			asciigraph.Width(statsWidth-12),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(1),
			asciigraph.Caption("Color mix"))
		s.WriteString(graphStyle.Render(chart) + "\n")
	}
	s.WriteString(keyHintStyle(m.theme).Render("S:Stats T:Theme Q:Quit"))
	return s.String()
}

// Close releases the driver and skip timer.
func (m Model) Close() {
	m.driver.Stop()
	m.gate.Close()
}

func (m Model) Dismissed() bool             { return m.dismissed }
func (m Model) Started() bool               { return m.started }
func (m Model) Frames() int                 { return m.stats.frames }
func (m Model) Gate() *intro.SkipGate       { return m.gate }
func (m Model) Animation() *intro.Animation { return m.anim }
func (m Model) ThemeName() string           { return m.theme.Name }
func (m Model) ShowStats() bool             { return m.showStats }

// Run shows the intro until the user dismisses it or quits. It reports
// whether onFinish was called.
func Run(opts Options, onFinish func(), progOpts ...tea.ProgramOption) (bool, error) {
	m, err := NewModel(opts, onFinish)
	if err != nil {
		return false, err
	}
	defer m.Close()

	progOpts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}, progOpts...)
	p := tea.NewProgram(m, progOpts...)
	m.gate.Arm(m.clock(), func() { p.Send(revealMsg{}) })

	if _, err := p.Run(); err != nil {
		return false, err
	}
	return m.gate.Finished(), nil
}
