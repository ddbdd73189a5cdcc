package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/ravenscube"
	"github.com/SeamusWaldron/ravenscube/internal/recorder"
	"github.com/SeamusWaldron/ravenscube/internal/render"
	"github.com/SeamusWaldron/ravenscube/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the interactive cube",
	Long: `Open the cube in an interactive terminal view.

Mouse:
  click a sticker   - turn the layer that face controls
  drag              - orbit the view

Keyboard shortcuts:
  f b r l u d   - click front, back, right, left, top, bottom
  F B R L U D   - turn that face the other way
  m e s / M E S - turn a middle slice
  arrows        - orbit the view
  space         - shuffle
  x             - reset to solved
  o             - close or reopen the cube
  q/Esc         - quit`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	solvedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("82"))

	moveStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Where the net is drawn in the view, in cells.
const (
	netTop  = 2
	netLeft = 2
)

// A terminal cell is treated as cellPxX by cellPxY pixels so the drag
// threshold and orbit sensitivity keep their pixel meaning.
const (
	cellPxX = 4
	cellPxY = 8
)

// orbitStep is the pixel displacement of one arrow key press.
const orbitStep = 10

// recentMoves is how many moves the view lists.
const recentMoves = 20

// Model
type playModel struct {
	engine   *ravenscube.Engine
	sched    *teaScheduler
	renderer *render.Renderer
	session  *recorder.Session
	logger   *slog.Logger

	last     string // outcome of the last command
	lastOK   bool
	width    int
	height   int
	quitting bool
}

func newPlayModel(e *ravenscube.Engine, sched *teaScheduler, session *recorder.Session, logger *slog.Logger) *playModel {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &playModel{
		engine:   e,
		sched:    sched,
		renderer: render.NewRenderer(),
		session:  session,
		logger:   logger,
	}
}

func (m *playModel) Init() tea.Cmd {
	return m.sched.drain()
}

func (m *playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKey(msg.String())

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tea.BlurMsg:
		// A release outside the terminal never arrives.
		m.engine.PointerCancel()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case timerFiredMsg:
		m.sched.fire(msg.id)
	}

	// Engine commands may have scheduled timers; hand them to the runtime.
	return m, tea.Batch(cmd, m.sched.drain())
}

func (m *playModel) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return tea.Quit

	case "f", "b", "r", "l", "u", "d":
		face, _ := ravenscube.ParseFace(key)
		m.report("click "+face.String(), m.engine.TriggerFromFaceClick(face))

	case "F", "B", "R", "L", "U", "D":
		face, _ := ravenscube.ParseFace(key)
		mv, _ := ravenscube.FaceMove(face)
		m.rotate(mv.Inverse())

	case "m", "e", "s":
		m.rotateNotation(strings.ToUpper(key))
	case "M", "E", "S":
		m.rotateNotation(key + "'")

	case "left":
		m.engine.Orbit(-orbitStep, 0)
	case "right":
		m.engine.Orbit(orbitStep, 0)
	case "up":
		m.engine.Orbit(0, -orbitStep)
	case "down":
		m.engine.Orbit(0, orbitStep)

	case " ":
		res := m.engine.Shuffle()
		m.report("shuffle", res)

	case "x":
		m.engine.Reset()
		m.last, m.lastOK = "reset", true
		journalEvent(m.session, storage.EventReset, m.logger)

	case "o":
		if m.engine.IsOpen() {
			m.engine.Close()
			m.last, m.lastOK = "closed", true
			journalEvent(m.session, storage.EventClose, m.logger)
		} else {
			m.engine.Open()
			m.last, m.lastOK = "opened", true
			journalEvent(m.session, storage.EventOpen, m.logger)
		}
	}
	return nil
}

func (m *playModel) rotate(mv ravenscube.Move) {
	m.report(mv.Notation(), m.engine.RotateLayer(mv))
}

func (m *playModel) rotateNotation(notation string) {
	moves, err := ravenscube.ParseMove(notation)
	if err != nil || len(moves) == 0 {
		m.logger.Warn("bad notation", "notation", notation, "error", err)
		return
	}
	m.rotate(moves[0])
}

// report records the outcome of a command for the view and the journal.
func (m *playModel) report(command string, res ravenscube.Result) {
	m.last = fmt.Sprintf("%s: %s", command, res)
	m.lastOK = res.OK()
	m.logger.Debug("command", "command", command, "result", res)

	name := "rotate"
	if command == "shuffle" {
		name = "shuffle"
	}
	journal(m.session, name, res, m.logger)
}

func (m *playModel) handleMouse(msg tea.MouseMsg) {
	x, y := float64(msg.X*cellPxX), float64(msg.Y*cellPxY)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
		face := m.renderer.Layout.FaceAt(msg.X-netLeft, msg.Y-netTop)
		m.engine.PointerDown(x, y, face)

	case tea.MouseActionMotion:
		m.engine.PointerMove(x, y)

	case tea.MouseActionRelease:
		if res := m.engine.PointerUp(); res != ravenscube.Ignored {
			m.report("click", res)
		}
	}
}

func (m *playModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder
	snap := m.engine.Snapshot()

	// Title and status
	b.WriteString(titleStyle.Render("ravenscube"))
	b.WriteString("  ")
	b.WriteString(m.statusLine(snap))
	b.WriteString("\n\n")

	if !snap.Open {
		b.WriteString(statusStyle.Render("The cube is closed. Press o to open it."))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("o=open  q=quit"))
		b.WriteString("\n")
		return b.String()
	}

	// Net
	pad := strings.Repeat(" ", netLeft)
	for _, line := range strings.Split(m.renderer.Render(snap), "\n") {
		b.WriteString(pad)
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Recent moves
	moves := m.engine.Moves()
	if len(moves) > 0 {
		b.WriteString("Moves: ")
		if len(moves) > recentMoves {
			moves = moves[len(moves)-recentMoves:]
			b.WriteString("... ")
		}
		b.WriteString(moveStyle.Render(ravenscube.FormatMoves(moves)))
		b.WriteString("\n")
	}

	if m.last != "" {
		if m.lastOK {
			b.WriteString(statusStyle.Render(m.last))
		} else {
			b.WriteString(errorStyle.Render(m.last))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("click/fblrud=turn  drag/arrows=orbit  space=shuffle  x=reset  o=close  q=quit"))
	b.WriteString("\n")

	return b.String()
}

func (m *playModel) statusLine(s ravenscube.Snapshot) string {
	if !s.Open {
		return statusStyle.Render("closed")
	}

	parts := []string{
		s.State.String(),
		fmt.Sprintf("pitch %.0f° yaw %.0f°", s.Pitch, s.Yaw),
		fmt.Sprintf("%d moves", len(m.engine.Moves())),
	}
	if s.Rotation != nil {
		parts = append(parts, "turning "+s.Rotation.Move.Notation())
	}
	if m.engine.Dragging() {
		parts = append(parts, "dragging")
	}
	line := statusStyle.Render(strings.Join(parts, " | "))

	if c := m.engine.Cube(); c != nil && c.IsSolved() && len(m.engine.Moves()) > 0 {
		line += "  " + solvedStyle.Render("SOLVED")
	}
	return line
}

func runPlay(cmd *cobra.Command, args []string) error {
	// Log to a file so the alt screen stays clean
	var logOut io.Writer = io.Discard
	if f, err := openLogFile(); err == nil {
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut)

	sched := newTeaScheduler()
	opts := append(loadedConfig().EngineOptions(),
		ravenscube.WithScheduler(sched),
		ravenscube.WithLogger(logger),
	)
	e := ravenscube.NewEngine(opts...)

	session, closeJournal, err := startJournal(e, "play", logger)
	if err != nil {
		return err
	}
	defer closeJournal()

	e.Open()
	defer e.Close()

	model := newPlayModel(e, sched, session, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
