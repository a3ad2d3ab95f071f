package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ptomo194059/family-growth/internal/engine"
	"github.com/ptomo194059/family-growth/internal/storage"
)

type boardModel struct {
	ctx context.Context
	svc *engine.Service

	width  int
	height int

	state   *storage.State
	childID string
	metrics engine.Metrics

	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	state   *storage.State
	childID string
	metrics engine.Metrics
	err     error
}

type toggledMsg struct {
	res *engine.ToggleResult
	err error
}

type steppedMsg struct {
	res *engine.WeeklyResult
	err error
}

type drawnMsg struct {
	res *engine.DrawResult
	err error
}

func newBoardModel(ctx context.Context, svc *engine.Service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd(m.childID)
}

func (m boardModel) loadCmd(childID string) tea.Cmd {
	return func() tea.Msg {
		if err := m.svc.EnsureResets(m.ctx); err != nil {
			return loadedMsg{err: err}
		}
		st := m.svc.Snapshot()
		if childID == "" || st.FindChild(childID) == nil {
			childID = st.ActiveChildID
		}
		return loadedMsg{
			state:   st,
			childID: childID,
			metrics: m.svc.MetricsFor(childID),
		}
	}
}

func (m boardModel) toggleCmd(taskID string) tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.ToggleDaily(m.ctx, m.childID, taskID)
		return toggledMsg{res: res, err: err}
	}
}

func (m boardModel) stepCmd(taskID string, delta int) tea.Cmd {
	return func() tea.Msg {
		var res *engine.WeeklyResult
		var err error
		if delta > 0 {
			res, err = m.svc.IncWeekly(m.ctx, m.childID, taskID)
		} else {
			res, err = m.svc.DecWeekly(m.ctx, m.childID, taskID)
		}
		return steppedMsg{res: res, err: err}
	}
}

func (m boardModel) drawCmd() tea.Cmd {
	return func() tea.Msg {
		res, err := m.svc.Draw(m.ctx, m.childID)
		return drawnMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.state
		m.childID = msg.childID
		m.metrics = msg.metrics
		m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
		return m, nil
	case toggledMsg:
		if msg.err != nil {
			m.lastLog = "Toggle failed: " + msg.err.Error()
			return m, nil
		}
		if !msg.res.Found {
			m.lastLog = "Task not found."
			return m, m.loadCmd(m.childID)
		}
		m.lastLog = describeToggle(msg.res)
		return m, m.loadCmd(m.childID)
	case steppedMsg:
		if msg.err != nil {
			m.lastLog = "Update failed: " + msg.err.Error()
			return m, nil
		}
		if !msg.res.Found {
			m.lastLog = "Task not found."
			return m, m.loadCmd(m.childID)
		}
		m.lastLog = describeStep(msg.res)
		return m, m.loadCmd(m.childID)
	case drawnMsg:
		if msg.err != nil {
			m.lastLog = "Draw failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = fmt.Sprintf("Drew %s %s (%s), balance $%d", msg.res.Card.Icon, msg.res.Card.Name, msg.res.Card.Rarity, msg.res.Balance)
		return m, m.loadCmd(m.childID)
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = "Refreshing…"
			return m, m.loadCmd(m.childID)
		case "tab":
			return m, m.loadCmd(m.nextChildID())
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.taskLines())-1 {
				m.selected++
			}
			return m, nil
		case "c", " ", "enter", "+":
			line, ok := m.currentLine()
			if !ok {
				return m, nil
			}
			if line.weekly {
				m.lastLog = fmt.Sprintf("Logging %s…", line.title)
				return m, m.stepCmd(line.id, +1)
			}
			m.lastLog = fmt.Sprintf("Toggling %s…", line.title)
			return m, m.toggleCmd(line.id)
		case "-":
			line, ok := m.currentLine()
			if !ok || !line.weekly {
				return m, nil
			}
			return m, m.stepCmd(line.id, -1)
		case "d":
			m.lastLog = "Drawing…"
			return m, m.drawCmd()
		}
	}
	return m, nil
}

func describeToggle(res *engine.ToggleResult) string {
	verb := "Undid"
	if res.Task.Done {
		verb = "Completed"
	}
	out := fmt.Sprintf("%s %s, stars %d", verb, res.Task.Title, res.StarWallet)
	if res.RewardGranted > 0 {
		out += fmt.Sprintf(", daily bonus +$%d", res.RewardGranted)
	}
	if res.RewardRevoked > 0 {
		out += fmt.Sprintf(", daily bonus −$%d", res.RewardRevoked)
	}
	for _, b := range res.NewBadges {
		out += fmt.Sprintf(", badge %s", b.Title)
	}
	return out
}

func describeStep(res *engine.WeeklyResult) string {
	out := fmt.Sprintf("%s now %d/%d, stars %d", res.Task.Title, res.Task.Count, res.Task.Target, res.StarWallet)
	if res.RewardGranted > 0 {
		out += fmt.Sprintf(", weekly bonus +$%d", res.RewardGranted)
	}
	if res.RewardRevoked > 0 {
		out += fmt.Sprintf(", weekly bonus −$%d", res.RewardRevoked)
	}
	for _, b := range res.NewBadges {
		out += fmt.Sprintf(", badge %s", b.Title)
	}
	return out
}

func (m boardModel) nextChildID() string {
	if m.state == nil || len(m.state.Children) == 0 {
		return m.childID
	}
	for i, c := range m.state.Children {
		if c.ID == m.childID {
			return m.state.Children[(i+1)%len(m.state.Children)].ID
		}
	}
	return m.state.Children[0].ID
}

type taskLine struct {
	id     string
	title  string
	weekly bool
	done   bool
	points int
	count  int
	target int
}

func (m boardModel) taskLines() []taskLine {
	if m.state == nil {
		return nil
	}
	var out []taskLine
	for _, t := range m.state.Daily[m.childID] {
		out = append(out, taskLine{id: t.ID, title: t.Title, done: t.Done, points: t.Points})
	}
	for _, t := range m.state.Weekly[m.childID] {
		out = append(out, taskLine{id: t.ID, title: t.Title, weekly: true, points: t.Points, count: t.Count, target: t.Target})
	}
	return out
}

func (m boardModel) currentLine() (taskLine, bool) {
	lines := m.taskLines()
	if m.selected < 0 || m.selected >= len(lines) {
		return taskLine{}, false
	}
	return lines[m.selected], true
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	// Simple 2-column layout.
	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if m.state == nil {
		return "FamGrow — loading…"
	}
	name := m.childID
	if c := m.state.FindChild(m.childID); c != nil {
		name = c.Name
	}
	var tabs []string
	for _, c := range m.state.Children {
		if c.ID == m.childID {
			tabs = append(tabs, "["+c.Name+"]")
		} else {
			tabs = append(tabs, " "+c.Name+" ")
		}
	}
	return fmt.Sprintf("FamGrow | %s | ⭐ %d today | streak %d | %s",
		name, m.svcTodayStars(), m.metrics.Streak, strings.Join(tabs, " "))
}

func (m boardModel) svcTodayStars() int {
	sum := m.state.TodayWeeklyStars[m.childID]
	for _, t := range m.state.Daily[m.childID] {
		if t.Done {
			sum += t.Points
		}
	}
	return sum
}

func (m boardModel) renderSidebar() string {
	if m.state == nil {
		return "Wallet\n\nLoading…"
	}
	lines := []string{"Wallet"}
	lines = append(lines, fmt.Sprintf("- 💰 $%d", m.state.Balances[m.childID]))
	lines = append(lines, fmt.Sprintf("- ⭐ %d stars", m.state.StarWallet[m.childID]))
	lines = append(lines, fmt.Sprintf("- 🃏 %d cards", len(m.state.Inventories[m.childID])))
	lines = append(lines, fmt.Sprintf("- 🏆 %d badges", len(m.state.Badges[m.childID])))
	lines = append(lines, fmt.Sprintf("- done all-time %d", m.metrics.TotalCompleted))
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- space: toggle / log")
	lines = append(lines, "- -: undo weekly step")
	lines = append(lines, "- d: gacha draw")
	lines = append(lines, "- tab: switch child")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading {
		return "Loading…"
	}
	var out []string
	out = append(out, "Today")

	lines := m.taskLines()
	if len(lines) == 0 {
		out = append(out, "(no tasks configured)")
		return strings.Join(out, "\n")
	}
	if m.selected >= len(lines) {
		m.selected = len(lines) - 1
	}
	sawWeekly := false
	for i, tl := range lines {
		if tl.weekly && !sawWeekly {
			sawWeekly = true
			out = append(out, "")
			out = append(out, "This Week")
		}
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		if tl.weekly {
			bar := progressBar(tl.count, tl.target, 10)
			out = append(out, fmt.Sprintf("%s%s %s %d/%d (+%d⭐ each)", cursor, bar, tl.title, tl.count, tl.target, tl.points))
			continue
		}
		mark := "⬜"
		if tl.done {
			mark = "✅"
		}
		out = append(out, fmt.Sprintf("%s%s %s (+%d⭐)", cursor, mark, tl.title, tl.points))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
