package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/api"
	"github.com/milesync/mscoach/internal/config"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/util"
	"github.com/milesync/mscoach/internal/voice"
)

type checkinGoalsMsg struct {
	goals []models.Goal
	err   error
}

type checkinDetailMsg struct {
	gen     int
	goal    models.Goal
	history []models.CheckIn
	err     error
}

type checkinSubmittedMsg struct {
	gen     int
	checkin models.CheckIn
	err     error
}

const (
	checkinPickGoal = iota
	checkinForm
)

// CheckinModel is the daily reflection form: pick a goal, rate the
// day, note progress, tick off completed tasks.
type CheckinModel struct {
	ctx context.Context
	b   Backend
	cap *voice.Capture

	voiceText  chan string
	voiceDrain bool

	width  int
	height int

	phase   int
	loading bool
	status  string
	done    string

	goals  []models.Goal
	cursor int

	gen     int
	goal    models.Goal
	history []models.CheckIn

	mood      int
	note      textinput.Model
	tasks     []models.Task
	ticked    map[int64]bool
	taskIdx   int
	noteFocus bool
	busy      bool
}

func NewCheckinModel(ctx context.Context, b Backend, cap *voice.Capture, voiceText chan string) CheckinModel {
	note := textinput.New()
	note.Placeholder = "How did it go today?"
	note.CharLimit = config.MaxNoteLength
	note.Width = 60

	return CheckinModel{
		ctx:       ctx,
		b:         b,
		cap:       cap,
		voiceText: voiceText,
		mood:      3,
		note:      note,
		ticked:    make(map[int64]bool),
	}
}

func (m *CheckinModel) setSize(w, h int) {
	m.width, m.height = w, h
	if w > 20 {
		m.note.Width = w - 12
	}
}

func (m CheckinModel) inputActive() bool {
	return m.phase == checkinForm && m.noteFocus
}

// setGoal retargets the form when a goal is opened elsewhere.
func (m *CheckinModel) setGoal(goal models.Goal) {
	if goal.ID == m.goal.ID {
		return
	}
	m.goal = goal
	m.phase = checkinPickGoal // refreshed on next view entry
}

func (m CheckinModel) load() tea.Cmd {
	ctx, b := m.ctx, m.b
	return func() tea.Msg {
		goals, err := b.ListGoals(ctx)
		return checkinGoalsMsg{goals: goals, err: err}
	}
}

func (m CheckinModel) loadDetail(goalID int64) tea.Cmd {
	ctx, b := m.ctx, m.b
	gen := m.gen
	return func() tea.Msg {
		goal, err := b.GetGoal(ctx, goalID)
		if err != nil {
			return checkinDetailMsg{gen: gen, err: err}
		}
		history, err := b.ListCheckIns(ctx, goalID)
		return checkinDetailMsg{gen: gen, goal: goal, history: history, err: err}
	}
}

func (m CheckinModel) Update(msg tea.Msg) (CheckinModel, tea.Cmd) {
	switch msg := msg.(type) {
	case checkinGoalsMsg:
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.goals = msg.goals
		m.cursor = util.Clamp(m.cursor, 0, max(len(m.goals)-1, 0))
		return m, nil

	case checkinDetailMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.goal = msg.goal
		m.history = msg.history
		m.tasks = m.tasks[:0]
		for _, milestone := range m.goal.Milestones {
			for _, task := range milestone.Tasks {
				if task.Status != "done" {
					m.tasks = append(m.tasks, task)
				}
			}
		}
		m.ticked = make(map[int64]bool)
		m.taskIdx = 0
		m.phase = checkinForm
		return m, nil

	case checkinSubmittedMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		m.busy = false
		if msg.err != nil {
			m.status = "check-in failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.done = fmt.Sprintf("check-in recorded for %s %s", msg.checkin.Date, moodGlyph(msg.checkin.Mood))
		m.note.Reset()
		m.ticked = make(map[int64]bool)
		// Reload so completed tasks drop out of the checklist.
		return m, m.loadDetail(m.goal.ID)

	case capturePollMsg:
		if msg.view != ViewCheckin {
			return m, nil
		}
		return m.pollVoice()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m CheckinModel) handleKey(msg tea.KeyMsg) (CheckinModel, tea.Cmd) {
	if m.phase == checkinPickGoal {
		switch msg.String() {
		case "r":
			m.loading = true
			return m, m.load()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.goals)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.goals) {
				m.gen++
				m.loading = true
				m.done = ""
				return m, m.loadDetail(m.goals[m.cursor].ID)
			}
		}
		return m, nil
	}

	// Form phase.
	if m.noteFocus {
		switch msg.Type {
		case tea.KeyEsc:
			m.noteFocus = false
			m.note.Blur()
			return m, nil
		case tea.KeyEnter:
			m.noteFocus = false
			m.note.Blur()
			return m, nil
		}
		if msg.String() == "ctrl+v" {
			return m.toggleVoice()
		}
		var cmd tea.Cmd
		m.note, cmd = m.note.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "esc":
		m.phase = checkinPickGoal
		return m, m.load()
	case "left", "h":
		if m.mood > config.MoodMin {
			m.mood--
		}
	case "right", "l":
		if m.mood < config.MoodMax {
			m.mood++
		}
	case "up", "k":
		if m.taskIdx > 0 {
			m.taskIdx--
		}
	case "down", "j":
		if m.taskIdx < len(m.tasks)-1 {
			m.taskIdx++
		}
	case " ":
		if m.taskIdx < len(m.tasks) {
			id := m.tasks[m.taskIdx].ID
			m.ticked[id] = !m.ticked[id]
		}
	case "n":
		m.noteFocus = true
		m.note.Focus()
		return m, textinput.Blink
	case "ctrl+v":
		return m.toggleVoice()
	case "enter":
		return m.submit()
	}
	return m, nil
}

func (m CheckinModel) toggleVoice() (CheckinModel, tea.Cmd) {
	if !m.cap.Available() {
		m.status = voice.CondUnsupported
		return m, nil
	}
	if m.cap.Capturing() {
		m.cap.End()
		return m, nil
	}
	ch := m.voiceText
	m.cap.Begin(func(text string) {
		select {
		case ch <- text:
		default:
		}
	})
	m.status = ""
	return m, pollCaptureCmd(ViewCheckin)
}

func (m CheckinModel) pollVoice() (CheckinModel, tea.Cmd) {
	select {
	case text := <-m.voiceText:
		m.voiceDrain = false
		cur := m.note.Value()
		if cur != "" && !strings.HasSuffix(cur, " ") {
			cur += " "
		}
		m.note.SetValue(cur + text)
		m.note.CursorEnd()
		return m, nil
	default:
	}
	if m.cap.Capturing() {
		m.voiceDrain = false
		return m, pollCaptureCmd(ViewCheckin)
	}
	if cond := m.cap.Condition(); cond != "" {
		m.voiceDrain = false
		m.status = cond
		return m, nil
	}
	// The transcript is published after the listening flag drops;
	// one extra tick catches a result landing in that window.
	if !m.voiceDrain {
		m.voiceDrain = true
		return m, pollCaptureCmd(ViewCheckin)
	}
	m.voiceDrain = false
	return m, nil
}

func (m CheckinModel) submit() (CheckinModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	m.busy = true
	m.status = ""
	m.done = ""

	var completed []int64
	for id, on := range m.ticked {
		if on {
			completed = append(completed, id)
		}
	}
	req := api.CheckInRequest{
		Mood:             m.mood,
		Note:             strings.TrimSpace(m.note.Value()),
		CompletedTaskIDs: completed,
	}

	ctx, b := m.ctx, m.b
	gen, goalID := m.gen, m.goal.ID
	return m, func() tea.Msg {
		checkin, err := b.SubmitCheckIn(ctx, goalID, req)
		return checkinSubmittedMsg{gen: gen, checkin: checkin, err: err}
	}
}

func (m CheckinModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	b.WriteString(" " + theme.Header.Render("Daily check-in") + "\n\n")
	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "  " + theme.Dim.Render("[r] retry") + "\n\n")
	}
	if m.done != "" {
		b.WriteString(" " + theme.Banner.Render(m.done) + "\n\n")
	}

	if m.phase == checkinPickGoal {
		if m.loading && len(m.goals) == 0 {
			return b.String() + " " + theme.Dim.Render("loading…") + "\n"
		}
		if len(m.goals) == 0 {
			return b.String() + " " + theme.Dim.Render("no goals to check in against") + "\n"
		}
		b.WriteString(" Which goal are you checking in on?\n\n")
		for i, g := range m.goals {
			cursor := "  "
			style := theme.Coach
			if i == m.cursor {
				cursor = "> "
				style = theme.Focused
			}
			b.WriteString(fitLine(cursor+style.Render(util.Truncate(g.Title, 60)), m.width) + "\n")
		}
		b.WriteString("\n " + theme.Dim.Render("[enter] choose  [j/k] move") + "\n")
		return b.String()
	}

	b.WriteString(" " + theme.Focused.Render(m.goal.Title) + "\n\n")

	// Mood scale.
	b.WriteString(" Mood: ")
	for i := config.MoodMin; i <= config.MoodMax; i++ {
		glyph := moodGlyph(i)
		if i == m.mood {
			b.WriteString(theme.Focused.Render("["+glyph+"]") + " ")
		} else {
			b.WriteString(theme.Dim.Render(" "+glyph+" ") + " ")
		}
	}
	b.WriteString("\n\n")

	// Note.
	noteLabel := theme.Dim.Render("Note [n to edit]")
	if m.noteFocus {
		noteLabel = theme.Focused.Render("Note")
	}
	b.WriteString(" " + noteLabel + "\n " + m.note.View() + "\n")
	if m.cap.Capturing() {
		b.WriteString(" " + theme.Banner.Render("● listening… (ctrl+v to stop)") + "\n")
	}
	b.WriteString("\n")

	// Task checklist.
	b.WriteString(" " + theme.Header.Render("Completed today") + "\n")
	if len(m.tasks) == 0 {
		b.WriteString(" " + theme.Dim.Render("no open tasks") + "\n")
	}
	for i, task := range m.tasks {
		cursor := "   "
		if i == m.taskIdx && !m.noteFocus {
			cursor = " > "
		}
		mark := "[ ]"
		style := theme.Coach
		if m.ticked[task.ID] {
			mark = "[x]"
			style = theme.Banner
		}
		b.WriteString(fitLine(cursor+mark+" "+style.Render(task.Title), m.width) + "\n")
	}

	if len(m.history) > 0 {
		b.WriteString("\n " + theme.Header.Render("Recent") + "\n")
		shown := m.history
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, c := range shown {
			line := fmt.Sprintf("  %s %s %s", c.Date, moodGlyph(c.Mood), theme.Dim.Render(util.Preview(c.Note, 50)))
			b.WriteString(fitLine(line, m.width) + "\n")
		}
	}

	busy := ""
	if m.busy {
		busy = "  " + theme.Dim.Render("submitting…")
	}
	voiceHint := ""
	if m.cap.Available() {
		voiceHint = "  [ctrl+v] voice note"
	}
	b.WriteString("\n " + theme.Dim.Render("[enter] submit  [h/l] mood  [space] tick task  [n] note"+voiceHint+"  [esc] change goal") + busy + "\n")
	return b.String()
}
