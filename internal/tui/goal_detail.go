package tui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/util"
)

type goalDetailLoadedMsg struct {
	gen  int
	goal models.Goal
	err  error
}

type taskToggledMsg struct {
	gen        int
	taskID     int64
	prevStatus string
	task       models.Task
	err        error
}

type goalDeletedMsg struct {
	goalID int64
	err    error
}

// taskRef locates a task inside the roadmap tree.
type taskRef struct {
	milestoneIdx int
	taskIdx      int
}

// GoalDetailModel shows one goal's roadmap and lets the user toggle
// tasks. Toggles are optimistic: flipped locally, rolled back when the
// backend rejects them. A generation counter drops responses that
// belong to a previously selected goal.
type GoalDetailModel struct {
	ctx context.Context
	b   Backend

	width  int
	height int

	gen     int
	goal    models.Goal
	loading bool
	status  string

	tasks  []taskRef
	cursor int

	confirmDelete bool
	closed        bool
}

func NewGoalDetailModel(ctx context.Context, b Backend) GoalDetailModel {
	return GoalDetailModel{ctx: ctx, b: b}
}

func (m *GoalDetailModel) setSize(w, h int) {
	m.width, m.height = w, h
}

// open targets the view at a goal and starts the roadmap load.
func (m GoalDetailModel) open(goal models.Goal) (GoalDetailModel, tea.Cmd) {
	m.gen++
	m.goal = goal
	m.loading = true
	m.status = ""
	m.closed = false
	m.confirmDelete = false
	m.cursor = 0
	m.rebuildTaskRefs()
	return m, m.load()
}

func (m GoalDetailModel) load() tea.Cmd {
	ctx, b := m.ctx, m.b
	gen, goalID := m.gen, m.goal.ID
	return func() tea.Msg {
		goal, err := b.GetGoal(ctx, goalID)
		return goalDetailLoadedMsg{gen: gen, goal: goal, err: err}
	}
}

func (m *GoalDetailModel) rebuildTaskRefs() {
	m.tasks = m.tasks[:0]
	for mi := range m.goal.Milestones {
		for ti := range m.goal.Milestones[mi].Tasks {
			m.tasks = append(m.tasks, taskRef{milestoneIdx: mi, taskIdx: ti})
		}
	}
	if m.cursor >= len(m.tasks) {
		m.cursor = util.Clamp(len(m.tasks)-1, 0, len(m.tasks))
	}
}

func (m *GoalDetailModel) taskAt(ref taskRef) *models.Task {
	return &m.goal.Milestones[ref.milestoneIdx].Tasks[ref.taskIdx]
}

func (m GoalDetailModel) Update(msg tea.Msg) (GoalDetailModel, tea.Cmd) {
	switch msg := msg.(type) {
	case goalDetailLoadedMsg:
		if msg.gen != m.gen {
			return m, nil // stale: a different goal was opened since
		}
		m.loading = false
		if msg.err != nil {
			m.status = msg.err.Error()
			return m, nil
		}
		m.status = ""
		m.goal = msg.goal
		m.rebuildTaskRefs()
		return m, nil

	case taskToggledMsg:
		if msg.gen != m.gen {
			return m, nil
		}
		if msg.err != nil {
			// Roll the optimistic flip back.
			for _, ref := range m.tasks {
				if task := m.taskAt(ref); task.ID == msg.taskID {
					task.Status = msg.prevStatus
					break
				}
			}
			m.status = "task update failed: " + msg.err.Error()
			return m, nil
		}
		m.status = ""
		for _, ref := range m.tasks {
			if task := m.taskAt(ref); task.ID == msg.taskID {
				*task = msg.task
				break
			}
		}
		return m, nil

	case goalDeletedMsg:
		if msg.goalID != m.goal.ID {
			return m, nil
		}
		if msg.err != nil {
			m.status = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.closed = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m GoalDetailModel) handleKey(msg tea.KeyMsg) (GoalDetailModel, tea.Cmd) {
	if m.confirmDelete {
		switch msg.String() {
		case "y":
			m.confirmDelete = false
			ctx, b := m.ctx, m.b
			goalID := m.goal.ID
			return m, func() tea.Msg {
				return goalDeletedMsg{goalID: goalID, err: b.DeleteGoal(ctx, goalID)}
			}
		default:
			m.confirmDelete = false
		}
		return m, nil
	}

	switch msg.String() {
	case "r":
		m.loading = true
		return m, m.load()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
	case " ":
		return m.toggleTask()
	case "d":
		m.confirmDelete = true
	}
	return m, nil
}

func (m GoalDetailModel) toggleTask() (GoalDetailModel, tea.Cmd) {
	if m.cursor >= len(m.tasks) {
		return m, nil
	}
	task := m.taskAt(m.tasks[m.cursor])
	prev := task.Status
	next := "done"
	if prev == "done" {
		next = "pending"
	}
	task.Status = next // optimistic

	ctx, b := m.ctx, m.b
	gen, goalID, taskID := m.gen, m.goal.ID, task.ID
	return m, func() tea.Msg {
		updated, err := b.UpdateTaskStatus(ctx, goalID, taskID, next)
		return taskToggledMsg{gen: gen, taskID: taskID, prevStatus: prev, task: updated, err: err}
	}
}

func (m GoalDetailModel) View() string {
	theme := CurrentTheme
	var b strings.Builder

	b.WriteString(" " + theme.Header.Render(m.goal.Title) + "  " + theme.Dim.Render(m.goal.Status) + "\n")
	if m.goal.TargetDate != nil {
		b.WriteString(" " + theme.Dim.Render("target "+formatDate(m.goal.TargetDate)) + "\n")
	}
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(" " + theme.ErrorBanner.Render(m.status) + "  " + theme.Dim.Render("[r] retry") + "\n\n")
	}
	if m.confirmDelete {
		b.WriteString(" " + theme.ErrorBanner.Render("delete this goal and its roadmap? [y/n]") + "\n\n")
	}
	if m.loading && len(m.goal.Milestones) == 0 {
		return b.String() + " " + theme.Dim.Render("loading roadmap…") + "\n"
	}

	taskIdx := 0
	for mi, milestone := range m.goal.Milestones {
		b.WriteString(fitLine(fmt.Sprintf(" %s %s", theme.Highlight.Render(fmt.Sprintf("M%d", mi+1)), theme.Header.Render(milestone.Title)), m.width) + "\n")
		for range milestone.Tasks {
			ref := m.tasks[taskIdx]
			task := m.goal.Milestones[ref.milestoneIdx].Tasks[ref.taskIdx]
			cursor := "   "
			if taskIdx == m.cursor {
				cursor = " > "
			}
			mark := "[ ]"
			style := theme.Coach
			if task.Status == "done" {
				mark = "[x]"
				style = theme.DoneTask
			}
			line := cursor + mark + " " + style.Render(task.Title)
			if task.DueDate != nil {
				line += theme.Dim.Render("  due " + formatDate(task.DueDate))
			}
			b.WriteString(fitLine(line, m.width) + "\n")
			taskIdx++
		}
	}
	if len(m.tasks) == 0 && !m.loading {
		b.WriteString(" " + theme.Dim.Render("no tasks in this roadmap") + "\n")
	}

	b.WriteString("\n " + theme.Dim.Render("[space] toggle  [j/k] move  [d] delete goal  [esc] back  [r] reload") + "\n")
	return b.String()
}
