package models

import "time"

// MessageRole enumerates who authored a chat message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// ChatStatus enumerates the lifecycle of a coaching conversation.
type ChatStatus string

const (
	ChatActive    ChatStatus = "active"
	ChatCompleted ChatStatus = "completed"
)

// User is the authenticated account as the backend reports it.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	AvatarURL    *string    `json:"avatar_url"`
	AuthProvider string     `json:"auth_provider"`
	IsActive     bool       `json:"is_active"`
	IsSuperuser  bool       `json:"is_superuser"`
	CreatedAt    time.Time  `json:"created_at"`
	TokenLimit   int64      `json:"token_limit"`
	TokensUsed   int64      `json:"tokens_used"`
	QuotaResetAt *time.Time `json:"quota_reset_at"`
}

// Goal is a coached objective with its generated roadmap.
type Goal struct {
	ID              int64       `json:"id"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Status          string      `json:"status"` // active, completed, abandoned
	TargetDate      *time.Time  `json:"target_date"`
	ProgressPercent float64     `json:"progress_percent"`
	CreatedAt       time.Time   `json:"created_at"`
	Milestones      []Milestone `json:"milestones,omitempty"`
}

// Milestone groups tasks inside a roadmap.
type Milestone struct {
	ID     int64  `json:"id"`
	GoalID int64  `json:"goal_id"`
	Title  string `json:"title"`
	Order  int    `json:"order"`
	Status string `json:"status"`
	Tasks  []Task `json:"tasks,omitempty"`
}

// Task is a single actionable roadmap item.
type Task struct {
	ID          int64      `json:"id"`
	MilestoneID int64      `json:"milestone_id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"` // pending, done
	DueDate     *time.Time `json:"due_date"`
	CompletedAt *time.Time `json:"completed_at"`
}

// ChatSession is one coaching conversation.
type ChatSession struct {
	ID        int64      `json:"id"`
	Title     *string    `json:"title"`
	Status    ChatStatus `json:"status"`
	GoalID    *int64     `json:"goal_id"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ChatListItem is the session-list projection the backend returns.
type ChatListItem struct {
	ID                 int64      `json:"id"`
	Title              *string    `json:"title"`
	Status             ChatStatus `json:"status"`
	MessageCount       int        `json:"message_count"`
	LastMessagePreview *string    `json:"last_message_preview"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// ChatMessage is one turn in a conversation.
type ChatMessage struct {
	ID        int64       `json:"id"`
	SessionID int64       `json:"session_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	CreatedAt time.Time   `json:"created_at"`
}

// Quota reports token budget consumption for the account.
type Quota struct {
	TokenLimit int64      `json:"token_limit"`
	TokensUsed int64      `json:"tokens_used"`
	Remaining  int64      `json:"remaining"`
	ResetAt    *time.Time `json:"reset_at"`
}

// UsedFraction returns consumption in [0,1] for gauge rendering.
func (q Quota) UsedFraction() float64 {
	if q.TokenLimit <= 0 {
		return 0
	}
	f := float64(q.TokensUsed) / float64(q.TokenLimit)
	if f > 1 {
		return 1
	}
	return f
}

// CheckIn is one daily reflection against a goal.
type CheckIn struct {
	ID               int64     `json:"id"`
	GoalID           int64     `json:"goal_id"`
	Date             string    `json:"date"` // YYYY-MM-DD
	Mood             int       `json:"mood"` // 1..5
	Note             string    `json:"note"`
	CompletedTaskIDs []int64   `json:"completed_task_ids"`
	CreatedAt        time.Time `json:"created_at"`
}

// Insight is a coaching observation generated for a goal.
type Insight struct {
	ID        int64     `json:"id"`
	GoalID    int64     `json:"goal_id"`
	Category  string    `json:"category"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Resource is a suggested reading/tool attached to a goal.
type Resource struct {
	ID     int64  `json:"id"`
	GoalID int64  `json:"goal_id"`
	Title  string `json:"title"`
	URL    string `json:"url"`
	Kind   string `json:"kind"`
}

// WeekBucket is one bar in the activity chart.
type WeekBucket struct {
	WeekStart string `json:"week_start"` // YYYY-MM-DD, Monday
	Completed int    `json:"completed"`
}

// AnalyticsSummary aggregates progress across all goals.
type AnalyticsSummary struct {
	TotalGoals     int          `json:"total_goals"`
	ActiveGoals    int          `json:"active_goals"`
	CompletedTasks int          `json:"completed_tasks"`
	PendingTasks   int          `json:"pending_tasks"`
	CompletionRate float64      `json:"completion_rate"`
	StreakDays     int          `json:"streak_days"`
	WeeklyActivity []WeekBucket `json:"weekly_activity"`
}

// DashboardSummary is the landing-view aggregate.
type DashboardSummary struct {
	ActiveGoals    int    `json:"active_goals"`
	TasksDueToday  []Task `json:"tasks_due_today"`
	CheckedInToday bool   `json:"checked_in_today"`
}

// AgentInfo describes one specialist agent exposed by the backend.
type AgentInfo struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SystemPrompt is an admin-editable prompt template.
type SystemPrompt struct {
	Key       string    `json:"key"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
