package api

import (
	"context"

	"github.com/milesync/mscoach/internal/models"
)

// TaskStatusUpdate flips a task between pending and done.
type TaskStatusUpdate struct {
	Status string `json:"status"`
}

// CheckInRequest is one daily check-in submission.
type CheckInRequest struct {
	Mood             int     `json:"mood"`
	Note             string  `json:"note"`
	CompletedTaskIDs []int64 `json:"completed_task_ids"`
}

// ListGoals returns all of the user's goals without roadmap detail.
func (c *Client) ListGoals(ctx context.Context) ([]models.Goal, error) {
	var out []models.Goal
	err := c.get(ctx, "/api/goals", nil, &out)
	return out, err
}

// GetGoal returns one goal with milestones and tasks.
func (c *Client) GetGoal(ctx context.Context, goalID int64) (models.Goal, error) {
	var out models.Goal
	err := c.get(ctx, idPath("/api/goals/%d", goalID), nil, &out)
	return out, err
}

// UpdateTaskStatus sets a task's status and returns the task as stored.
func (c *Client) UpdateTaskStatus(ctx context.Context, goalID, taskID int64, status string) (models.Task, error) {
	var out models.Task
	err := c.patch(ctx, idPath("/api/goals/%d/tasks/%d", goalID, taskID), TaskStatusUpdate{Status: status}, &out)
	return out, err
}

// DeleteGoal removes a goal and its roadmap.
func (c *Client) DeleteGoal(ctx context.Context, goalID int64) error {
	return c.delete(ctx, idPath("/api/goals/%d", goalID))
}

// SubmitCheckIn records today's check-in for a goal.
func (c *Client) SubmitCheckIn(ctx context.Context, goalID int64, req CheckInRequest) (models.CheckIn, error) {
	var out models.CheckIn
	err := c.post(ctx, idPath("/api/goals/%d/checkin", goalID), req, &out)
	return out, err
}

// ListCheckIns returns a goal's check-in history, most recent first.
func (c *Client) ListCheckIns(ctx context.Context, goalID int64) ([]models.CheckIn, error) {
	var out []models.CheckIn
	err := c.get(ctx, idPath("/api/goals/%d/checkins", goalID), nil, &out)
	return out, err
}
