package tui

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/milesync/mscoach/internal/models"
)

func TestAnalyticsLoadErrorKeepsSummary(t *testing.T) {
	b := newMockBackend()
	m := NewAnalyticsModel(context.Background(), b)
	summary := models.AnalyticsSummary{TotalGoals: 3, StreakDays: 4}
	m.summary = &summary

	m, _ = m.Update(analyticsLoadedMsg{err: errBoom})
	if m.summary == nil || m.summary.TotalGoals != 3 {
		t.Errorf("failed load wiped the summary")
	}
	if m.status == "" {
		t.Errorf("expected error banner")
	}
}

func TestActivityBarScales(t *testing.T) {
	if got := activityBar(10, 10, 20); len([]rune(got)) != 20 {
		t.Errorf("full bar width = %d, want 20", len([]rune(got)))
	}
	if got := activityBar(0, 10, 20); got != "" {
		t.Errorf("zero count rendered %q", got)
	}
	// A non-zero count always shows at least one cell.
	if got := activityBar(1, 1000, 20); len([]rune(got)) != 1 {
		t.Errorf("tiny count rendered %q", got)
	}
	if got := activityBar(5, 0, 20); got != "" {
		t.Errorf("zero max rendered %q", got)
	}
}

func TestAnalyticsViewShowsStreakAndWeeks(t *testing.T) {
	b := newMockBackend()
	m := NewAnalyticsModel(context.Background(), b)
	m.setSize(100, 30)
	summary := models.AnalyticsSummary{
		TotalGoals:     2,
		ActiveGoals:    1,
		CompletedTasks: 8,
		PendingTasks:   4,
		CompletionRate: 0.66,
		StreakDays:     5,
		WeeklyActivity: []models.WeekBucket{{WeekStart: "2026-08-17", Completed: 3}},
	}
	m.summary = &summary

	out := m.View()
	if !strings.Contains(out, "5-day streak") {
		t.Errorf("streak missing from view")
	}
	if !strings.Contains(out, "2026-08-17") {
		t.Errorf("weekly bucket missing from view")
	}
}

func TestWriteProgressReportCreatesFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DOCUMENTS_DIR", dir)

	summary := models.AnalyticsSummary{
		TotalGoals:     1,
		ActiveGoals:    1,
		CompletedTasks: 1,
		PendingTasks:   2,
		CompletionRate: 0.33,
		WeeklyActivity: []models.WeekBucket{{WeekStart: "2026-08-17", Completed: 1}},
	}
	goals := []models.Goal{roadmapGoal()}

	path, err := WriteProgressReport(summary, goals)
	if err != nil {
		t.Fatalf("WriteProgressReport failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("report not written: %v", err)
	}
	if info.Size() == 0 {
		t.Errorf("report is empty")
	}
	if !strings.HasSuffix(path, ".pdf") {
		t.Errorf("unexpected report path %q", path)
	}
}
