package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/milesync/mscoach/internal/config"
	"github.com/milesync/mscoach/internal/models"
	"github.com/milesync/mscoach/internal/util"
)

// WriteProgressReport renders the analytics summary and per-goal
// roadmap status into a PDF under the user's documents directory.
// Returns the written path.
func WriteProgressReport(summary models.AnalyticsSummary, goals []models.Goal) (string, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, fmt.Sprintf("MileSync Progress Report: %s", time.Now().Format("2006-01-02")))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Goals: %d total, %d active", summary.TotalGoals, summary.ActiveGoals))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Tasks: %d completed, %d open (%.0f%% completion)", summary.CompletedTasks, summary.PendingTasks, summary.CompletionRate*100))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Check-in streak: %d days", summary.StreakDays))
	pdf.Ln(12)

	for _, goal := range goals {
		pdf.SetFont("Arial", "B", 14)
		header := goal.Title
		if goal.Status == "completed" {
			header += " (Completed)"
		} else {
			header += fmt.Sprintf(" (%s, %s)", goal.Status, formatPercent(goal.ProgressPercent))
		}
		pdf.MultiCell(0, 10, header, "", "", false)

		pdf.SetFont("Arial", "", 12)
		if len(goal.Milestones) == 0 {
			pdf.Cell(0, 8, "  - No roadmap generated.")
			pdf.Ln(8)
		}
		for _, milestone := range goal.Milestones {
			pdf.SetFont("Arial", "B", 12)
			pdf.Cell(0, 8, "  "+milestone.Title)
			pdf.Ln(7)
			pdf.SetFont("Arial", "", 12)
			for _, task := range milestone.Tasks {
				status := "[ ]"
				if task.Status == "done" {
					status = "[x]"
				}
				pdf.MultiCell(0, 7, fmt.Sprintf("    %s %s", status, task.Title), "", "", false)
			}
		}
		pdf.Ln(4)
	}

	if len(summary.WeeklyActivity) > 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "B", 14)
		pdf.Cell(0, 10, "Weekly activity")
		pdf.Ln(8)
		pdf.SetFont("Arial", "", 12)
		for _, w := range summary.WeeklyActivity {
			pdf.Cell(0, 7, fmt.Sprintf("  week of %s: %d tasks completed", w.WeekStart, w.Completed))
			pdf.Ln(6)
		}
	}

	dir := util.ReportsDir(config.AppName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create reports dir: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("progress_%s.pdf", time.Now().Format("2006-01-02")))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
