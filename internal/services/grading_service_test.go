package services

import (
	"errors"
	"testing"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

func TestGradingService_WeightedAverage(t *testing.T) {
	_, grading, _, _ := newTestServices(t, models.SeedStore())

	t.Run("defined average with letter", func(t *testing.T) {
		resp, err := grading.WeightedAverage("student1", "class1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertPercent(t, resp.Percentage, 88.75)
		if resp.Letter != "B" {
			t.Errorf("expected letter B, got %q", resp.Letter)
		}
	})

	t.Run("undefined average renders placeholder", func(t *testing.T) {
		resp, err := grading.WeightedAverage("student4", "class1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertUndefined(t, resp.Percentage)
		if resp.Letter != LetterPlaceholder {
			t.Errorf("expected placeholder letter, got %q", resp.Letter)
		}
	})
}

func TestGradingService_Estimate(t *testing.T) {
	_, grading, _, _ := newTestServices(t, models.SeedStore())

	t.Run("overrides change the result without persisting", func(t *testing.T) {
		resp, err := grading.Estimate("student1", "class1", &models.EstimateRequest{
			Overrides: map[string]float64{"assign3": 100},
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !resp.Estimated {
			t.Error("expected estimated flag")
		}
		// Homework 19/20 at 0.3, Tests 100/100 at 0.5.
		assertPercent(t, resp.Percentage, 98.125)

		recorded, err := grading.WeightedAverage("student1", "class1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertPercent(t, recorded.Percentage, 88.75)
	})

	t.Run("missing overrides map is rejected", func(t *testing.T) {
		if _, err := grading.Estimate("student1", "class1", &models.EstimateRequest{}); err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestGradingService_Gradebook(t *testing.T) {
	_, grading, _, _ := newTestServices(t, models.SeedStore())

	t.Run("unknown class", func(t *testing.T) {
		if _, err := grading.Gradebook("nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("full class view", func(t *testing.T) {
		resp, err := grading.Gradebook("class1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if resp.Class.ID != "class1" {
			t.Errorf("wrong class: %q", resp.Class.ID)
		}
		if len(resp.Rows) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(resp.Rows))
		}
		if !resp.Weights.Warning {
			t.Error("expected weight warning for class1 (weights sum to 0.8)")
		}
		assertPercent(t, resp.Average, 86.875)

		// Rows follow enrollment order; scores are keyed by assignment.
		first := resp.Rows[0]
		if first.Student.ID != "student1" {
			t.Errorf("expected student1 first, got %q", first.Student.ID)
		}
		if got := first.Scores["assign1"]; got == nil || *got != 9 {
			t.Errorf("expected score 9 on assign1, got %v", got)
		}
		assertPercent(t, first.Percentage, 88.75)
	})

	t.Run("ungraded cells are nil", func(t *testing.T) {
		resp, err := grading.Gradebook("class1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		// student3 has no grade on assign2.
		if got := resp.Rows[2].Scores["assign2"]; got != nil {
			t.Errorf("expected nil score, got %v", *got)
		}
	})
}

func TestGradingService_StudentSummary(t *testing.T) {
	_, grading, _, _ := newTestServices(t, models.SeedStore())

	t.Run("unknown student", func(t *testing.T) {
		if _, err := grading.StudentSummary("nope"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("one line per enrolled class", func(t *testing.T) {
		summaries, err := grading.StudentSummary("student1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summaries) != 2 {
			t.Fatalf("expected 2 summaries, got %d", len(summaries))
		}
		if summaries[0].Class.ID != "class1" || summaries[1].Class.ID != "class2" {
			t.Errorf("unexpected class order: %q, %q", summaries[0].Class.ID, summaries[1].Class.ID)
		}
		assertPercent(t, summaries[0].Percentage, 88.75)
		assertPercent(t, summaries[1].Percentage, 92.0)
	})

	t.Run("enrollment into deleted class is skipped", func(t *testing.T) {
		store := models.SeedStore()
		store.Enrollments = append(store.Enrollments, models.Enrollment{
			ID: "dangling", StudentID: "student2", ClassID: "ghost",
		})
		_, grading, _, _ := newTestServices(t, store)

		summaries, err := grading.StudentSummary("student2")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(summaries) != 1 {
			t.Fatalf("expected 1 summary, got %d", len(summaries))
		}
	})
}
