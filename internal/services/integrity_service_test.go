package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/SAP-F-2025/gradebook-service/internal/events"
	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

func TestIntegrityService_Profiles(t *testing.T) {
	ctx := context.Background()
	_, _, integrity, _ := newTestServices(t, models.NewStore())

	t.Run("create", func(t *testing.T) {
		profile, err := integrity.CreateProfile(ctx, &models.CreateProfileRequest{
			Email: "teacher@example.com",
			Name:  "Ms. Johnson",
			Role:  models.RoleTeacher,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if profile.ID == "" {
			t.Error("expected generated id")
		}
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		_, err := integrity.CreateProfile(ctx, &models.CreateProfileRequest{
			Email: "teacher@example.com",
			Name:  "Another",
			Role:  models.RoleStudent,
		})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("invalid email is rejected before the store is touched", func(t *testing.T) {
		_, err := integrity.CreateProfile(ctx, &models.CreateProfileRequest{
			Email: "not-an-email",
			Name:  "X",
			Role:  models.RoleStudent,
		})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestIntegrityService_DeleteClassCascades(t *testing.T) {
	ctx := context.Background()
	store := models.SeedStore()
	store.Attendance = []models.Attendance{
		{ID: "att1", ClassID: "class1", StudentID: "student1", Date: "2024-01-15", Status: models.AttendancePresent},
		{ID: "att2", ClassID: "class2", StudentID: "student1", Date: "2024-01-15", Status: models.AttendanceLate},
	}
	store.StudyMaterials = []models.StudyMaterial{
		{ID: "mat1", ClassID: "class1", Title: "Syllabus", URL: "https://example.com/syllabus.pdf"},
		{ID: "mat2", ClassID: "class2", Title: "Lab guide", URL: "https://example.com/labs.pdf"},
	}
	session, publisher := newTestSession(t, store)
	integrity := NewIntegrityService(session, testLogger(), validator.New())

	if err := integrity.DeleteClass(ctx, "class1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("class and direct dependents are gone", func(t *testing.T) {
		if store.ClassByID("class1") != nil {
			t.Error("class1 still present")
		}
		for _, e := range store.Enrollments {
			if e.ClassID == "class1" {
				t.Errorf("dangling enrollment %s", e.ID)
			}
		}
		for _, c := range store.Categories {
			if c.ClassID == "class1" {
				t.Errorf("dangling category %s", c.ID)
			}
		}
		for _, a := range store.Assignments {
			if a.ClassID == "class1" {
				t.Errorf("dangling assignment %s", a.ID)
			}
		}
		for _, a := range store.Attendance {
			if a.ClassID == "class1" {
				t.Errorf("dangling attendance %s", a.ID)
			}
		}
		for _, m := range store.StudyMaterials {
			if m.ClassID == "class1" {
				t.Errorf("dangling material %s", m.ID)
			}
		}
	})

	t.Run("grades of removed assignments are gone transitively", func(t *testing.T) {
		// Seed has 8 grades on class1 assignments and 4 on class2's.
		if len(store.Grades) != 4 {
			t.Fatalf("expected 4 remaining grades, got %d", len(store.Grades))
		}
		for _, g := range store.Grades {
			if a := store.AssignmentByID(g.AssignmentID); a == nil || a.ClassID != "class2" {
				t.Errorf("grade %s references removed assignment %s", g.ID, g.AssignmentID)
			}
		}
	})

	t.Run("other class is untouched", func(t *testing.T) {
		if store.ClassByID("class2") == nil {
			t.Fatal("class2 removed")
		}
		if len(store.Enrollments) != 2 || len(store.Categories) != 2 || len(store.Assignments) != 3 {
			t.Errorf("class2 data disturbed: %d enrollments, %d categories, %d assignments",
				len(store.Enrollments), len(store.Categories), len(store.Assignments))
		}
		if len(store.Attendance) != 1 || store.Attendance[0].ID != "att2" {
			t.Errorf("class2 attendance disturbed: %+v", store.Attendance)
		}
		if len(store.StudyMaterials) != 1 || store.StudyMaterials[0].ID != "mat2" {
			t.Errorf("class2 materials disturbed: %+v", store.StudyMaterials)
		}
	})

	t.Run("deletion was announced", func(t *testing.T) {
		evts := publisher.GetPublishedEvents()
		if len(evts) != 1 || evts[0].Type != events.TypeClassDeleted {
			t.Errorf("unexpected events: %+v", evts)
		}
	})

	t.Run("unknown class", func(t *testing.T) {
		if err := integrity.DeleteClass(ctx, "class1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestIntegrityService_DeleteCategory(t *testing.T) {
	ctx := context.Background()
	store := models.SeedStore()
	session, publisher := newTestSession(t, store)
	integrity := NewIntegrityService(session, testLogger(), validator.New())

	t.Run("rejected while assignments reference it", func(t *testing.T) {
		before, err := json.Marshal(store)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err = integrity.DeleteCategory(ctx, "cat1")
		if !errors.Is(err, ErrDependency) {
			t.Fatalf("expected dependency error, got %v", err)
		}

		var depErr *DependencyError
		if !errors.As(err, &depErr) || depErr.Dependents != 2 {
			t.Errorf("expected 2 dependents, got %+v", depErr)
		}

		after, err := json.Marshal(store)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !bytes.Equal(before, after) {
			t.Error("rejected delete changed the store")
		}
		if len(publisher.GetPublishedEvents()) != 0 {
			t.Error("rejected delete published an event")
		}
	})

	t.Run("allowed once assignments are gone", func(t *testing.T) {
		if err := integrity.DeleteAssignment(ctx, "assign1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := integrity.DeleteAssignment(ctx, "assign2"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := integrity.DeleteCategory(ctx, "cat1"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if store.CategoryByID("cat1") != nil {
			t.Error("category still present")
		}
	})
}

func TestIntegrityService_DeleteAssignment(t *testing.T) {
	ctx := context.Background()
	store := models.SeedStore()
	session, _ := newTestSession(t, store)
	integrity := NewIntegrityService(session, testLogger(), validator.New())

	if err := integrity.DeleteAssignment(ctx, "assign3"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if store.AssignmentByID("assign3") != nil {
		t.Error("assignment still present")
	}
	for _, g := range store.Grades {
		if g.AssignmentID == "assign3" {
			t.Errorf("dangling grade %s", g.ID)
		}
	}
	// grade6, grade7, grade8 were on assign3.
	if len(store.Grades) != 9 {
		t.Errorf("expected 9 remaining grades, got %d", len(store.Grades))
	}
}

func TestIntegrityService_CreateAssignment(t *testing.T) {
	ctx := context.Background()
	_, _, integrity, _ := newTestServices(t, models.SeedStore())

	t.Run("category of another class is rejected", func(t *testing.T) {
		_, err := integrity.CreateAssignment(ctx, "class1", &models.CreateAssignmentRequest{
			CategoryID: "cat3",
			Title:      "Lab 3",
			Points:     50,
		})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		_, err := integrity.CreateAssignment(ctx, "class1", &models.CreateAssignmentRequest{
			CategoryID: "ghost",
			Title:      "HW 3",
			Points:     10,
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})

	t.Run("zero points is rejected", func(t *testing.T) {
		_, err := integrity.CreateAssignment(ctx, "class1", &models.CreateAssignmentRequest{
			CategoryID: "cat1",
			Title:      "HW 3",
			Points:     0,
		})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})

	t.Run("valid assignment", func(t *testing.T) {
		assignment, err := integrity.CreateAssignment(ctx, "class1", &models.CreateAssignmentRequest{
			CategoryID: "cat1",
			Title:      "HW 3",
			Points:     10,
			DueDate:    "2024-02-05",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if assignment.ClassID != "class1" || assignment.CategoryID != "cat1" {
			t.Errorf("unexpected assignment: %+v", assignment)
		}
	})
}

func TestIntegrityService_RecordGrade(t *testing.T) {
	ctx := context.Background()
	store := models.SeedStore()
	_, grading, integrity, _ := newTestServices(t, store)

	t.Run("new grade row", func(t *testing.T) {
		grade, err := integrity.RecordGrade(ctx, &models.RecordGradeRequest{
			AssignmentID: "assign2",
			StudentID:    "student3",
			Score:        scorePtr(6),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if grade.Score == nil || *grade.Score != 6 {
			t.Errorf("unexpected grade: %+v", grade)
		}
	})

	t.Run("second record upserts instead of duplicating", func(t *testing.T) {
		before := len(store.Grades)
		_, err := integrity.RecordGrade(ctx, &models.RecordGradeRequest{
			AssignmentID: "assign2",
			StudentID:    "student3",
			Score:        scorePtr(8),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.Grades) != before {
			t.Errorf("grade row duplicated: %d -> %d", before, len(store.Grades))
		}
		if got := store.GradeFor("assign2", "student3").Score; got == nil || *got != 8 {
			t.Errorf("expected score 8, got %v", got)
		}
	})

	t.Run("nil score marks work ungraded again", func(t *testing.T) {
		_, err := integrity.RecordGrade(ctx, &models.RecordGradeRequest{
			AssignmentID: "assign3",
			StudentID:    "student1",
			Score:        nil,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// The test category drops out of student1's average entirely.
		resp, err := grading.WeightedAverage("student1", "class1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertPercent(t, resp.Percentage, 95.0)
	})

	t.Run("student not enrolled in the class", func(t *testing.T) {
		_, err := integrity.RecordGrade(ctx, &models.RecordGradeRequest{
			AssignmentID: "assign1",
			StudentID:    "student4",
			Score:        scorePtr(5),
		})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("teacher cannot receive a grade", func(t *testing.T) {
		_, err := integrity.RecordGrade(ctx, &models.RecordGradeRequest{
			AssignmentID: "assign1",
			StudentID:    "teacher1",
			Score:        scorePtr(5),
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestIntegrityService_MarkAttendance(t *testing.T) {
	ctx := context.Background()
	store := models.SeedStore()
	_, _, integrity, _ := newTestServices(t, store)

	t.Run("first mark creates a record", func(t *testing.T) {
		record, err := integrity.MarkAttendance(ctx, "class1", &models.RecordAttendanceRequest{
			StudentID: "student1",
			Date:      "2024-01-20",
			Status:    models.AttendancePresent,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Status != models.AttendancePresent {
			t.Errorf("unexpected record: %+v", record)
		}
	})

	t.Run("same day overwrites the status", func(t *testing.T) {
		record, err := integrity.MarkAttendance(ctx, "class1", &models.RecordAttendanceRequest{
			StudentID: "student1",
			Date:      "2024-01-20",
			Status:    models.AttendanceLate,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if record.Status != models.AttendanceLate {
			t.Errorf("expected late, got %q", record.Status)
		}
		if len(store.Attendance) != 1 {
			t.Errorf("expected 1 attendance record, got %d", len(store.Attendance))
		}
	})

	t.Run("another day is a separate record", func(t *testing.T) {
		_, err := integrity.MarkAttendance(ctx, "class1", &models.RecordAttendanceRequest{
			StudentID: "student1",
			Date:      "2024-01-21",
			Status:    models.AttendanceAbsent,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(store.Attendance) != 2 {
			t.Errorf("expected 2 attendance records, got %d", len(store.Attendance))
		}
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		_, err := integrity.MarkAttendance(ctx, "class1", &models.RecordAttendanceRequest{
			StudentID: "student1",
			Date:      "2024-01-22",
			Status:    "asleep",
		})
		if err == nil {
			t.Fatal("expected validation error")
		}
	})
}

func TestIntegrityService_UpdateCategoryWeight(t *testing.T) {
	ctx := context.Background()
	store := models.SeedStore()
	roster, _, integrity, _ := newTestServices(t, store)

	// Weights are advisory only: a sum far from 1.0 must be stored as-is and
	// merely flip the warning.
	weight := 5.0
	if _, err := integrity.UpdateCategory(ctx, "cat1", &models.UpdateCategoryRequest{Weight: &weight}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := store.CategoryByID("cat1").Weight; got != 5.0 {
		t.Errorf("weight clamped to %v", got)
	}

	summary, err := roster.WeightSummary("class1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !summary.Warning {
		t.Error("expected weight warning")
	}
	if summary.Sum != 5.5 {
		t.Errorf("expected sum 5.5, got %v", summary.Sum)
	}
}

func TestIntegrityService_ReplaceStore(t *testing.T) {
	ctx := context.Background()
	_, grading, integrity, _ := newTestServices(t, models.NewStore())

	if err := integrity.ReplaceStore(ctx, models.SeedStore()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The replacement is immediately visible to reads.
	resp, err := grading.WeightedAverage("student1", "class1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertPercent(t, resp.Percentage, 88.75)
}
