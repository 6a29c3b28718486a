package services

import (
	"github.com/SAP-F-2025/gradebook-service/internal/models"
)

// ScoreLookup resolves the score a student has on an assignment. A nil result
// is the ungraded marker. The weighted-average algorithm is parameterized on
// this so the estimator can substitute hypothetical scores without touching
// the persisted grades.
type ScoreLookup func(assignmentID, studentID string) *float64

// RecordedScores looks scores up in the store's grade collection. Both a
// missing grade row and a row holding the explicit ungraded marker resolve
// to nil.
func RecordedScores(store *models.Store) ScoreLookup {
	return func(assignmentID, studentID string) *float64 {
		grade := store.GradeFor(assignmentID, studentID)
		if grade == nil {
			return nil
		}
		return grade.Score
	}
}

// WithOverrides layers hypothetical scores (keyed by assignment id) over a
// base lookup, falling back to the base where no override is present.
func WithOverrides(base ScoreLookup, overrides map[string]float64) ScoreLookup {
	return func(assignmentID, studentID string) *float64 {
		if v, ok := overrides[assignmentID]; ok {
			score := v
			return &score
		}
		return base(assignmentID, studentID)
	}
}

// WeightedAverage computes the student's percentage in a class. Per category:
// sum the scored points and the possible points of only the assignments that
// contributed a score; a category with no graded work is excluded from both
// the weighted sum and the weight denominator, so it neither counts as 0% nor
// dilutes the rest. A nil result is the "undefined" sentinel — no category
// had graded work. Because grading a first assignment in a category grows the
// weight denominator, the average is deliberately not monotonic under partial
// grading.
func WeightedAverage(store *models.Store, studentID, classID string, scores ScoreLookup) *float64 {
	categories := categoriesInClass(store, classID)
	assignments := assignmentsInClass(store, classID)

	var weightedSum, weightTotal float64

	for _, category := range categories {
		var earned, possible float64
		hasGrades := false

		for _, assignment := range assignments {
			if assignment.CategoryID != category.ID {
				continue
			}
			score := scores(assignment.ID, studentID)
			if score == nil {
				continue
			}
			earned += *score
			possible += assignment.Points
			hasGrades = true
		}

		if !hasGrades || possible <= 0 {
			continue
		}

		categoryPercent := earned / possible
		weightedSum += categoryPercent * category.Weight
		weightTotal += category.Weight
	}

	if weightTotal == 0 {
		return nil
	}

	percent := (weightedSum / weightTotal) * 100
	return &percent
}

// LetterPlaceholder is rendered for the undefined average.
const LetterPlaceholder = "-"

// LetterGrade maps a percentage to a letter. Band lower bounds are inclusive
// and the raw value is compared without rounding, so 89.999 is a B.
func LetterGrade(percent *float64) string {
	if percent == nil {
		return LetterPlaceholder
	}
	switch {
	case *percent >= 90:
		return "A"
	case *percent >= 80:
		return "B"
	case *percent >= 70:
		return "C"
	case *percent >= 60:
		return "D"
	default:
		return "F"
	}
}

// ClassAverage is the arithmetic mean of the defined per-student averages in
// a class; nil when no student has one.
func ClassAverage(store *models.Store, classID string, scores ScoreLookup) *float64 {
	students := studentsInClass(store, classID)
	if len(students) == 0 {
		return nil
	}

	var sum float64
	count := 0
	for _, student := range students {
		if avg := WeightedAverage(store, student.ID, classID, scores); avg != nil {
			sum += *avg
			count++
		}
	}
	if count == 0 {
		return nil
	}

	mean := sum / float64(count)
	return &mean
}
