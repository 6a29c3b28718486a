package services

import (
	"log/slog"

	"github.com/SAP-F-2025/gradebook-service/internal/models"
	"github.com/SAP-F-2025/gradebook-service/internal/validator"
)

type gradingService struct {
	session   *Session
	logger    *slog.Logger
	validator *validator.Validator
}

func NewGradingService(session *Session, logger *slog.Logger, v *validator.Validator) GradingService {
	return &gradingService{
		session:   session,
		logger:    logger,
		validator: v,
	}
}

func (s *gradingService) WeightedAverage(studentID, classID string) (*AverageResponse, error) {
	resp := &AverageResponse{StudentID: studentID, ClassID: classID}
	err := s.session.View(func(store *models.Store) error {
		resp.Percentage = WeightedAverage(store, studentID, classID, RecordedScores(store))
		resp.Letter = LetterGrade(resp.Percentage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (s *gradingService) ClassAverage(classID string) (*ClassAverageResponse, error) {
	resp := &ClassAverageResponse{ClassID: classID}
	err := s.session.View(func(store *models.Store) error {
		resp.Percentage = ClassAverage(store, classID, RecordedScores(store))
		resp.Letter = LetterGrade(resp.Percentage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Estimate recomputes the weighted average with hypothetical scores layered
// over the recorded ones. Nothing is persisted.
func (s *gradingService) Estimate(studentID, classID string, req *models.EstimateRequest) (*AverageResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	resp := &AverageResponse{StudentID: studentID, ClassID: classID, Estimated: true}
	err := s.session.View(func(store *models.Store) error {
		scores := WithOverrides(RecordedScores(store), req.Overrides)
		resp.Percentage = WeightedAverage(store, studentID, classID, scores)
		resp.Letter = LetterGrade(resp.Percentage)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Gradebook assembles the full class view: every enrolled student's raw
// scores per assignment plus computed aggregates and the weight advisory.
func (s *gradingService) Gradebook(classID string) (*GradebookResponse, error) {
	var resp GradebookResponse
	err := s.session.View(func(store *models.Store) error {
		class := store.ClassByID(classID)
		if class == nil {
			return NewNotFoundError("class", classID)
		}

		scores := RecordedScores(store)
		resp.Class = *class
		resp.Categories = categoriesInClass(store, classID)
		resp.Assignments = assignmentsInClass(store, classID)
		resp.Weights = weightSummary(store, classID)
		resp.Average = ClassAverage(store, classID, scores)

		for _, student := range studentsInClass(store, classID) {
			row := GradebookRow{
				Student: student,
				Scores:  make(map[string]*float64, len(resp.Assignments)),
			}
			for _, assignment := range resp.Assignments {
				row.Scores[assignment.ID] = scores(assignment.ID, student.ID)
			}
			row.Percentage = WeightedAverage(store, student.ID, classID, scores)
			row.Letter = LetterGrade(row.Percentage)
			resp.Rows = append(resp.Rows, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// StudentSummary lists every class the student is enrolled in with the
// current aggregate, in enrollment insertion order.
func (s *gradingService) StudentSummary(studentID string) ([]StudentClassSummary, error) {
	var summaries []StudentClassSummary
	err := s.session.View(func(store *models.Store) error {
		if store.ProfileByID(studentID) == nil {
			return NewNotFoundError("profile", studentID)
		}

		scores := RecordedScores(store)
		for _, enrollment := range store.Enrollments {
			if enrollment.StudentID != studentID {
				continue
			}
			class := store.ClassByID(enrollment.ClassID)
			if class == nil {
				continue
			}
			percentage := WeightedAverage(store, studentID, class.ID, scores)
			summaries = append(summaries, StudentClassSummary{
				Class:      *class,
				Percentage: percentage,
				Letter:     LetterGrade(percentage),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return summaries, nil
}
