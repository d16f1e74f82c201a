package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/repository"
	"alcyxob/run-trainer/internal/schedule"
	"alcyxob/run-trainer/internal/storage"
)

const (
	// MaxScheduleBytes bounds both raw text imports and stored documents.
	MaxScheduleBytes    = 1 << 20
	scheduleContentType = "text/plain"
)

var ErrStorageUnavailable = errors.New("document storage is not configured")

// WorkoutCreator materializes one workout and returns its id.
type WorkoutCreator interface {
	CreateForPlan(ctx context.Context, workout *domain.Workout) (string, error)
}

// ImportOptions tune one import. Zero values fall back to the plan's start
// date and the configured distance unit.
type ImportOptions struct {
	StartDate *time.Time
	Unit      domain.DistanceUnit
}

type ImportService interface {
	ImportText(ctx context.Context, actor Actor, planID, text string, opts ImportOptions) (*domain.ImportOutcome, error)
	ImportDocument(ctx context.Context, actor Actor, planID, objectKey string, opts ImportOptions) (*domain.ImportOutcome, error)
	CreateDocumentUploadURL(ctx context.Context, actor Actor, planID string) (*domain.ScheduleDocument, error)
}

type importService struct {
	planRepo    repository.TrainingPlanRepository
	creator     WorkoutCreator
	files       storage.FileStorage // nil when object storage is not configured
	defaultUnit domain.DistanceUnit
	log         *logrus.Logger
}

func NewImportService(
	planRepo repository.TrainingPlanRepository,
	creator WorkoutCreator,
	files storage.FileStorage,
	defaultUnit domain.DistanceUnit,
	log *logrus.Logger,
) ImportService {
	if defaultUnit == "" {
		defaultUnit = domain.UnitMiles
	}
	return &importService{
		planRepo:    planRepo,
		creator:     creator,
		files:       files,
		defaultUnit: defaultUnit,
		log:         log,
	}
}

func (s *importService) ImportText(ctx context.Context, actor Actor, planID, text string, opts ImportOptions) (*domain.ImportOutcome, error) {
	if len(text) > MaxScheduleBytes {
		return nil, invalid("text", "schedule exceeds %d bytes", MaxScheduleBytes)
	}
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, true)
	if err != nil {
		return nil, err
	}
	return s.run(ctx, plan, text, opts)
}

func (s *importService) ImportDocument(ctx context.Context, actor Actor, planID, objectKey string, opts ImportOptions) (*domain.ImportOutcome, error) {
	// 1. Authorize against the plan before touching storage
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, true)
	if err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, ErrStorageUnavailable
	}
	if !documentKeyBelongsTo(objectKey, plan.ID) {
		return nil, invalid("objectKey", "does not belong to this plan")
	}

	// 2. Fetch the extracted text
	data, err := s.files.GetObject(ctx, objectKey, MaxScheduleBytes)
	switch {
	case errors.Is(err, storage.ErrObjectNotFound):
		return nil, ErrDocumentNotFound
	case errors.Is(err, storage.ErrObjectTooLarge):
		return nil, invalid("objectKey", "schedule exceeds %d bytes", MaxScheduleBytes)
	case err != nil:
		return nil, fmt.Errorf("fetch schedule document: %w", err)
	}

	return s.run(ctx, plan, string(data), opts)
}

func (s *importService) CreateDocumentUploadURL(ctx context.Context, actor Actor, planID string) (*domain.ScheduleDocument, error) {
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, true)
	if err != nil {
		return nil, err
	}
	if s.files == nil {
		return nil, ErrStorageUnavailable
	}

	key := documentPrefix(plan.ID) + uuid.NewString() + ".txt"
	url, err := s.files.GeneratePresignedUploadURL(ctx, key, scheduleContentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign schedule upload: %w", err)
	}
	return &domain.ScheduleDocument{
		PlanID:      plan.ID,
		ObjectKey:   key,
		ContentType: scheduleContentType,
		UploadURL:   url,
		ExpiresAt:   time.Now().UTC().Add(storage.DefaultPresignedURLExpiry),
	}, nil
}

func (s *importService) run(ctx context.Context, plan *domain.TrainingPlan, text string, opts ImportOptions) (*domain.ImportOutcome, error) {
	start := plan.StartDate
	if opts.StartDate != nil {
		start = *opts.StartDate
	}
	unit := opts.Unit
	if unit == "" {
		unit = s.defaultUnit
	}
	unit, err := domain.ParseDistanceUnit(string(unit))
	if err != nil {
		return nil, invalid("unit", "must be mi or km")
	}

	doc := schedule.ParseDocument(text)
	outcome := ImportLines(ctx, s.creator, plan.ID, start, unit, doc)

	s.log.WithFields(logrus.Fields{
		"plan_id":  plan.ID,
		"accepted": doc.Accepted,
		"rejected": doc.Rejected,
		"created":  outcome.CreatedCount,
		"failed":   outcome.FailedCount,
	}).Info("schedule imported")
	return outcome, nil
}

// ImportLines materializes every row of a parsed document through creator.
// It is best effort: a row that is rejected or fails to persist is recorded
// and the next row is attempted. CreatedCount + FailedCount always equals
// doc.Accepted + doc.Rejected. An unknown unit rejects every row.
func ImportLines(ctx context.Context, creator WorkoutCreator, planID string, start time.Time, unit domain.DistanceUnit, doc *schedule.Document) *domain.ImportOutcome {
	outcome := &domain.ImportOutcome{
		PlanID:            planID,
		CreatedWorkoutIDs: []string{},
		Rows:              []domain.RowOutcome{},
	}
	cal := schedule.NewCalendar(start)
	unit, unitErr := domain.ParseDistanceUnit(string(unit))

	for _, line := range doc.Lines {
		switch line.Kind {
		case schedule.LineRejected:
			outcome.RecordRejected(line.LineNo, line.Reason())
			continue
		case schedule.LineRow:
		default:
			continue
		}

		if unitErr != nil {
			outcome.RecordRejected(line.LineNo, unitErr.Error())
			continue
		}
		workout, err := workoutFromRow(planID, line.Row, cal, unit)
		if err != nil {
			outcome.RecordRejected(line.LineNo, err.Error())
			continue
		}
		id, err := creator.CreateForPlan(ctx, workout)
		if err != nil {
			outcome.RecordFailed(line.LineNo, err.Error())
			continue
		}
		outcome.RecordCreated(line.LineNo, id)
	}
	return outcome
}

// workoutFromRow maps a parsed row onto a workout in miles and seconds per mile.
func workoutFromRow(planID string, row *schedule.Row, cal schedule.Calendar, unit domain.DistanceUnit) (*domain.Workout, error) {
	wt, err := schedule.MapImportType(row.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, row.Type)
	}

	workout := &domain.Workout{
		TrainingPlanID: planID,
		Name:           fmt.Sprintf("Week %d %s %s", row.Week, row.Day, row.Type),
		WorkoutType:    wt,
		ScheduledDate:  cal.Date(row.Week, row.Day),
	}
	if row.IsRest() {
		workout.WorkoutType = domain.WorkoutTypeRest
		return workout, nil
	}

	workout.PlannedDistance = domain.Round2(unit.ToMiles(row.Distance))
	if row.Pace != nil {
		lo := unit.PaceToPerMile(row.Pace.Min)
		hi := unit.PaceToPerMile(row.Pace.Max)
		workout.TargetPaceMin = &lo
		workout.TargetPaceMax = &hi
	}
	return workout, nil
}

func documentPrefix(planID string) string {
	return "plans/" + planID + "/"
}

func documentKeyBelongsTo(key, planID string) bool {
	if key == "" || path.Clean(key) != key {
		return false
	}
	return strings.HasPrefix(key, documentPrefix(planID)) && len(key) > len(documentPrefix(planID))
}
