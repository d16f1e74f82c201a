package api

import (
	"time"

	"alcyxob/run-trainer/internal/adherence"
	"alcyxob/run-trainer/internal/domain"
)

// --- Users ---

// UserResponse excludes sensitive info like password hash
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"createdAt"`
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

// --- Plans ---

type CreatePlanRequest struct {
	Name        string            `json:"name" binding:"required,max=255"`
	Description string            `json:"description"`
	StartDate   string            `json:"startDate" binding:"required,calendardate"`
	EndDate     string            `json:"endDate" binding:"required,calendardate"`
	Status      domain.PlanStatus `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE COMPLETED ABANDONED"`
}

type UpdatePlanRequest struct {
	Name        *string            `json:"name" binding:"omitempty,max=255"`
	Description *string            `json:"description"`
	StartDate   *string            `json:"startDate" binding:"omitempty,calendardate"`
	EndDate     *string            `json:"endDate" binding:"omitempty,calendardate"`
	Status      *domain.PlanStatus `json:"status" binding:"omitempty,oneof=DRAFT ACTIVE COMPLETED ABANDONED"`
}

type ListPlansQuery struct {
	Skip  int `form:"skip" binding:"gte=0"`
	Limit int `form:"limit" binding:"gte=0,lte=100"`
}

type PlanResponse struct {
	ID            string            `json:"id"`
	OwnerID       string            `json:"ownerId"`
	Name          string            `json:"name"`
	Description   string            `json:"description,omitempty"`
	StartDate     string            `json:"startDate"`
	EndDate       string            `json:"endDate"`
	Status        domain.PlanStatus `json:"status"`
	DurationWeeks int               `json:"durationWeeks"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func MapPlanToResponse(p *domain.TrainingPlan) PlanResponse {
	return PlanResponse{
		ID:            p.ID,
		OwnerID:       p.OwnerID,
		Name:          p.Name,
		Description:   p.Description,
		StartDate:     formatDate(p.StartDate),
		EndDate:       formatDate(p.EndDate),
		Status:        p.Status,
		DurationWeeks: p.DurationWeeks(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// --- Workouts ---

type CreateWorkoutRequest struct {
	Name            string             `json:"name" binding:"required,max=255"`
	WorkoutType     domain.WorkoutType `json:"workoutType" binding:"required,oneof=EASY TEMPO LONG SPEED RECOVERY CROSS_TRAINING REST"`
	PlannedDistance float64            `json:"plannedDistance" binding:"gte=0,lte=100"`
	TargetPaceMin   *int               `json:"targetPaceMin" binding:"omitempty,pace"`
	TargetPaceMax   *int               `json:"targetPaceMax" binding:"omitempty,pace"`
	ScheduledDate   string             `json:"scheduledDate" binding:"required,calendardate"`
	Notes           string             `json:"notes"`
}

type UpdateWorkoutRequest struct {
	Name            *string             `json:"name" binding:"omitempty,max=255"`
	WorkoutType     *domain.WorkoutType `json:"workoutType" binding:"omitempty,oneof=EASY TEMPO LONG SPEED RECOVERY CROSS_TRAINING REST"`
	PlannedDistance *float64            `json:"plannedDistance" binding:"omitempty,gte=0,lte=100"`
	TargetPaceMin   *int                `json:"targetPaceMin" binding:"omitempty,pace"`
	TargetPaceMax   *int                `json:"targetPaceMax" binding:"omitempty,pace"`
	ClearTargetPace bool                `json:"clearTargetPace"`
	ScheduledDate   *string             `json:"scheduledDate" binding:"omitempty,calendardate"`
	Notes           *string             `json:"notes"`
}

type WorkoutResponse struct {
	ID              string             `json:"id"`
	TrainingPlanID  string             `json:"trainingPlanId"`
	Name            string             `json:"name"`
	WorkoutType     domain.WorkoutType `json:"workoutType"`
	PlannedDistance float64            `json:"plannedDistance"`
	TargetPaceMin   *int               `json:"targetPaceMin,omitempty"`
	TargetPaceMax   *int               `json:"targetPaceMax,omitempty"`
	TargetPace      string             `json:"targetPace,omitempty"`
	ScheduledDate   string             `json:"scheduledDate"`
	Notes           string             `json:"notes,omitempty"`
	CreatedAt       time.Time          `json:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt"`
}

func MapWorkoutToResponse(w *domain.Workout) WorkoutResponse {
	return WorkoutResponse{
		ID:              w.ID,
		TrainingPlanID:  w.TrainingPlanID,
		Name:            w.Name,
		WorkoutType:     w.WorkoutType,
		PlannedDistance: w.PlannedDistance,
		TargetPaceMin:   w.TargetPaceMin,
		TargetPaceMax:   w.TargetPaceMax,
		TargetPace:      w.PaceRangeString(),
		ScheduledDate:   formatDate(w.ScheduledDate),
		Notes:           w.Notes,
		CreatedAt:       w.CreatedAt,
		UpdatedAt:       w.UpdatedAt,
	}
}

func mapWorkouts(ws []domain.Workout) []WorkoutResponse {
	out := make([]WorkoutResponse, len(ws))
	for i := range ws {
		out[i] = MapWorkoutToResponse(&ws[i])
	}
	return out
}

// --- Runs ---

type CreateRunRequest struct {
	WorkoutID *string `json:"workoutId" binding:"omitempty,min=1"`
	Distance  float64 `json:"distance" binding:"required,gt=0,lte=100"`
	Pace      int     `json:"pace" binding:"required,pace"`
	Date      string  `json:"date" binding:"required,calendardate"`
	Notes     string  `json:"notes"`
}

type UpdateRunRequest struct {
	WorkoutID     *string  `json:"workoutId" binding:"omitempty,min=1"`
	UnlinkWorkout bool     `json:"unlinkWorkout"`
	Distance      *float64 `json:"distance" binding:"omitempty,gt=0,lte=100"`
	Pace          *int     `json:"pace" binding:"omitempty,pace"`
	Date          *string  `json:"date" binding:"omitempty,calendardate"`
	Notes         *string  `json:"notes"`
}

type RunResponse struct {
	ID               string           `json:"id"`
	PlanID           string           `json:"planId"`
	WorkoutID        *string          `json:"workoutId,omitempty"`
	Distance         float64          `json:"distance"`
	Pace             int              `json:"pace"`
	PaceFormatted    string           `json:"paceFormatted"`
	TotalTimeMinutes float64          `json:"totalTimeMinutes"`
	Date             string           `json:"date"`
	Source           domain.RunSource `json:"source"`
	Notes            string           `json:"notes,omitempty"`
	ExternalID       *string          `json:"externalId,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

func MapRunToResponse(r *domain.Run) RunResponse {
	return RunResponse{
		ID:               r.ID,
		PlanID:           r.PlanID,
		WorkoutID:        r.WorkoutID,
		Distance:         r.Distance,
		Pace:             r.Pace,
		PaceFormatted:    r.PaceString(),
		TotalTimeMinutes: domain.Round2(r.TotalTimeMinutes()),
		Date:             formatDate(r.Date),
		Source:           r.Source,
		Notes:            r.Notes,
		ExternalID:       r.ExternalID,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

func mapRuns(rs []domain.Run) []RunResponse {
	out := make([]RunResponse, len(rs))
	for i := range rs {
		out[i] = MapRunToResponse(&rs[i])
	}
	return out
}

// --- Import ---

// ImportTextRequest is the JSON form of a text import. Plain text bodies take
// the same options from the query string.
type ImportTextRequest struct {
	Text      string `json:"text" binding:"required"`
	StartDate string `json:"startDate" binding:"omitempty,calendardate"`
	Unit      string `json:"unit" binding:"omitempty,oneof=mi km"`
}

type ImportQuery struct {
	StartDate string `form:"start_date" binding:"omitempty,calendardate"`
	Unit      string `form:"unit" binding:"omitempty,oneof=mi km"`
}

type ImportDocumentRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
	StartDate string `json:"startDate" binding:"omitempty,calendardate"`
	Unit      string `json:"unit" binding:"omitempty,oneof=mi km"`
}

// --- Analytics ---

type ProgressResponse struct {
	PlanID               string  `json:"planId"`
	TotalWorkouts        int     `json:"totalWorkouts"`
	NonRestWorkouts      int     `json:"nonRestWorkouts"`
	CompletedWorkouts    int     `json:"completedWorkouts"`
	PendingWorkouts      int     `json:"pendingWorkouts"`
	AdherencePercent     float64 `json:"adherencePercent"`
	TotalPlannedDistance float64 `json:"totalPlannedDistance"`
	TotalActualDistance  float64 `json:"totalActualDistance"`
	DaysWithActivity     int     `json:"daysWithActivity"`
}

func MapProgressToResponse(planID string, p *adherence.Progress) ProgressResponse {
	return ProgressResponse{
		PlanID:               planID,
		TotalWorkouts:        p.TotalWorkouts,
		NonRestWorkouts:      p.NonRestWorkouts,
		CompletedWorkouts:    p.CompletedWorkouts,
		PendingWorkouts:      p.PendingWorkouts,
		AdherencePercent:     p.AdherencePercent,
		TotalPlannedDistance: p.TotalPlannedDistance,
		TotalActualDistance:  p.TotalActualDistance,
		DaysWithActivity:     p.DaysWithActivity,
	}
}

type WeeklySummaryResponse struct {
	PlanID          string        `json:"planId"`
	WeekNumber      int           `json:"weekNumber"`
	StartDate       string        `json:"startDate"`
	EndDate         string        `json:"endDate"`
	TotalDistance   float64       `json:"totalDistance"`
	RunCount        int           `json:"runCount"`
	PlannedDistance float64       `json:"plannedDistance"`
	PlannedWorkouts int           `json:"plannedWorkouts"`
	Runs            []RunResponse `json:"runs"`
}

func MapWeeklySummaryToResponse(planID string, s *adherence.WeeklySummary) WeeklySummaryResponse {
	return WeeklySummaryResponse{
		PlanID:          planID,
		WeekNumber:      s.WeekNumber,
		StartDate:       formatDate(s.StartDate),
		EndDate:         formatDate(s.EndDate),
		TotalDistance:   s.TotalDistance,
		RunCount:        s.RunCount,
		PlannedDistance: s.PlannedDistance,
		PlannedWorkouts: s.PlannedWorkouts,
		Runs:            mapRuns(s.Runs),
	}
}

// --- Strava ---

type StravaAuthURLResponse struct {
	URL string `json:"url"`
}

type StravaAuthorizeRequest struct {
	Code  string `json:"code" binding:"required"`
	State string `json:"state" binding:"required"`
}

func formatDate(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// parseDate converts a value already checked by the calendardate tag.
func parseDate(s string) time.Time {
	t, _ := domain.ParseDate(s)
	return t
}

func parseOptionalDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t := parseDate(*s)
	return &t
}
