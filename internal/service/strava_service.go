package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"alcyxob/run-trainer/internal/repository"
	"alcyxob/run-trainer/internal/strava"
)

var (
	ErrStravaDisabled     = errors.New("strava integration is not configured")
	ErrStravaNotConnected = errors.New("strava account is not connected")
	ErrStravaState        = errors.New("strava authorization state mismatch")
)

// ActivityClient is the part of the Strava API the sync needs.
type ActivityClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	RecentRuns(ctx context.Context, token *oauth2.Token, after time.Time) ([]strava.Activity, *oauth2.Token, error)
}

// SyncOutcome reports one Strava sync.
type SyncOutcome struct {
	PlanID   string   `json:"planId"`
	Fetched  int      `json:"fetched"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"` // already imported, or outside the plan window
	Failed   int      `json:"failed"`
	RunIDs   []string `json:"runIds"`
}

type StravaService interface {
	AuthURL(ctx context.Context, actor Actor) (string, error)
	Authorize(ctx context.Context, actor Actor, code, state string) error
	Sync(ctx context.Context, actor Actor, planID string) (*SyncOutcome, error)
}

type stravaService struct {
	client   ActivityClient // nil when Strava is not configured
	tokens   strava.TokenStore
	planRepo repository.TrainingPlanRepository
	runs     RunService
	log      *logrus.Logger

	mu     sync.Mutex
	states map[string]string // userID -> pending OAuth state
}

func NewStravaService(
	client ActivityClient,
	tokens strava.TokenStore,
	planRepo repository.TrainingPlanRepository,
	runs RunService,
	log *logrus.Logger,
) StravaService {
	return &stravaService{
		client:   client,
		tokens:   tokens,
		planRepo: planRepo,
		runs:     runs,
		log:      log,
		states:   make(map[string]string),
	}
}

func (s *stravaService) AuthURL(_ context.Context, actor Actor) (string, error) {
	if s.client == nil {
		return "", ErrStravaDisabled
	}
	state := uuid.NewString()
	s.mu.Lock()
	s.states[actor.UserID] = state
	s.mu.Unlock()
	return s.client.AuthCodeURL(state), nil
}

func (s *stravaService) Authorize(ctx context.Context, actor Actor, code, state string) error {
	if s.client == nil {
		return ErrStravaDisabled
	}
	if strings.TrimSpace(code) == "" {
		return invalid("code", "is required")
	}

	// 1. The state must be the one handed out for this user; it is single use.
	s.mu.Lock()
	want, ok := s.states[actor.UserID]
	delete(s.states, actor.UserID)
	s.mu.Unlock()
	if !ok || want != state {
		return ErrStravaState
	}

	// 2. Exchange and store
	token, err := s.client.Exchange(ctx, code)
	if err != nil {
		return err
	}
	if err := s.tokens.Save(ctx, actor.UserID, token); err != nil {
		return err
	}
	s.log.WithField("user_id", actor.UserID).Info("strava account connected")
	return nil
}

func (s *stravaService) Sync(ctx context.Context, actor Actor, planID string) (*SyncOutcome, error) {
	if s.client == nil {
		return nil, ErrStravaDisabled
	}

	// 1. Authorize and load the token
	plan, err := loadPlan(ctx, s.planRepo, actor, planID, true)
	if err != nil {
		return nil, err
	}
	token, err := s.tokens.Get(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, strava.ErrNoToken) {
			return nil, ErrStravaNotConnected
		}
		return nil, err
	}

	// 2. Fetch runs since the plan started, keeping the refreshed token
	activities, fresh, err := s.client.RecentRuns(ctx, token, plan.StartDate)
	if err != nil {
		return nil, err
	}
	if err := s.tokens.Save(ctx, actor.UserID, fresh); err != nil {
		return nil, err
	}

	// 3. Create runs; duplicates of earlier syncs are skipped
	outcome := &SyncOutcome{PlanID: plan.ID, Fetched: len(activities), RunIDs: []string{}}
	for _, a := range activities {
		logger := s.log.WithFields(logrus.Fields{"plan_id": plan.ID, "activity_id": a.ID})

		run, err := a.ToRun(plan.ID)
		if err != nil {
			logger.WithError(err).Warn("skipping strava activity")
			outcome.Failed++
			continue
		}
		if run.Date.Before(plan.StartDate) || run.Date.After(plan.EndDate) {
			outcome.Skipped++
			continue
		}
		id, err := s.runs.CreateForPlan(ctx, run)
		switch {
		case errors.Is(err, ErrDuplicateRun):
			outcome.Skipped++
		case err != nil:
			logger.WithError(err).Warn("failed to import strava activity")
			outcome.Failed++
		default:
			outcome.Imported++
			outcome.RunIDs = append(outcome.RunIDs, id)
		}
	}

	s.log.WithFields(logrus.Fields{
		"plan_id":  plan.ID,
		"fetched":  outcome.Fetched,
		"imported": outcome.Imported,
		"skipped":  outcome.Skipped,
		"failed":   outcome.Failed,
	}).Info("strava sync finished")
	return outcome, nil
}

var _ ActivityClient = (*strava.Client)(nil)
