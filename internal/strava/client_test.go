package strava

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"alcyxob/run-trainer/internal/config"
	"alcyxob/run-trainer/internal/domain"
	"alcyxob/run-trainer/internal/logging"
)

func newTestServer(t *testing.T, activities []Activity) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  "access-" + r.PostForm.Get("grant_type"),
			"refresh_token": "refresh-2",
			"token_type":    "Bearer",
			"expires_in":    3600,
		})
	})
	mux.HandleFunc("/api/v3/athlete/activities", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
		w.Header().Set("Content-Type", "application/json")
		start := (page - 1) * perPage
		if page < 1 || perPage < 1 || start >= len(activities) {
			w.Write([]byte("[]"))
			return
		}
		end := min(start+perPage, len(activities))
		json.NewEncoder(w).Encode(activities[start:end])
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(config.StravaConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost/callback",
		AuthURL:      srv.URL + "/oauth/authorize",
		TokenURL:     srv.URL + "/oauth/token",
		APIBaseURL:   srv.URL + "/api/v3",
	}, srv.Client(), logging.Discard())
}

func TestClient_AuthCodeURL(t *testing.T) {
	srv := newTestServer(t, nil)
	raw := newTestClient(srv).AuthCodeURL("state-1")

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "/oauth/authorize", u.Path)
	assert.Equal(t, "state-1", u.Query().Get("state"))
	assert.Equal(t, "activity:read", u.Query().Get("scope"))
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
}

func TestClient_Exchange(t *testing.T) {
	srv := newTestServer(t, nil)
	tok, err := newTestClient(srv).Exchange(context.Background(), "code-1")
	require.NoError(t, err)
	assert.Equal(t, "access-authorization_code", tok.AccessToken)
	assert.Equal(t, "refresh-2", tok.RefreshToken)
}

func TestClient_RecentRuns(t *testing.T) {
	activities := []Activity{
		{ID: 1, Type: "Run", Distance: 8046.72, MovingTime: 2400, StartDateLocal: "2024-03-05T06:30:00Z"},
		{ID: 2, Type: "Ride", Distance: 30000, MovingTime: 3600, StartDateLocal: "2024-03-05T17:00:00Z"},
		{ID: 3, Type: "Workout", SportType: "Run", Distance: 5000, MovingTime: 1500, StartDateLocal: "2024-03-06T07:00:00Z"},
	}
	srv := newTestServer(t, activities)
	client := newTestClient(srv)

	t.Run("valid token", func(t *testing.T) {
		tok := &oauth2.Token{AccessToken: "live", RefreshToken: "r", Expiry: time.Now().Add(time.Hour)}
		runs, fresh, err := client.RecentRuns(context.Background(), tok, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, runs, 2)
		assert.EqualValues(t, 1, runs[0].ID)
		assert.EqualValues(t, 3, runs[1].ID)
		assert.Equal(t, "live", fresh.AccessToken)
	})

	t.Run("expired token is refreshed", func(t *testing.T) {
		tok := &oauth2.Token{AccessToken: "stale", RefreshToken: "r", Expiry: time.Now().Add(-time.Hour)}
		_, fresh, err := client.RecentRuns(context.Background(), tok, time.Now())
		require.NoError(t, err)
		assert.Equal(t, "access-refresh_token", fresh.AccessToken)
	})
}

func TestClient_RecentRuns_FollowsAllPages(t *testing.T) {
	start := time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)
	activities := make([]Activity, 0, 7*activitiesPerPage)
	for i := 0; i < 7*activitiesPerPage; i++ {
		day := start.Add(time.Duration(i) * 12 * time.Hour)
		activities = append(activities, Activity{
			ID:             int64(i + 1),
			Type:           "Run",
			Distance:       5000,
			MovingTime:     1500,
			StartDateLocal: day.Format(time.RFC3339),
		})
	}
	srv := newTestServer(t, activities)

	tok := &oauth2.Token{AccessToken: "live", RefreshToken: "r", Expiry: time.Now().Add(time.Hour)}
	runs, _, err := newTestClient(srv).RecentRuns(context.Background(), tok, start)
	require.NoError(t, err)
	require.Len(t, runs, len(activities))
	assert.EqualValues(t, len(activities), runs[len(runs)-1].ID, "newest activity is fetched")
}

func TestActivity_ToRun(t *testing.T) {
	tests := []struct {
		name         string
		activity     Activity
		wantErr      bool
		wantDistance float64
		wantPace     int
		wantDate     string
	}{
		{
			name:         "five miles in forty minutes",
			activity:     Activity{ID: 42, Distance: 8046.72, MovingTime: 2400, StartDateLocal: "2024-03-05T23:30:00Z"},
			wantDistance: 5,
			wantPace:     480,
			wantDate:     "2024-03-05",
		},
		{name: "no distance", activity: Activity{ID: 1, MovingTime: 100, StartDateLocal: "2024-03-05T06:00:00Z"}, wantErr: true},
		{name: "bad date", activity: Activity{ID: 1, Distance: 1000, MovingTime: 300, StartDateLocal: "soon"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run, err := tt.activity.ToRun("plan-1")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "plan-1", run.PlanID)
			assert.InDelta(t, tt.wantDistance, run.Distance, 0.01)
			assert.InDelta(t, tt.wantPace, run.Pace, 1)
			assert.Equal(t, tt.wantDate, run.Date.Format(domain.DateLayout))
			assert.Equal(t, domain.RunSourceStrava, run.Source)
			require.NotNil(t, run.ExternalID)
			assert.Equal(t, "42", *run.ExternalID)
		})
	}
}

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTokenStore()

	_, err := store.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, store.Save(ctx, "u1", &oauth2.Token{AccessToken: "a"}))
	tok, err := store.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "a", tok.AccessToken)

	assert.Error(t, store.Save(ctx, "u1", nil))
}
