// Package strava talks to the Strava API: the OAuth2 authorization flow and
// the athlete activity listing used to import runs.
package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"alcyxob/run-trainer/internal/config"
	"alcyxob/run-trainer/internal/domain"
)

const (
	scopeActivityRead = "activity:read"
	activitiesPerPage = 50
	// 365 days of plan at several activities a day fits well below this.
	maxActivityPages  = 200
	activityTypeRun   = "Run"
)

var ErrNoDistance = errors.New("activity has no distance")

// Activity is the subset of a Strava activity the importer needs.
type Activity struct {
	ID             int64   `json:"id"`
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	SportType      string  `json:"sport_type"`
	Distance       float64 `json:"distance"`    // metres
	MovingTime     int     `json:"moving_time"` // seconds
	StartDateLocal string  `json:"start_date_local"`
}

// IsRun reports whether the activity is a run.
func (a Activity) IsRun() bool {
	return a.Type == activityTypeRun || a.SportType == activityTypeRun
}

// Date is the local calendar date the activity started on.
func (a Activity) Date() (time.Time, error) {
	if len(a.StartDateLocal) < len(domain.DateLayout) {
		return time.Time{}, fmt.Errorf("invalid start_date_local %q", a.StartDateLocal)
	}
	return domain.ParseDate(a.StartDateLocal[:len(domain.DateLayout)])
}

// ToRun converts the activity into a run of the plan, in miles and seconds per mile.
func (a Activity) ToRun(planID string) (*domain.Run, error) {
	if a.Distance <= 0 {
		return nil, ErrNoDistance
	}
	date, err := a.Date()
	if err != nil {
		return nil, err
	}
	miles := a.Distance / 1000 * domain.MilesPerKilometer
	externalID := strconv.FormatInt(a.ID, 10)
	return &domain.Run{
		PlanID:     planID,
		Distance:   domain.Round2(miles),
		Pace:       int(math.Round(float64(a.MovingTime) / miles)),
		Date:       date,
		Source:     domain.RunSourceStrava,
		Notes:      a.Name,
		ExternalID: &externalID,
	}, nil
}

// Client wraps the OAuth2 configuration and the activities endpoint.
type Client struct {
	oauth      *oauth2.Config
	apiBaseURL string
	httpClient *http.Client
	log        *logrus.Logger
}

func NewClient(cfg config.StravaConfig, httpClient *http.Client, log *logrus.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{scopeActivityRead},
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		apiBaseURL: strings.TrimRight(cfg.APIBaseURL, "/"),
		httpClient: httpClient,
		log:        log,
	}
}

// AuthCodeURL is the Strava consent page the athlete is sent to.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state, oauth2.SetAuthURLParam("approval_prompt", "auto"))
}

// Exchange trades an authorization code for a token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	return c.oauth.Exchange(c.withHTTPClient(ctx), code)
}

// RecentRuns lists the athlete's runs started after the given time. The
// returned token is the one in effect after a possible refresh and should be
// stored in place of the old one.
func (c *Client) RecentRuns(ctx context.Context, token *oauth2.Token, after time.Time) ([]Activity, *oauth2.Token, error) {
	ctx = c.withHTTPClient(ctx)
	ts := c.oauth.TokenSource(ctx, token)
	httpClient := oauth2.NewClient(ctx, ts)

	var runs []Activity
	for page := 1; ; page++ {
		if page > maxActivityPages {
			c.log.WithFields(logrus.Fields{
				"pages": maxActivityPages,
				"after": after.Format(domain.DateLayout),
			}).Warn("strava activity page limit reached, newer activities were not fetched")
			break
		}
		batch, err := c.listActivities(ctx, httpClient, after, page)
		if err != nil {
			return nil, nil, err
		}
		for _, a := range batch {
			if a.IsRun() {
				runs = append(runs, a)
			}
		}
		if len(batch) < activitiesPerPage {
			break
		}
	}

	fresh, err := ts.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("refresh strava token: %w", err)
	}
	c.log.WithFields(logrus.Fields{"runs": len(runs), "after": after.Format(domain.DateLayout)}).Debug("fetched strava activities")
	return runs, fresh, nil
}

func (c *Client) listActivities(ctx context.Context, httpClient *http.Client, after time.Time, page int) ([]Activity, error) {
	q := url.Values{}
	q.Set("after", strconv.FormatInt(after.Unix(), 10))
	q.Set("per_page", strconv.Itoa(activitiesPerPage))
	q.Set("page", strconv.Itoa(page))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.apiBaseURL+"/athlete/activities?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("strava activities request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("strava activities: unexpected status %d", resp.StatusCode)
	}
	var batch []Activity
	if err := json.NewDecoder(resp.Body).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decode strava activities: %w", err)
	}
	return batch, nil
}

// withHTTPClient makes the oauth2 package use our client for token calls.
func (c *Client) withHTTPClient(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}
