package calendar

import (
	"context"
	"time"

	"skillswap/models"
	"skillswap/utils"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

// Provider abstracts the external calendar collaborator: busy-time queries,
// event creation and event deletion (rollback path for two-way bookings).
type Provider interface {
	QueryBusy(ctx context.Context, accessToken string, days int) ([]models.BusyInterval, error)
	CreateEvent(ctx context.Context, accessToken string, spec models.EventSpec) (*models.EventRef, error)
	DeleteEvent(ctx context.Context, accessToken, eventID string) error
}

// GoogleProvider implements Provider against the Google Calendar API, using
// each user's own OAuth access token.
type GoogleProvider struct {
	Timezone string
	Timeout  time.Duration
}

// NewGoogleProvider builds a provider emitting events in the given timezone.
func NewGoogleProvider(timezone string) *GoogleProvider {
	return &GoogleProvider{Timezone: timezone, Timeout: 10 * time.Second}
}

func (p *GoogleProvider) service(ctx context.Context, accessToken string) (*gcal.Service, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken})
	svc, err := gcal.NewService(ctx, option.WithTokenSource(ts))
	if err != nil {
		return nil, utils.NewExternalFailure("failed to build calendar client", err)
	}
	return svc, nil
}

// QueryBusy runs a freebusy query over the user's primary calendar for the
// next `days` days.
func (p *GoogleProvider) QueryBusy(ctx context.Context, accessToken string, days int) ([]models.BusyInterval, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	svc, err := p.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	req := &gcal.FreeBusyRequest{
		TimeMin:  now.Format(time.RFC3339),
		TimeMax:  now.AddDate(0, 0, days).Format(time.RFC3339),
		TimeZone: p.Timezone,
		Items:    []*gcal.FreeBusyRequestItem{{Id: "primary"}},
	}

	resp, err := svc.Freebusy.Query(req).Context(ctx).Do()
	if err != nil {
		return nil, utils.NewExternalFailure("freebusy query failed", err)
	}

	var busy []models.BusyInterval
	if cal, ok := resp.Calendars["primary"]; ok {
		for _, period := range cal.Busy {
			start, err1 := time.Parse(time.RFC3339, period.Start)
			end, err2 := time.Parse(time.RFC3339, period.End)
			if err1 != nil || err2 != nil {
				continue
			}
			busy = append(busy, models.BusyInterval{Start: start, End: end})
		}
	}

	utils.GetLogger().Info("retrieved busy intervals from calendar", zap.Int("count", len(busy)))
	return busy, nil
}

// CreateEvent inserts an event into the user's primary calendar with the
// counterpart as attendee and the product's standard reminder overrides.
func (p *GoogleProvider) CreateEvent(ctx context.Context, accessToken string, spec models.EventSpec) (*models.EventRef, error) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	svc, err := p.service(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	event := &gcal.Event{
		Summary:     spec.Summary,
		Description: spec.Description,
		Start:       &gcal.EventDateTime{DateTime: spec.StartTime.Format(time.RFC3339), TimeZone: p.Timezone},
		End:         &gcal.EventDateTime{DateTime: spec.EndTime.Format(time.RFC3339), TimeZone: p.Timezone},
		Attendees:   []*gcal.EventAttendee{{Email: spec.AttendeeEmail}},
		Reminders: &gcal.EventReminders{
			UseDefault: false,
			Overrides: []*gcal.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := svc.Events.Insert("primary", event).Context(ctx).Do()
	if err != nil {
		return nil, utils.NewExternalFailure("calendar event creation failed", err)
	}

	utils.GetLogger().Info("created calendar event", zap.String("eventId", created.Id))
	return &models.EventRef{
		ID:          created.Id,
		Link:        created.HtmlLink,
		HangoutLink: created.HangoutLink,
	}, nil
}

// DeleteEvent removes an event from the user's primary calendar.
func (p *GoogleProvider) DeleteEvent(ctx context.Context, accessToken, eventID string) error {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	svc, err := p.service(ctx, accessToken)
	if err != nil {
		return err
	}

	if err := svc.Events.Delete("primary", eventID).Context(ctx).Do(); err != nil {
		return utils.NewExternalFailure("calendar event deletion failed", err)
	}
	return nil
}
