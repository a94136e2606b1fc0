package domain

import (
	"fmt"
	"time"
)

// SessionStatus is the lifecycle phase of a mentoring session.
type SessionStatus string

const (
	SessionUpcoming  SessionStatus = "upcoming"
	SessionOngoing   SessionStatus = "ongoing"
	SessionCompleted SessionStatus = "completed"
	SessionCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) Valid() bool {
	switch s {
	case SessionUpcoming, SessionOngoing, SessionCompleted, SessionCancelled:
		return true
	}
	return false
}

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	DefaultMaxParticipants = 50
	DefaultSessionDuration = 2 * time.Hour
)

// Session is a scheduled mentoring event hosted by an admin, faculty member
// or alumnus. Date and Time are wall-clock values in the classifier's zone.
type Session struct {
	ID               string        `json:"id" bson:"_id,omitempty"`
	Title            string        `json:"title" bson:"title"`
	Description      string        `json:"description" bson:"description"`
	Date             string        `json:"date" bson:"date"`
	Time             string        `json:"time" bson:"time"`
	Venue            string        `json:"venue" bson:"venue"`
	SessionHead      string        `json:"sessionHead" bson:"session_head"`
	HostID           string        `json:"hostId" bson:"host_id"`
	MaxParticipants  int           `json:"maxParticipants" bson:"max_participants"`
	Participants     []string      `json:"participants" bson:"participants"`
	Status           SessionStatus `json:"status" bson:"status"`
	MeetingLink      string        `json:"meetingLink,omitempty" bson:"meeting_link,omitempty"`
	FeedbackFormLink string        `json:"feedbackFormLink,omitempty" bson:"feedback_form_link,omitempty"`
	CreatedAt        time.Time     `json:"createdAt" bson:"created_at"`
	UpdatedAt        time.Time     `json:"updatedAt" bson:"updated_at"`
}

// HasParticipant reports whether userID has joined the session.
func (s *Session) HasParticipant(userID string) bool {
	for _, p := range s.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

func (s *Session) IsFull() bool {
	return len(s.Participants) >= s.MaxParticipants
}

// ParseSchedule validates a date ("YYYY-MM-DD") and time ("HH:MM") pair.
// Both must be zero-padded: sessions are ordered by comparing the stored
// strings, so "9:00" would sort after "10:00".
func ParseSchedule(date, clock string, loc *time.Location) (time.Time, error) {
	if _, err := time.Parse(DateLayout, date); err != nil || len(date) != len(DateLayout) {
		return time.Time{}, Invalid("date must be in YYYY-MM-DD format")
	}
	if _, err := time.Parse(ClockLayout, clock); err != nil || len(clock) != len(ClockLayout) {
		return time.Time{}, Invalid("time must be in HH:MM format")
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateLayout+" "+ClockLayout, date+" "+clock, loc)
}

// Classifier derives a session's status from the clock. The stored status is
// only honoured when it is cancelled; every other phase is computed.
type Classifier struct {
	Location *time.Location
	Duration time.Duration
}

// NewClassifier returns a Classifier, falling back to UTC and
// DefaultSessionDuration for zero values.
func NewClassifier(loc *time.Location, d time.Duration) Classifier {
	if loc == nil {
		loc = time.UTC
	}
	if d <= 0 {
		d = DefaultSessionDuration
	}
	return Classifier{Location: loc, Duration: d}
}

// Window returns the start and end instants of the session.
func (c Classifier) Window(s *Session) (start, end time.Time, err error) {
	start, err = ParseSchedule(s.Date, s.Time, c.Location)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("session %s: %w", s.ID, err)
	}
	d := c.Duration
	if d <= 0 {
		d = DefaultSessionDuration
	}
	return start, start.Add(d), nil
}

// Classify returns the status of s at now. Both window bounds are inclusive.
func (c Classifier) Classify(s *Session, now time.Time) (SessionStatus, error) {
	if s.Status == SessionCancelled {
		return SessionCancelled, nil
	}
	start, end, err := c.Window(s)
	if err != nil {
		return s.Status, err
	}
	switch {
	case now.Before(start):
		return SessionUpcoming, nil
	case !now.After(end):
		return SessionOngoing, nil
	default:
		return SessionCompleted, nil
	}
}
