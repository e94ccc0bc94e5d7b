// Package timeline provides the person activity read model: a person's
// events folded into the sessions they happened in, newest first.
package timeline

import (
	"encoding/json"
	"time"

	"pipeline-console/internal/common/errors"
	"pipeline-console/internal/database"
)

// Event is one recorded event of a person.
type Event struct {
	ID         int               `json:"id"`
	PersonID   string            `json:"person_id"`
	SessionID  string            `json:"session_id,omitempty"`
	Event      string            `json:"event"`
	Properties map[string]string `json:"properties,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
}

// Session is one folded group of a person's events. Events without a
// session id are folded into a single group with an empty id.
type Session struct {
	SessionID  string    `json:"session_id,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	EndedAt    time.Time `json:"ended_at"`
	EventCount int       `json:"event_count"`
	Events     []Event   `json:"events"`
}

// Store reads and records person activity.
type Store struct {
	db *database.DB
}

// NewStore creates a timeline store over db.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Record inserts an event.
func (s *Store) Record(e Event) error {
	properties, err := json.Marshal(e.Properties)
	if err != nil {
		return errors.InternalError("failed to encode event properties", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO person_events (person_id, session_id, event, properties, timestamp) VALUES (?, ?, ?, ?, ?)`,
		e.PersonID, e.SessionID, e.Event, string(properties), e.Timestamp.UTC(),
	)
	if err != nil {
		return errors.InternalError("failed to record event", err)
	}
	return nil
}

// Activity returns a page of a person's sessions, most recently ended
// first, along with the total session count. An empty page with a zero
// total means the person has no recorded activity; it is not an error.
//
// Folding happens here rather than in SQL: the page size is small and the
// per-session bounds come for free once the events are grouped.
func (s *Store) Activity(personID string, limit, offset int) ([]Session, int, error) {
	rows, err := s.db.Query(
		`SELECT id, person_id, session_id, event, properties, timestamp
		 FROM person_events WHERE person_id = ?
		 ORDER BY timestamp DESC, id DESC`,
		personID,
	)
	if err != nil {
		return nil, 0, errors.InternalError("failed to list person events", err)
	}
	defer rows.Close()

	byID := make(map[string]*Session)
	var ordered []*Session
	for rows.Next() {
		var e Event
		var properties string
		if err := rows.Scan(&e.ID, &e.PersonID, &e.SessionID, &e.Event, &properties, &e.Timestamp); err != nil {
			return nil, 0, errors.InternalError("failed to scan event", err)
		}
		if properties != "" && properties != "null" {
			if err := json.Unmarshal([]byte(properties), &e.Properties); err != nil {
				return nil, 0, errors.InternalError("corrupt event properties", err)
			}
		}

		sess, ok := byID[e.SessionID]
		if !ok {
			// Events arrive newest first, so the first event of a session
			// fixes both its end time and its position in the page.
			sess = &Session{SessionID: e.SessionID, StartedAt: e.Timestamp, EndedAt: e.Timestamp}
			byID[e.SessionID] = sess
			ordered = append(ordered, sess)
		}
		if e.Timestamp.Before(sess.StartedAt) {
			sess.StartedAt = e.Timestamp
		}
		sess.EventCount++
		sess.Events = append(sess.Events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, errors.InternalError("failed to iterate events", err)
	}

	total := len(ordered)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	page := make([]Session, 0, end-offset)
	for _, sess := range ordered[offset:end] {
		page = append(page, *sess)
	}
	return page, total, nil
}
