package client

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"gatherly-api/models"
)

// ActivityAPI is the server contract the store mutates through.
type ActivityAPI interface {
	List(ctx context.Context) ([]models.Activity, error)
	Get(ctx context.Context, id string) (models.Activity, error)
	Create(ctx context.Context, activity models.Activity) error
	Update(ctx context.Context, activity models.Activity) error
	Delete(ctx context.Context, id string) error
}

// Store mirrors the server's activity collection in memory and tracks the
// interaction state (selection, form mode, in-flight flags) a UI renders
// from. Create, edit and delete never touch the local records until the
// server confirms; a failed call leaves the mirror exactly as it was. That
// trades perceived latency for never showing state the server rejected.
//
// All state transitions happen under one mutex; registered listeners are
// notified after every completed action so views can recompute.
type Store struct {
	api    ActivityAPI
	logger *log.Logger

	mu             sync.Mutex
	activities     map[string]models.Activity
	selectedID     string
	editMode       bool
	submitting     bool
	target         string
	loadingInitial bool
	listeners      []func()
}

func NewStore(api ActivityAPI, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.Default()
	}
	return &Store{
		api:        api,
		logger:     logger,
		activities: make(map[string]models.Activity),
	}
}

// Subscribe registers a listener invoked after every completed action.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	s.listeners = append(s.listeners, fn)
	s.mu.Unlock()
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}

// ActivitiesByDate returns a date-ascending copy of the records. It is a
// projection only; the record set itself is never reordered or mutated.
func (s *Store) ActivitiesByDate() []models.Activity {
	s.mu.Lock()
	activities := make([]models.Activity, 0, len(s.activities))
	for _, a := range s.activities {
		activities = append(activities, a)
	}
	s.mu.Unlock()

	sort.Slice(activities, func(i, j int) bool {
		return activities[i].Date.Before(activities[j].Date)
	})
	return activities
}

// SelectedActivity returns the currently selected record, if any.
func (s *Store) SelectedActivity() (models.Activity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[s.selectedID]
	return a, ok
}

func (s *Store) EditMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editMode
}

func (s *Store) Submitting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitting
}

// Target reports which action trigger (e.g. a delete button) is in flight.
func (s *Store) Target() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.target
}

func (s *Store) LoadingInitial() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadingInitial
}

// LoadActivities fetches the full collection and replaces the local
// mirror. Dates are truncated to whole seconds so records compare cleanly
// regardless of the precision the server serializes.
func (s *Store) LoadActivities(ctx context.Context) error {
	s.mu.Lock()
	s.loadingInitial = true
	s.mu.Unlock()
	s.notify()

	activities, err := s.api.List(ctx)

	s.mu.Lock()
	if err == nil {
		for _, a := range activities {
			a.Date = a.Date.Truncate(time.Second)
			s.activities[a.ID] = a
		}
	}
	s.loadingInitial = false
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.logger.Printf("load activities: %v", err)
		return err
	}
	return nil
}

// CreateActivity submits a new record. The record is inserted locally only
// once the server confirms it.
func (s *Store) CreateActivity(ctx context.Context, activity models.Activity) error {
	if err := validateActivity(activity); err != nil {
		return err
	}

	s.mu.Lock()
	s.submitting = true
	s.mu.Unlock()
	s.notify()

	err := s.api.Create(ctx, activity)

	s.mu.Lock()
	if err == nil {
		s.activities[activity.ID] = activity
		s.editMode = false
	}
	s.submitting = false
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.logger.Printf("create activity: %v", err)
		return err
	}
	return nil
}

// EditActivity submits changes to an existing record. The prior record is
// retained untouched until the server confirms the edit; on confirmation
// the edited record replaces it and becomes the selection.
func (s *Store) EditActivity(ctx context.Context, activity models.Activity) error {
	if err := validateActivity(activity); err != nil {
		return err
	}

	s.mu.Lock()
	s.submitting = true
	s.mu.Unlock()
	s.notify()

	err := s.api.Update(ctx, activity)

	s.mu.Lock()
	if err == nil {
		s.activities[activity.ID] = activity
		s.selectedID = activity.ID
		s.editMode = false
	}
	s.submitting = false
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.logger.Printf("edit activity: %v", err)
		return err
	}
	return nil
}

// DeleteActivity removes a record once the server confirms the delete.
// target identifies the UI trigger in flight and is cleared on both paths.
func (s *Store) DeleteActivity(ctx context.Context, id, target string) error {
	s.mu.Lock()
	s.submitting = true
	s.target = target
	s.mu.Unlock()
	s.notify()

	err := s.api.Delete(ctx, id)

	s.mu.Lock()
	if err == nil {
		delete(s.activities, id)
		if s.selectedID == id {
			s.selectedID = ""
		}
	}
	s.submitting = false
	s.target = ""
	s.mu.Unlock()
	s.notify()

	if err != nil {
		s.logger.Printf("delete activity: %v", err)
		return err
	}
	return nil
}

// OpenCreateForm switches to the blank form.
func (s *Store) OpenCreateForm() {
	s.mu.Lock()
	s.editMode = true
	s.selectedID = ""
	s.mu.Unlock()
	s.notify()
}

// OpenEditForm opens the form over an existing record. An unknown id
// clears the selection but still opens the form.
func (s *Store) OpenEditForm(id string) {
	s.mu.Lock()
	if _, ok := s.activities[id]; ok {
		s.selectedID = id
	} else {
		s.selectedID = ""
	}
	s.editMode = true
	s.mu.Unlock()
	s.notify()
}

// SelectActivity selects a record for display and leaves form mode.
func (s *Store) SelectActivity(id string) {
	s.mu.Lock()
	if _, ok := s.activities[id]; ok {
		s.selectedID = id
	} else {
		s.selectedID = ""
	}
	s.editMode = false
	s.mu.Unlock()
	s.notify()
}

func (s *Store) CancelSelectedActivity() {
	s.mu.Lock()
	s.selectedID = ""
	s.mu.Unlock()
	s.notify()
}

func (s *Store) CancelFormOpen() {
	s.mu.Lock()
	s.editMode = false
	s.mu.Unlock()
	s.notify()
}

func validateActivity(a models.Activity) error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.ID, validation.Required, is.UUID),
		validation.Field(&a.Title, validation.Required),
		validation.Field(&a.Category, validation.Required),
		validation.Field(&a.Date, validation.Required),
	)
}
