package session

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/claude/ironlog/internal/models"
	"github.com/google/uuid"
)

// Status is the lifecycle state of the engine.
type Status int

const (
	Idle Status = iota
	PlanSelected
	DaySelected
	InProgress
)

func (s Status) String() string {
	switch s {
	case PlanSelected:
		return "plan_selected"
	case DaySelected:
		return "day_selected"
	case InProgress:
		return "in_progress"
	default:
		return "idle"
	}
}

// MarshalText renders the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithLocation sets the time zone used to decide what "today" is when a
// plan is selected. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(e *Engine) { e.loc = loc }
}

// Engine drives one logging session at a time: plan and day selection,
// set logging, and finishing into a persisted WorkoutSession.
//
// All intents are serialized; an intent either succeeds and updates state,
// or fails, records the error, and changes nothing else.
type Engine struct {
	mu    sync.Mutex
	store Store
	log   *slog.Logger
	now   func() time.Time
	loc   *time.Location

	plans     []models.WorkoutPlan
	plan      *models.WorkoutPlan
	days      []time.Weekday
	day       *time.Weekday
	rest      bool
	planned   []*Exercise // projection of the selected day, never mutated
	exercises []*Exercise // working list while no session runs
	active    *activeSession
	current   int
	err       error
}

type activeSession struct {
	startedAt time.Time
	exercises []*Exercise
}

// New creates an Engine in the Idle state. Call Load to fetch plans.
func New(store Store, log *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store: store,
		log:   log,
		now:   time.Now,
		loc:   time.Local,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Load fetches the available plans and selects the one flagged active, if any.
func (e *Engine) Load(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return e.fail(ErrSessionInProgress)
	}

	plans, err := e.store.FetchActivePlans(ctx)
	if err != nil {
		return e.fail(&PersistenceError{Op: "fetching plans", Err: err})
	}

	var activePlan *models.WorkoutPlan
	var sel *daySelection
	for i := range plans {
		if plans[i].IsActive {
			activePlan = &plans[i]
			break
		}
	}
	if activePlan != nil {
		if sel, err = e.todaySelection(ctx, activePlan); err != nil {
			return e.fail(err)
		}
	}

	e.plans = plans
	e.applyPlan(activePlan, sel)
	e.log.Info("plans loaded", "count", len(plans), "active", activePlan != nil)
	return nil
}

// Plans returns the plans fetched by the last Load.
func (e *Engine) Plans() []models.WorkoutPlan {
	e.mu.Lock()
	defer e.mu.Unlock()
	return slices.Clone(e.plans)
}

// SelectPlan makes the plan active, discards any session in progress, and
// selects today's weekday if the plan has a day for it.
func (e *Engine) SelectPlan(ctx context.Context, planID uuid.UUID) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := slices.IndexFunc(e.plans, func(p models.WorkoutPlan) bool { return p.ID == planID })
	if idx < 0 {
		return e.fail(fmt.Errorf("%w: %s", ErrPlanNotFound, planID))
	}
	plan := &e.plans[idx]

	sel, err := e.todaySelection(ctx, plan)
	if err != nil {
		return e.fail(err)
	}

	e.applyPlan(plan, sel)
	e.log.Info("plan selected", "plan", plan.Name, "day_selected", sel != nil)
	return nil
}

// SelectDay selects a weekday of the active plan. A weekday with no day
// template, an explicit rest day, and a day without exercises are all
// reported as a rest day with no exercises.
func (e *Engine) SelectDay(ctx context.Context, weekday time.Weekday) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.plan == nil {
		return e.fail(ErrNoPlanSelected)
	}
	sel, err := e.loadDay(ctx, e.plan, weekday)
	if err != nil {
		return e.fail(err)
	}

	e.applyDay(sel)
	e.log.Info("day selected", "weekday", weekday, "rest", sel.rest, "exercises", len(sel.planned))
	return nil
}

// StartSession begins logging the selected day.
func (e *Engine) StartSession() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != nil {
		return e.fail(ErrSessionInProgress)
	}
	if e.day == nil || e.rest {
		return e.fail(ErrNoDaySelected)
	}

	e.active = &activeSession{
		startedAt: e.now(),
		exercises: cloneExercises(e.exercises),
	}
	e.current = 0
	e.log.Info("session started", "plan", e.plan.Name, "weekday", *e.day, "exercises", len(e.active.exercises))
	return nil
}

// FinishSession persists the session as it stands, complete or not, and
// returns to the selected day. If saving fails nothing is discarded and the
// call can be repeated.
func (e *Engine) FinishSession(ctx context.Context) (*models.WorkoutSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return nil, e.fail(ErrNoActiveSession)
	}

	rec := e.buildRecord()
	if err := e.store.SaveSession(ctx, rec); err != nil {
		e.log.Error("saving session failed", "session", rec.ID, "error", err)
		return nil, e.fail(&PersistenceError{Op: "saving session", Err: err})
	}

	e.active = nil
	e.current = 0
	e.exercises = cloneExercises(e.planned)
	e.log.Info("session finished",
		"session", rec.ID,
		"duration", rec.Duration.String(),
		"sets", rec.SetCount(),
		"completed", rec.Completed,
	)
	return rec, nil
}

// CancelSession discards the session in progress without saving anything.
func (e *Engine) CancelSession() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active == nil {
		return e.fail(ErrNoActiveSession)
	}
	e.active = nil
	e.current = 0
	e.log.Info("session cancelled", "weekday", *e.day)
	return nil
}

// SelectExercise moves the current-exercise pointer.
func (e *Engine) SelectExercise(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.list()) {
		return e.fail(fmt.Errorf("%w: index %d", ErrExerciseNotFound, index))
	}
	e.current = index
	return nil
}

// ClearError dismisses the last intent error.
func (e *Engine) ClearError() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.err = nil
}

// Err returns the last intent error, or nil.
func (e *Engine) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

// Snapshot is a copy of the engine's observable state.
type Snapshot struct {
	Status               Status              `json:"status"`
	ActivePlan           *models.WorkoutPlan `json:"active_plan,omitempty"`
	AvailableDays        []time.Weekday      `json:"available_days"`
	SelectedDay          *time.Weekday       `json:"selected_day,omitempty"`
	IsRestDay            bool                `json:"is_rest_day"`
	Exercises            []*Exercise         `json:"exercises"`
	Groups               []Group             `json:"groups"`
	IsWorkoutInProgress  bool                `json:"is_workout_in_progress"`
	CanFinishSession     bool                `json:"can_finish_session"`
	CurrentExerciseIndex int                 `json:"current_exercise_index"`
	StartedAt            *time.Time          `json:"started_at,omitempty"`
	Err                  error               `json:"-"`
	Error                string              `json:"error,omitempty"`
}

// State returns a deep copy of the observable state.
func (e *Engine) State() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	exercises := cloneExercises(e.list())
	s := Snapshot{
		Status:               e.status(),
		AvailableDays:        slices.Clone(e.days),
		IsRestDay:            e.rest,
		Exercises:            exercises,
		Groups:               GroupExercises(exercises),
		IsWorkoutInProgress:  e.active != nil,
		CanFinishSession:     allCompleted(exercises),
		CurrentExerciseIndex: e.current,
		Err:                  e.err,
	}
	if s.AvailableDays == nil {
		s.AvailableDays = []time.Weekday{}
	}
	if e.plan != nil {
		p := *e.plan
		p.Template.Days = slices.Clone(p.Template.Days)
		s.ActivePlan = &p
	}
	if e.day != nil {
		d := *e.day
		s.SelectedDay = &d
	}
	if e.active != nil {
		t := e.active.startedAt
		s.StartedAt = &t
	}
	if e.err != nil {
		s.Error = e.err.Error()
	}
	return s
}

func (e *Engine) status() Status {
	switch {
	case e.active != nil:
		return InProgress
	case e.day != nil:
		return DaySelected
	case e.plan != nil:
		return PlanSelected
	default:
		return Idle
	}
}

func (e *Engine) fail(err error) error {
	e.err = err
	return err
}

// list returns the exercises intents act on: the session's copy while one
// is running, the day's working list otherwise.
func (e *Engine) list() []*Exercise {
	if e.active != nil {
		return e.active.exercises
	}
	return e.exercises
}

type daySelection struct {
	weekday time.Weekday
	rest    bool
	planned []*Exercise
}

// todaySelection loads today's day of plan, or returns nil if the plan has
// no day for today.
func (e *Engine) todaySelection(ctx context.Context, plan *models.WorkoutPlan) (*daySelection, error) {
	today := e.now().In(e.loc).Weekday()
	if !slices.Contains(plan.Weekdays(), today) {
		return nil, nil
	}
	return e.loadDay(ctx, plan, today)
}

func (e *Engine) loadDay(ctx context.Context, plan *models.WorkoutPlan, weekday time.Weekday) (*daySelection, error) {
	day, err := e.store.FetchDayTemplate(ctx, plan.ID, weekday)
	if err != nil {
		return nil, &PersistenceError{Op: "fetching day template", Err: err}
	}

	sel := &daySelection{weekday: weekday}
	if day == nil || day.IsRest || len(day.Exercises) == 0 {
		sel.rest = true
		sel.planned = []*Exercise{}
		return sel, nil
	}

	last := make(map[uuid.UUID]models.Performance)
	for _, tpl := range day.Exercises {
		id := tpl.Exercise.ID
		if _, seen := last[id]; seen {
			continue
		}
		perf, err := e.store.FetchLastPerformed(ctx, id)
		if err != nil {
			e.log.Warn("last performed lookup failed", "exercise", tpl.Exercise.Name, "error", err)
			continue
		}
		if perf != nil {
			last[id] = *perf
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, &PersistenceError{Op: "fetching last performed", Err: err}
	}

	sel.planned = BuildExercises(day, last)
	return sel, nil
}

func (e *Engine) applyPlan(plan *models.WorkoutPlan, sel *daySelection) {
	e.plan = plan
	e.days = nil
	if plan != nil {
		e.days = plan.Weekdays()
	}
	e.day = nil
	e.rest = false
	e.planned = nil
	e.exercises = nil
	e.active = nil
	e.current = 0
	if sel != nil {
		e.applyDay(sel)
	}
}

func (e *Engine) applyDay(sel *daySelection) {
	wd := sel.weekday
	e.day = &wd
	e.rest = sel.rest
	e.planned = sel.planned
	e.exercises = cloneExercises(sel.planned)
	e.active = nil
	e.current = 0
}

func (e *Engine) buildRecord() *models.WorkoutSession {
	now := e.now()
	rec := &models.WorkoutSession{
		ID:        uuid.New(),
		PlanID:    e.plan.ID,
		Weekday:   *e.day,
		Date:      e.active.startedAt,
		Title:     fmt.Sprintf("%s · %s", e.plan.Name, *e.day),
		Duration:  now.Sub(e.active.startedAt),
		Completed: allCompleted(e.active.exercises),
		Exercises: make([]models.SessionExercise, 0, len(e.active.exercises)),
	}
	for i, ex := range e.active.exercises {
		se := models.SessionExercise{
			ID:         uuid.New(),
			ExerciseID: ex.ExerciseID,
			Name:       ex.Name,
			Position:   i,
			Sets:       []models.CompletedSet{},
		}
		if ex.SupersetID != nil {
			id := *ex.SupersetID
			se.SupersetID = &id
		}
		for pos, s := range ex.Sets {
			if s == nil {
				continue
			}
			cs := *s
			cs.Position = pos
			se.Sets = append(se.Sets, cs)
		}
		rec.Exercises = append(rec.Exercises, se)
	}
	return rec
}
