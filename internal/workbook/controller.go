package workbook

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/roach88/meworkbook/internal/autosave"
	"github.com/roach88/meworkbook/internal/clock"
	"github.com/roach88/meworkbook/internal/model"
	"github.com/roach88/meworkbook/internal/persist"
)

// Controller owns the workbook state and schedules its persistence.
//
// Thread-safety: All methods are safe for concurrent use. The state is
// guarded by one mutex; saves read a snapshot taken when they fire.
type Controller struct {
	mu      sync.Mutex
	state   *model.RootState
	closed  bool
	gateway *persist.Gateway
	saver   *autosave.Debouncer
	clock   clock.Clock
	delay   time.Duration
	owner   Owner
	logger  *slog.Logger
}

// Option allows configuration of controller parameters.
type Option func(*Controller)

// WithClock sets the clock for autosave timers and export timestamps.
func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) { ctl.clock = c }
}

// WithDebounce sets the autosave window.
func WithDebounce(d time.Duration) Option {
	return func(ctl *Controller) { ctl.delay = d }
}

// WithOwner reserves a title for the named owner profile.
func WithOwner(o Owner) Option {
	return func(ctl *Controller) { ctl.owner = o }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(ctl *Controller) { ctl.logger = l }
}

// New creates a controller over state, which it takes ownership of.
// Mutations are saved through gateway.
func New(gateway *persist.Gateway, state *model.RootState, opts ...Option) *Controller {
	c := &Controller{
		state:   state,
		gateway: gateway,
		clock:   clock.System{},
		delay:   autosave.DefaultDelay,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.saver = autosave.New(c.save,
		autosave.WithClock(c.clock),
		autosave.WithDelay(c.delay),
		autosave.WithLogger(c.logger),
	)
	return c
}

// Open ensures a stored state exists and returns a controller over it.
func Open(ctx context.Context, gateway *persist.Gateway, opts ...Option) (*Controller, error) {
	s, err := gateway.Ensure(ctx)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	return New(gateway, s, opts...), nil
}

// save writes a snapshot of the current state. It runs on the autosave
// scheduler.
func (c *Controller) save() error {
	c.mu.Lock()
	snap := c.state.Clone()
	c.mu.Unlock()
	return c.gateway.Save(context.Background(), snap)
}

// mutate applies fn under the lock and schedules a save when fn succeeds.
func (c *Controller) mutate(fn func(s *model.RootState) error) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	err := fn(c.state)
	c.mu.Unlock()
	if err != nil {
		return err
	}
	c.saver.Trigger()
	return nil
}

// CreateProfile onboards the user. It requires a name and a YYYY-MM-DD
// birthdate; birthplace is optional. The generated theme fills the
// workbook title, theme line, insights and every month theme that is
// still empty or default. Fails with PROFILE_EXISTS once a profile is set.
func (c *Controller) CreateProfile(name, birthdate, birthplace string) error {
	p, err := validateProfile(name, birthdate, birthplace)
	if err != nil {
		return err
	}
	return c.mutate(func(s *model.RootState) error {
		if s.Profile != nil {
			return newError(ErrCodeProfileExists, "", nil, "profile already exists; edit it instead")
		}
		applyProfile(s, nil, p, c.owner)
		s.UI.CurrentView = model.ViewDashboard
		c.logger.Info("profile created", "birthdate", p.Birthdate, "title", s.Workbook.Title)
		return nil
	})
}

// EditProfile replaces the profile and re-applies the generated theme.
// Month themes the user edited are kept.
func (c *Controller) EditProfile(name, birthdate, birthplace string) error {
	p, err := validateProfile(name, birthdate, birthplace)
	if err != nil {
		return err
	}
	return c.mutate(func(s *model.RootState) error {
		if s.Profile == nil {
			return newError(ErrCodeNoProfile, "", nil, "no profile to edit")
		}
		prev := *s.Profile
		applyProfile(s, &prev, p, c.owner)
		c.logger.Info("profile edited", "birthdate", p.Birthdate, "title", s.Workbook.Title)
		return nil
	})
}

// EditMonthField sets one month field by path. Paths are theme,
// reflection, expression, relationships, alignmentScore,
// decision.<field> and identityWheel.<dimension>. Scores are clamped.
func (c *Controller) EditMonthField(month, path, value string) error {
	m, err := parseMonth(month)
	if err != nil {
		return err
	}
	edit, err := parseMonthEdit(path, value)
	if err != nil {
		return err
	}
	return c.mutate(func(s *model.RootState) error {
		edit(s.Workbook.Month(m))
		c.logger.Debug("month field edited", "month", m, "path", path)
		return nil
	})
}

// SetAlignmentScore sets a month's alignment score, clamped to 0..100.
func (c *Controller) SetAlignmentScore(m model.Month, score int) error {
	if !m.Valid() {
		return newError(ErrCodeUnknownMonth, "month", model.ErrUnknownMonth, "month %d out of range", int(m))
	}
	return c.mutate(func(s *model.RootState) error {
		s.Workbook.Month(m).AlignmentScore = model.ClampAlignment(score)
		return nil
	})
}

// SetWheelScore sets one identity-wheel score, clamped to 0..10.
func (c *Controller) SetWheelScore(m model.Month, dim model.WheelDimension, score int) error {
	if !m.Valid() {
		return newError(ErrCodeUnknownMonth, "month", model.ErrUnknownMonth, "month %d out of range", int(m))
	}
	if !dim.Valid() {
		return newError(ErrCodeUnknownDimension, "identityWheel", model.ErrUnknownDimension, "dimension %d out of range", int(dim))
	}
	return c.mutate(func(s *model.RootState) error {
		s.Workbook.Month(m).IdentityWheel[dim] = model.ClampWheel(score)
		return nil
	})
}

// UpsertDailyLog creates or overwrites the log for date, which must fall in
// month of the workbook year. The month's daily cursor moves to date.
//
// Blank or whitespace-only text deletes the entry for date instead of
// storing an empty log, so a cleared day reads the same as one never
// written.
func (c *Controller) UpsertDailyLog(month, date, text string) error {
	m, err := parseMonth(month)
	if err != nil {
		return err
	}
	return c.mutate(func(s *model.RootState) error {
		day, err := parseLogDate(date, m, s.Workbook.Year)
		if err != nil {
			return err
		}
		rec := s.Workbook.Month(m)
		if strings.TrimSpace(text) == "" {
			delete(rec.DailyLogs, day)
		} else {
			rec.DailyLogs[day] = text
		}
		rec.LastDailyDate = day
		return nil
	})
}

// UpsertWeeklyLog creates or overwrites one weekly log. The month's weekly
// cursor moves to week.
func (c *Controller) UpsertWeeklyLog(month, week, text string) error {
	m, err := parseMonth(month)
	if err != nil {
		return err
	}
	k, err := model.ParseWeekKey(week)
	if err != nil {
		return newError(ErrCodeUnknownWeek, "week", err, "unknown week key %q", week)
	}
	return c.mutate(func(s *model.RootState) error {
		rec := s.Workbook.Month(m)
		rec.WeeklyLogs[k] = text
		rec.LastWeeklyKey = k
		return nil
	})
}

// EditYearEnd sets one year-end page.
func (c *Controller) EditYearEnd(field, value string) error {
	return c.mutate(func(s *model.RootState) error {
		dst, ok := yearEndField(&s.Workbook.YearEnd, field)
		if !ok {
			return newError(ErrCodeUnknownField, field, nil, "unknown year-end field %q", field)
		}
		*dst = value
		return nil
	})
}

// Navigate records the current view and, when month is not empty, the
// current month. Views other than home need a profile.
func (c *Controller) Navigate(view, month string) error {
	v, err := model.ParseView(view)
	if err != nil {
		return newError(ErrCodeUnknownField, "view", err, "unknown view %q", view)
	}
	var (
		m        model.Month
		setMonth = strings.TrimSpace(month) != ""
	)
	if setMonth {
		if m, err = parseMonth(month); err != nil {
			return err
		}
	}
	return c.mutate(func(s *model.RootState) error {
		if v != model.ViewHome && s.Profile == nil {
			return newError(ErrCodeNoProfile, "view", nil, "view %s needs a profile", v)
		}
		s.UI.CurrentView = v
		if setMonth {
			s.UI.CurrentMonth = m
		}
		return nil
	})
}

// SetCursor moves a month's daily and weekly cursors. Empty arguments
// leave that cursor unchanged.
func (c *Controller) SetCursor(month, dailyDate, weekKey string) error {
	m, err := parseMonth(month)
	if err != nil {
		return err
	}
	var (
		k       model.WeekKey
		setWeek = weekKey != ""
	)
	if setWeek {
		if k, err = model.ParseWeekKey(weekKey); err != nil {
			return newError(ErrCodeUnknownWeek, "week", err, "unknown week key %q", weekKey)
		}
	}
	return c.mutate(func(s *model.RootState) error {
		rec := s.Workbook.Month(m)
		if dailyDate != "" {
			day, err := parseLogDate(dailyDate, m, s.Workbook.Year)
			if err != nil {
				return err
			}
			rec.LastDailyDate = day
		}
		if setWeek {
			rec.LastWeeklyKey = k
		}
		return nil
	})
}

// Reset deletes the stored record and replaces the state with a fresh
// one. A save still pending writes the fresh state.
func (c *Controller) Reset(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	s, err := c.gateway.Reset(ctx)
	if err != nil {
		return err
	}
	c.state = s
	return nil
}

// Snapshot returns a deep copy of the state.
func (c *Controller) Snapshot() *model.RootState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Profile returns a copy of the profile, or nil before onboarding.
func (c *Controller) Profile() *model.Profile {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Profile == nil {
		return nil
	}
	p := *c.state.Profile
	return &p
}

// Month returns a copy of the named month.
func (c *Controller) Month(month string) (model.MonthRecord, error) {
	m, err := parseMonth(month)
	if err != nil {
		return model.MonthRecord{}, err
	}
	return c.Snapshot().Workbook.Months[m], nil
}

// Insights returns the derived profile insights.
func (c *Controller) Insights() model.DerivedInsights {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Workbook.ProfileInsights.Clone()
}

// UI returns the navigation state.
func (c *Controller) UI() model.UIState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.UI
}

// Export builds an export record stamped with the controller's clock.
func (c *Controller) Export() model.Export {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gateway.Export(c.state, c.clock.Now())
}

// Flush writes any pending save now.
func (c *Controller) Flush() error {
	return c.saver.Flush()
}

// Close flushes pending work and rejects further mutations.
func (c *Controller) Close() error {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	return c.saver.Stop()
}

func parseMonth(name string) (model.Month, error) {
	m, err := model.ParseMonth(name)
	if err != nil {
		return 0, newError(ErrCodeUnknownMonth, "month", err, "unknown month %q", name)
	}
	return m, nil
}
