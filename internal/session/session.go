// Package session implements the timed exam session held on the client
// side: a wall-clock-anchored countdown that survives reloads, answer and
// navigation capture, and a single terminal submission through the attempt
// gate. All persistent state lives behind the Store interface so a host can
// back it with browser storage, Redis or memory, and tests can drive it
// with a fake clock.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"sync"
	"time"
)

// The five persisted session keys. They are cleared together, and only on
// a confirmed successful submission.
const (
	KeyStartTime = "assessment_start_time"     // epoch milliseconds
	KeyDuration  = "assessment_total_duration" // seconds
	KeyAnswers   = "assessment_answers"        // JSON array, null for unanswered
	KeyVisited   = "assessment_visited"        // JSON bool array
	KeyCurrent   = "assessment_current_q"      // question index
)

var sessionKeys = []string{KeyStartTime, KeyDuration, KeyAnswers, KeyVisited, KeyCurrent}

var (
	ErrKeyNotFound      = errors.New("session key not found")
	ErrUnknownKey       = errors.New("unknown session key")
	ErrAlreadySubmitted = errors.New("submission already in progress or completed")
	ErrNotLoaded        = errors.New("session not loaded")
)

type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Store mirrors web localStorage: string keys, string values, missing keys
// reported as ErrKeyNotFound.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

// Gate is the attempt gate as seen from the client.
type Gate interface {
	FetchForStudent(ctx context.Context) (*FetchResponse, error)
	Submit(ctx context.Context, req SubmitRequest) (*Result, error)
	Result(ctx context.Context) (*Result, error)
}

// Palette states for the question navigator.
const (
	PaletteCurrent    = "current"
	PaletteAnswered   = "answered"
	PaletteVisited    = "visited"
	PaletteNotVisited = "not-visited"
)

// Controller owns one in-progress exam session.
type Controller struct {
	clock Clock
	store Store
	gate  Gate

	mu         sync.Mutex
	loaded     bool
	submitting bool
	submitted  bool
	auto       bool // terminal submission was expiry-triggered

	assessment      *Assessment
	timePerQuestion int
	startMillis     int64
	duration        int // seconds
	answers         []*string
	visited         []bool
	current         int
}

func New(clock Clock, store Store, gate Gate) *Controller {
	return &Controller{
		clock: clock,
		store: store,
		gate:  gate,
	}
}

// LoadResult tells the host what to render after Load.
type LoadResult struct {
	Locked        bool
	Reason        string
	AutoSubmitted bool
	Result        *Result
}

// Load fetches the assessment, restores any persisted session state and
// anchors the countdown. If the restored session has already expired the
// submission fires immediately; running Load twice still produces exactly
// one submission because both runs funnel through the same in-flight
// guard.
func (c *Controller) Load(ctx context.Context) (*LoadResult, error) {
	res, err := c.gate.FetchForStudent(ctx)
	if err != nil {
		return nil, err
	}

	if res.Locked {
		return &LoadResult{Locked: true, Reason: res.Reason}, nil
	}

	questionCount := len(res.Assessment.Questions)
	totalSeconds := questionCount * res.TimePerQuestion

	c.mu.Lock()
	c.assessment = res.Assessment
	c.timePerQuestion = res.TimePerQuestion

	c.answers = c.restoreAnswers(ctx, questionCount)
	c.visited = c.restoreVisited(ctx, questionCount)
	c.current = c.restoreCurrent(ctx, questionCount)

	now := c.clock.Now().UnixMilli()
	start, duration, ok := c.restoreTimer(ctx)
	if !ok {
		start = now
		duration = totalSeconds
		_ = c.store.Set(ctx, KeyStartTime, strconv.FormatInt(start, 10))
		_ = c.store.Set(ctx, KeyDuration, strconv.Itoa(duration))
	}
	c.startMillis = start
	c.duration = duration
	c.loaded = true

	remaining := duration - int((now-start)/1000)
	c.mu.Unlock()

	if remaining <= 0 {
		result, err := c.Submit(ctx, true)
		if err != nil {
			if errors.Is(err, ErrAlreadySubmitted) {
				// A concurrent load run already fired the submission.
				return &LoadResult{AutoSubmitted: true}, nil
			}
			return nil, err
		}
		return &LoadResult{AutoSubmitted: true, Result: result}, nil
	}

	c.markVisited(ctx, c.current)
	return &LoadResult{}, nil
}

func (c *Controller) restoreAnswers(ctx context.Context, questionCount int) []*string {
	answers := make([]*string, questionCount)
	if raw, err := c.store.Get(ctx, KeyAnswers); err == nil {
		var saved []*string
		if json.Unmarshal([]byte(raw), &saved) == nil {
			copy(answers, saved)
		}
	}
	return answers
}

func (c *Controller) restoreVisited(ctx context.Context, questionCount int) []bool {
	visited := make([]bool, questionCount)
	if raw, err := c.store.Get(ctx, KeyVisited); err == nil {
		var saved []bool
		if json.Unmarshal([]byte(raw), &saved) == nil {
			copy(visited, saved)
		}
	}
	return visited
}

func (c *Controller) restoreCurrent(ctx context.Context, questionCount int) int {
	raw, err := c.store.Get(ctx, KeyCurrent)
	if err != nil {
		return 0
	}
	idx, err := strconv.Atoi(raw)
	if err != nil || idx < 0 || idx >= questionCount {
		return 0
	}
	return idx
}

func (c *Controller) restoreTimer(ctx context.Context) (start int64, duration int, ok bool) {
	rawStart, err := c.store.Get(ctx, KeyStartTime)
	if err != nil {
		return 0, 0, false
	}
	rawDuration, err := c.store.Get(ctx, KeyDuration)
	if err != nil {
		return 0, 0, false
	}

	start, err = strconv.ParseInt(rawStart, 10, 64)
	if err != nil {
		return 0, 0, false
	}
	duration, err = strconv.Atoi(rawDuration)
	if err != nil {
		return 0, 0, false
	}
	return start, duration, true
}

// Remaining recomputes the countdown from the wall clock. The once-per-
// second display tick is presentation only; missed ticks or a suspended
// tab cannot stretch the exam.
func (c *Controller) Remaining() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return 0
	}
	elapsed := int((c.clock.Now().UnixMilli() - c.startMillis) / 1000)
	remaining := c.duration - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SelectAnswer overwrites the answer at the current index and persists the
// whole answer list immediately, so a reload never loses more than the
// in-flight keystroke.
func (c *Controller) SelectAnswer(ctx context.Context, option string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrNotLoaded
	}
	if c.submitting || c.submitted {
		return ErrAlreadySubmitted
	}

	c.answers[c.current] = &option
	raw, err := json.Marshal(c.answers)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, KeyAnswers, string(raw))
}

func (c *Controller) Next(ctx context.Context) error {
	c.mu.Lock()
	target := c.current + 1
	c.mu.Unlock()
	return c.JumpTo(ctx, target)
}

func (c *Controller) Prev(ctx context.Context) error {
	c.mu.Lock()
	target := c.current - 1
	c.mu.Unlock()
	return c.JumpTo(ctx, target)
}

// JumpTo moves to a question from the palette and marks it visited.
// Visited state drives the palette colors only; it has no scoring
// semantics.
func (c *Controller) JumpTo(ctx context.Context, index int) error {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return ErrNotLoaded
	}
	if index < 0 || index >= len(c.answers) {
		c.mu.Unlock()
		return nil
	}
	c.current = index
	c.mu.Unlock()

	c.markVisited(ctx, index)
	return nil
}

func (c *Controller) markVisited(ctx context.Context, index int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.visited) {
		return
	}
	c.visited[index] = true
	if raw, err := json.Marshal(c.visited); err == nil {
		_ = c.store.Set(ctx, KeyVisited, string(raw))
	}
	_ = c.store.Set(ctx, KeyCurrent, strconv.Itoa(c.current))
}

func (c *Controller) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *Controller) Assessment() *Assessment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.assessment
}

func (c *Controller) PaletteState(index int) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.answers) {
		return PaletteNotVisited
	}
	switch {
	case index == c.current:
		return PaletteCurrent
	case c.answers[index] != nil:
		return PaletteAnswered
	case c.visited[index]:
		return PaletteVisited
	default:
		return PaletteNotVisited
	}
}

// Submit sends the terminal submission. The first caller to flip the
// in-flight guard wins; a racing manual click and expiry tick produce one
// network write between them. On gate failure the guard resets and the
// persisted state stays intact so the user can retry; on success all five
// session keys are cleared together.
func (c *Controller) Submit(ctx context.Context, auto bool) (*Result, error) {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if c.submitting || c.submitted {
		c.mu.Unlock()
		return nil, ErrAlreadySubmitted
	}
	c.submitting = true

	answers := make([]*string, len(c.answers))
	copy(answers, c.answers)
	timeSpent := int((c.clock.Now().UnixMilli() - c.startMillis) / 1000)
	c.mu.Unlock()

	result, err := c.gate.Submit(ctx, SubmitRequest{
		Answers:   answers,
		TimeSpent: timeSpent,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.submitting = false
		return nil, err
	}

	c.submitting = false
	c.submitted = true
	c.auto = auto
	_ = c.store.Del(ctx, sessionKeys...)
	return result, nil
}

func (c *Controller) Submitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted
}

// AutoSubmitted reports whether the terminal submission was fired by the
// expiry path rather than a manual click.
func (c *Controller) AutoSubmitted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitted && c.auto
}
