package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: map[string]string{}}
}

func (s *memStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	val, ok := s.data[key]
	if !ok {
		return "", ErrKeyNotFound
	}
	return val, nil
}

func (s *memStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.data, k)
	}
	return nil
}

func (s *memStore) snapshot() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.data))
	for k, v := range s.data {
		out[k] = v
	}
	return out
}

type fakeGate struct {
	mu          sync.Mutex
	fetch       *FetchResponse
	submitCalls int
	submitErr   error
	submitGate  chan struct{} // when set, Submit blocks until closed
	result      *Result
}

func (g *fakeGate) FetchForStudent(ctx context.Context) (*FetchResponse, error) {
	return g.fetch, nil
}

func (g *fakeGate) Submit(ctx context.Context, req SubmitRequest) (*Result, error) {
	g.mu.Lock()
	g.submitCalls++
	err := g.submitErr
	block := g.submitGate
	result := g.result
	g.mu.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (g *fakeGate) Result(ctx context.Context) (*Result, error) {
	return g.result, nil
}

func (g *fakeGate) calls() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.submitCalls
}

func openFetch(questionCount, timePerQuestion int) *FetchResponse {
	questions := make([]Question, questionCount)
	for i := range questions {
		questions[i] = Question{
			Question: "q",
			Options:  []string{"A", "B", "C", "D"},
			Category: "logical",
		}
	}
	return &FetchResponse{
		Assessment: &Assessment{
			ID:              1,
			BatchID:         "B-1",
			Categories:      []string{"logical"},
			TimePerQuestion: timePerQuestion,
			Questions:       questions,
		},
		TimePerQuestion: timePerQuestion,
	}
}

func newTestController(questionCount, timePerQuestion int) (*Controller, *fakeClock, *memStore, *fakeGate) {
	clock := newFakeClock()
	store := newMemStore()
	gate := &fakeGate{
		fetch:  openFetch(questionCount, timePerQuestion),
		result: &Result{OverallPercentage: 50},
	}
	return New(clock, store, gate), clock, store, gate
}

func TestLoadLockedPassesReasonThrough(t *testing.T) {
	clock := newFakeClock()
	store := newMemStore()
	gate := &fakeGate{fetch: &FetchResponse{Locked: true, Reason: "Join batch first"}}
	c := New(clock, store, gate)

	res, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Locked)
	assert.Equal(t, "Join batch first", res.Reason)
	assert.Empty(t, store.snapshot())
}

func TestLoadFreshSessionPersistsTimer(t *testing.T) {
	c, clock, store, _ := newTestController(10, 60)

	res, err := c.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Locked)
	assert.False(t, res.AutoSubmitted)

	data := store.snapshot()
	assert.Equal(t, "600", data[KeyDuration])
	assert.Contains(t, data, KeyStartTime)
	assert.Equal(t, "0", data[KeyCurrent])

	assert.Equal(t, 600, c.Remaining())
	clock.Advance(90 * time.Second)
	assert.Equal(t, 510, c.Remaining())
}

func TestReloadRestoresStateAndTimer(t *testing.T) {
	c, clock, store, gate := newTestController(5, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SelectAnswer(ctx, "B"))
	require.NoError(t, c.Next(ctx))
	require.NoError(t, c.SelectAnswer(ctx, "C"))
	clock.Advance(2 * time.Minute)

	// Simulate a page reload: fresh controller, same store and clock.
	c2 := New(clock, store, gate)
	_, err = c2.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, 180, c2.Remaining())
	assert.Equal(t, 1, c2.Current())
	assert.Equal(t, PaletteAnswered, c2.PaletteState(0))
	assert.Equal(t, PaletteCurrent, c2.PaletteState(1))
	assert.Equal(t, PaletteNotVisited, c2.PaletteState(2))
}

func TestRemainingIgnoresMissedTicks(t *testing.T) {
	c, clock, _, _ := newTestController(2, 60)

	_, err := c.Load(context.Background())
	require.NoError(t, err)

	// A suspended tab fires no ticks; the countdown still follows the
	// wall clock.
	clock.Advance(45 * time.Second)
	assert.Equal(t, 75, c.Remaining())
	clock.Advance(5 * time.Minute)
	assert.Equal(t, 0, c.Remaining())
}

func TestSelectAnswerPersistsImmediately(t *testing.T) {
	c, _, store, _ := newTestController(3, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, c.SelectAnswer(ctx, "A"))

	var saved []*string
	require.NoError(t, json.Unmarshal([]byte(store.snapshot()[KeyAnswers]), &saved))
	require.Len(t, saved, 3)
	require.NotNil(t, saved[0])
	assert.Equal(t, "A", *saved[0])
	assert.Nil(t, saved[1])

	// Re-selecting overwrites in place.
	require.NoError(t, c.SelectAnswer(ctx, "D"))
	require.NoError(t, json.Unmarshal([]byte(store.snapshot()[KeyAnswers]), &saved))
	assert.Equal(t, "D", *saved[0])
}

func TestNavigationBoundsAndPalette(t *testing.T) {
	c, _, _, _ := newTestController(3, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)

	require.NoError(t, c.Prev(ctx))
	assert.Equal(t, 0, c.Current())

	require.NoError(t, c.JumpTo(ctx, 2))
	assert.Equal(t, 2, c.Current())
	require.NoError(t, c.Next(ctx))
	assert.Equal(t, 2, c.Current())

	assert.Equal(t, PaletteVisited, c.PaletteState(0))
	assert.Equal(t, PaletteNotVisited, c.PaletteState(1))
	assert.Equal(t, PaletteCurrent, c.PaletteState(2))
}

func TestSubmitClearsAllKeys(t *testing.T) {
	c, _, store, gate := newTestController(3, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, c.SelectAnswer(ctx, "A"))

	result, err := c.Submit(ctx, false)
	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 1, gate.calls())
	assert.True(t, c.Submitted())
	assert.False(t, c.AutoSubmitted())
	assert.Empty(t, store.snapshot())
}

func TestSubmitFailureKeepsStateAndAllowsRetry(t *testing.T) {
	c, _, store, gate := newTestController(3, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, c.SelectAnswer(ctx, "A"))

	gate.submitErr = errors.New("network down")
	_, err = c.Submit(ctx, false)
	require.Error(t, err)
	assert.False(t, c.Submitted())
	assert.Contains(t, store.snapshot(), KeyAnswers)
	assert.Contains(t, store.snapshot(), KeyStartTime)

	gate.submitErr = nil
	_, err = c.Submit(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, gate.calls())
	assert.True(t, c.Submitted())
	assert.Empty(t, store.snapshot())
}

func TestSecondSubmitRejected(t *testing.T) {
	c, _, _, gate := newTestController(2, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)

	_, err = c.Submit(ctx, false)
	require.NoError(t, err)

	_, err = c.Submit(ctx, true)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.Equal(t, 1, gate.calls())
}

func TestConcurrentManualAndAutoSubmitOneWrite(t *testing.T) {
	c, _, _, gate := newTestController(2, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = c.Submit(ctx, false)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = c.Submit(ctx, true)
	}()
	wg.Wait()

	assert.Equal(t, 1, gate.calls())
	succeeded := 0
	for _, e := range errs {
		if e == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, e, ErrAlreadySubmitted)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.True(t, c.Submitted())
}

func TestExpiredReloadAutoSubmits(t *testing.T) {
	c, clock, store, gate := newTestController(2, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, c.SelectAnswer(ctx, "A"))

	clock.Advance(3 * time.Minute)

	// Reload after expiry: the restored session fires immediately.
	c2 := New(clock, store, gate)
	res, err := c2.Load(ctx)
	require.NoError(t, err)
	assert.True(t, res.AutoSubmitted)
	assert.NotNil(t, res.Result)
	assert.Equal(t, 1, gate.calls())
	assert.True(t, c2.AutoSubmitted())
	assert.Empty(t, store.snapshot())
}

func TestDoubleLoadAfterExpirySubmitsOnce(t *testing.T) {
	c, clock, store, gate := newTestController(2, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)
	clock.Advance(3 * time.Minute)

	// A double-mounted page runs Load twice. The first run hangs inside
	// the gate; the second finds the in-flight guard set and reports the
	// auto-submission without a second network write.
	release := make(chan struct{})
	gate.submitGate = release

	done := make(chan *LoadResult, 1)
	go func() {
		res, loadErr := c.Load(ctx)
		require.NoError(t, loadErr)
		done <- res
	}()

	// Wait until the first run is inside the gate call.
	require.Eventually(t, func() bool { return gate.calls() == 1 }, time.Second, time.Millisecond)

	res2, err := c.Load(ctx)
	require.NoError(t, err)
	assert.True(t, res2.AutoSubmitted)
	assert.Nil(t, res2.Result)

	close(release)
	res1 := <-done
	assert.True(t, res1.AutoSubmitted)
	assert.NotNil(t, res1.Result)

	assert.Equal(t, 1, gate.calls())
	assert.Empty(t, store.snapshot())
}

func TestInteractionRejectedAfterSubmit(t *testing.T) {
	c, _, _, _ := newTestController(2, 60)
	ctx := context.Background()

	_, err := c.Load(ctx)
	require.NoError(t, err)
	_, err = c.Submit(ctx, false)
	require.NoError(t, err)

	err = c.SelectAnswer(ctx, "A")
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
}
