// Package memo caches named values for a bounded lifetime: a wall-clock
// timeout, the current frame, or forever.
//
// Values are keyed by name only. Reading a name with a different type than
// it was stored with recomputes the value.
package memo

import (
	"sync"
	"sync/atomic"
	"time"
)

// DefaultTimeout is the lifetime of ByTime values
const DefaultTimeout = 2 * time.Second

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time { return f() }

// FrameSource supplies the current frame number
type FrameSource interface {
	Frame() int64
}

// FrameCounter is a FrameSource advanced by the host loop
type FrameCounter struct {
	frame atomic.Int64
}

// Frame implements FrameSource
func (f *FrameCounter) Frame() int64 { return f.frame.Load() }

// Advance moves to the next frame and returns it
func (f *FrameCounter) Advance() int64 { return f.frame.Add(1) }

// Option configures a Cache
type Option func(*Cache)

// WithClock sets the clock used by ByTime
func WithClock(clock Clock) Option {
	return func(c *Cache) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithFrameSource sets the frame source used by ByFrame
func WithFrameSource(frames FrameSource) Option {
	return func(c *Cache) {
		if frames != nil {
			c.frames = frames
		}
	}
}

// WithTimeout sets the ByTime lifetime. Non-positive values are ignored.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Cache) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

type timedEntry struct {
	value any
	at    time.Time
}

type frameEntry struct {
	value any
	frame int64
}

// Cache holds memoized values. It is safe for concurrent use; compute
// functions run outside the lock and may use the cache themselves.
type Cache struct {
	mu      sync.Mutex
	clock   Clock
	frames  FrameSource
	timeout time.Duration

	timed   map[string]timedEntry
	framed  map[string]frameEntry
	forever map[string]any

	hits   atomic.Int64
	misses atomic.Int64
}

// New creates an empty cache. Without options it uses the wall clock and
// its own FrameCounter.
func New(opts ...Option) *Cache {
	c := &Cache{
		clock:   ClockFunc(time.Now),
		frames:  &FrameCounter{},
		timeout: DefaultTimeout,
		timed:   make(map[string]timedEntry),
		framed:  make(map[string]frameEntry),
		forever: make(map[string]any),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Timeout returns the ByTime lifetime
func (c *Cache) Timeout() time.Duration {
	return c.timeout
}

// Frames returns the frame source
func (c *Cache) Frames() FrameSource {
	return c.frames
}

// ByTime returns the value cached under name, recomputing it once the
// default timeout has passed since it was computed
func ByTime[T any](c *Cache, name string, compute func() T) T {
	return ByTimeout(c, name, c.timeout, compute)
}

// ByTimeout is ByTime with an explicit lifetime. A value is stale when the
// clock is strictly past its compute time plus timeout.
func ByTimeout[T any](c *Cache, name string, timeout time.Duration, compute func() T) T {
	now := c.clock.Now()

	c.mu.Lock()
	entry, ok := c.timed[name]
	c.mu.Unlock()

	if ok && !now.After(entry.at.Add(timeout)) {
		if v, typed := entry.value.(T); typed {
			c.hits.Add(1)
			return v
		}
	}

	c.misses.Add(1)
	v := compute()

	c.mu.Lock()
	c.timed[name] = timedEntry{value: v, at: now}
	c.mu.Unlock()

	return v
}

// ByFrame returns the value cached under name for the current frame
func ByFrame[T any](c *Cache, name string, compute func() T) T {
	frame := c.frames.Frame()

	c.mu.Lock()
	entry, ok := c.framed[name]
	c.mu.Unlock()

	if ok && entry.frame == frame {
		if v, typed := entry.value.(T); typed {
			c.hits.Add(1)
			return v
		}
	}

	c.misses.Add(1)
	v := compute()

	c.mu.Lock()
	c.framed[name] = frameEntry{value: v, frame: frame}
	c.mu.Unlock()

	return v
}

// Once computes the value for name the first time it is requested and
// keeps it until Invalidate or Clear
func Once[T any](c *Cache, name string, compute func() T) T {
	c.mu.Lock()
	value, ok := c.forever[name]
	c.mu.Unlock()

	if ok {
		if v, typed := value.(T); typed {
			c.hits.Add(1)
			return v
		}
	}

	c.misses.Add(1)
	v := compute()

	c.mu.Lock()
	c.forever[name] = v
	c.mu.Unlock()

	return v
}

// Key joins a category and a name the way Once callers scope their values
func Key(category, name string) string {
	return category + "." + name
}

// Invalidate drops every value cached under name
func (c *Cache) Invalidate(name string) {
	c.mu.Lock()
	delete(c.timed, name)
	delete(c.framed, name)
	delete(c.forever, name)
	c.mu.Unlock()
}

// Clear drops every cached value. Counters are kept.
func (c *Cache) Clear() {
	c.mu.Lock()
	c.timed = make(map[string]timedEntry)
	c.framed = make(map[string]frameEntry)
	c.forever = make(map[string]any)
	c.mu.Unlock()
}

// Len returns the number of cached entries across all lifetimes
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timed) + len(c.framed) + len(c.forever)
}

// Stats is a snapshot of the cache counters
type Stats struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
}

// HitRatio returns hits over lookups, zero before the first lookup
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// Stats returns the current counters
func (c *Cache) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}
