package engine

import (
	"sync"
	"time"
)

const (
	defaultTraceSamples   = 240
	defaultTraceThreshold = 16667 * time.Microsecond
)

// FramePhaseTimings is the time spent in each pass of a frame, in
// milliseconds. Update and View add up over every round of the frame.
type FramePhaseTimings struct {
	InputMs  float64 `json:"inputMs"`
	UpdateMs float64 `json:"updateMs"`
	ViewMs   float64 `json:"viewMs"`
	LayoutMs float64 `json:"layoutMs"`
	RenderMs float64 `json:"renderMs"`
}

// FrameCounts is the work a frame did.
type FrameCounts struct {
	Events       int `json:"events"`
	UpdateRounds int `json:"updateRounds"`
	// Slots is the arena length, reclaimed slots included.
	Slots     int `json:"slots"`
	Nodes     int `json:"nodes,omitempty"`
	Ops       int `json:"ops"`
	Reclaimed int `json:"reclaimed,omitempty"`
}

// FrameFlags says which parts of the frame ran.
type FrameFlags struct {
	First    bool `json:"first,omitempty"`
	Resized  bool `json:"resized,omitempty"`
	Viewed   bool `json:"viewed"`
	Rendered bool `json:"rendered"`
	// Slow is set by the trace when the frame took longer than its threshold.
	Slow bool `json:"slow,omitempty"`
}

// FrameSample describes one call to [Engine.Frame].
type FrameSample struct {
	Timestamp int64             `json:"ts"`
	Frame     uint64            `json:"frame"`
	FrameMs   float64           `json:"frameMs"`
	Phases    FramePhaseTimings `json:"phases"`
	Counts    FrameCounts       `json:"counts"`
	Flags     FrameFlags        `json:"flags"`
}

// FrameTimeline is a chronological copy of the trace, as served by the
// debug server.
type FrameTimeline struct {
	Samples []FrameSample `json:"samples"`
	// Total counts every frame recorded, including those evicted.
	Total       uint64  `json:"total"`
	SlowFrames  int     `json:"slowFrames"`
	ThresholdMs float64 `json:"thresholdMs"`
}

// FrameTraceBuffer keeps the most recent frame samples. Safe for concurrent
// use: the frame loop writes while debug handlers read.
type FrameTraceBuffer struct {
	mu        sync.RWMutex
	ring      []FrameSample
	total     uint64
	slow      int
	threshold time.Duration
}

// NewFrameTraceBuffer keeps up to capacity samples (240 when zero) and
// flags frames slower than threshold (one 60Hz frame when zero).
func NewFrameTraceBuffer(capacity int, threshold time.Duration) *FrameTraceBuffer {
	if capacity <= 0 {
		capacity = defaultTraceSamples
	}
	if threshold <= 0 {
		threshold = defaultTraceThreshold
	}
	return &FrameTraceBuffer{ring: make([]FrameSample, capacity), threshold: threshold}
}

// Capacity is the number of samples kept.
func (b *FrameTraceBuffer) Capacity() int { return len(b.ring) }

// Threshold is the duration above which a frame is slow.
func (b *FrameTraceBuffer) Threshold() time.Duration { return b.threshold }

// Add stores sample, evicting the oldest one when full, and returns it with
// Flags.Slow set from took.
func (b *FrameTraceBuffer) Add(sample FrameSample, took time.Duration) FrameSample {
	sample.Flags.Slow = took > b.threshold

	b.mu.Lock()
	defer b.mu.Unlock()
	b.ring[b.total%uint64(len(b.ring))] = sample
	b.total++
	if sample.Flags.Slow {
		b.slow++
	}
	return sample
}

// Len is the number of samples currently held.
func (b *FrameTraceBuffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.held()
}

func (b *FrameTraceBuffer) held() int {
	return int(min(b.total, uint64(len(b.ring))))
}

// Snapshot copies the held samples, oldest first.
func (b *FrameTraceBuffer) Snapshot() FrameTimeline {
	b.mu.RLock()
	defer b.mu.RUnlock()

	timeline := FrameTimeline{
		Total:       b.total,
		SlowFrames:  b.slow,
		ThresholdMs: durationToMillis(b.threshold),
	}
	n := b.held()
	if n == 0 {
		return timeline
	}
	timeline.Samples = make([]FrameSample, n)
	first := b.total - uint64(n)
	for i := range n {
		timeline.Samples[i] = b.ring[(first+uint64(i))%uint64(len(b.ring))]
	}
	return timeline
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
