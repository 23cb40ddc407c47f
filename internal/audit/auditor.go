package audit

import (
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultCapacity = 50

// Recorder journals record mutations to the structured logger and keeps the
// most recent entries in memory for display.
type Recorder struct {
	logger   *zap.Logger
	mu       sync.RWMutex
	entries  []Entry
	capacity int
	seq      int
	now      func() time.Time
}

// NewRecorder creates a Recorder keeping up to capacity entries. A nil logger
// disables log output; capacity <= 0 selects the default.
func NewRecorder(logger *zap.Logger, capacity int) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if capacity <= 0 {
		capacity = defaultCapacity
	}

	return &Recorder{
		logger:   logger.Named("audit"),
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
		now:      time.Now,
	}
}

// Record journals one mutation
func (r *Recorder) Record(entity Entity, entityID string, action Action, changes map[string]Change) Entry {
	r.mu.Lock()
	r.seq++
	entry := Entry{
		ID:        fmt.Sprintf("audit_%s_%d", entityID, r.seq),
		Entity:    entity,
		EntityID:  entityID,
		Action:    action,
		Timestamp: r.now(),
		Changes:   changes,
	}

	if len(r.entries) == r.capacity {
		copy(r.entries, r.entries[1:])
		r.entries = r.entries[:len(r.entries)-1]
	}
	r.entries = append(r.entries, entry)
	r.mu.Unlock()

	fields := []zap.Field{
		zap.String("entity", string(entity)),
		zap.String("entity_id", entityID),
		zap.String("action", string(action)),
	}
	if len(changes) > 0 {
		fields = append(fields, zap.Any("changes", changes))
	}
	r.logger.Info("record mutated", fields...)

	return entry
}

// Recent returns up to n entries, newest first
func (r *Recorder) Recent(n int) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if n <= 0 || n > len(r.entries) {
		n = len(r.entries)
	}

	out := make([]Entry, 0, n)
	for i := len(r.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, r.entries[i])
	}
	return out
}

// History returns the retained entries for one record, oldest first
func (r *Recorder) History(entityID string) []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Entry
	for _, e := range r.entries {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out
}

func (r *Recorder) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}
