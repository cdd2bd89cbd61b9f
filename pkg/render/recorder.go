package render

import (
	"sync"

	"github.com/lmi/i2cdecode"
)

// Recorder keeps every reading in memory.
type Recorder struct {
	mu       sync.Mutex
	readings []i2cdecode.Reading
	notices  []i2cdecode.Notice
}

func (r *Recorder) Put(rd i2cdecode.Reading) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append(r.readings, rd)
}

func (r *Recorder) Notice(n i2cdecode.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *Recorder) Readings() []i2cdecode.Reading {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]i2cdecode.Reading(nil), r.readings...)
}

func (r *Recorder) Notices() []i2cdecode.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]i2cdecode.Notice(nil), r.notices...)
}

// Lines formats every reading with Format.
func (r *Recorder) Lines(width int) []string {
	readings := r.Readings()
	out := make([]string, len(readings))
	for i, rd := range readings {
		out[i] = Format(rd, width)
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = nil
	r.notices = nil
}
