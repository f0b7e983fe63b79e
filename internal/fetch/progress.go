// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"fmt"
	"io"
	"sync"
)

// Progress counts finished fetches for one batch. Every update prints both
// running totals while holding the lock.
type Progress struct {
	mu        sync.Mutex
	completed int
	notFound  int
	total     int
	w         io.Writer
}

func newProgress(total int, w io.Writer) *Progress {
	return &Progress{total: total, w: w}
}

// Record counts one fetch as downloaded (found) or not found and prints
// the running totals.
func (p *Progress) Record(found bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if found {
		p.completed++
	} else {
		p.notFound++
	}
	fmt.Fprintf(p.w, "%d/%d files downloaded\n", p.completed, p.total)
	fmt.Fprintf(p.w, "%d/%d files not found\n", p.notFound, p.total)
}

// Snapshot returns the current counters.
func (p *Progress) Snapshot() (completed, notFound, total int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completed, p.notFound, p.total
}

// syncWriter serializes writes from concurrent workers.
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
