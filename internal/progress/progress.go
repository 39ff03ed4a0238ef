// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/apex/log"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/atomic"
)

// Progress receives collection progress. Collectors call Advance from
// several goroutines, so implementations must be safe for concurrent use.
type Progress interface {
	// Begin starts a run of total steps labelled with prefix.
	Begin(prefix string, total int)
	// Describe sets the current step's message.
	Describe(status string)
	// Advance marks one step done.
	Advance()
	// Finish ends the run.
	Finish()
}

// Nop discards progress.
type Nop struct{}

func (Nop) Begin(string, int) {}
func (Nop) Describe(string)   {}
func (Nop) Advance()          {}
func (Nop) Finish()           {}

// OrNop returns p, or Nop when p is nil.
func OrNop(p Progress) Progress {
	if p == nil {
		return Nop{}
	}
	return p
}

// Bar draws a progress bar, by default on stderr so that results on stdout
// stay clean.
// The underlying bar is not safe for concurrent Describe and Add calls, so
// every method holds mu.
type Bar struct {
	mu     sync.Mutex
	w      io.Writer
	bar    *progressbar.ProgressBar
	prefix string
}

// NewBar returns a Bar writing to w, or to stderr when w is nil.
func NewBar(w io.Writer) *Bar {
	if w == nil {
		w = os.Stderr
	}
	return &Bar{w: w}
}

func (b *Bar) Begin(prefix string, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.prefix = prefix
	b.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(fmt.Sprintf("[%s]", prefix)),
		progressbar.OptionShowCount(),
		progressbar.OptionSetElapsedTime(true),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
		progressbar.OptionClearOnFinish(),
	)
}

func (b *Bar) Describe(status string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	b.bar.Describe(fmt.Sprintf("[%s] %-24s", b.prefix, status))
}

func (b *Bar) Advance() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	_ = b.bar.Add(1)
}

func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	b.bar = nil
}

// Log reports progress as debug log lines. It is used when stderr is not a
// terminal and a bar would only produce noise.
type Log struct {
	prefix  string
	total   int
	current *atomic.Int32
}

func NewLog() *Log {
	return &Log{current: atomic.NewInt32(0)}
}

func (l *Log) Begin(prefix string, total int) {
	l.prefix = prefix
	l.total = total
	l.current.Store(0)
	log.Debugf("[%s] collecting %d collections", prefix, total)
}

func (l *Log) Describe(status string) {
	log.Debugf("[%s] %s", l.prefix, status)
}

func (l *Log) Advance() {
	n := l.current.Inc()
	log.Debugf("[%d/%d %s]", n, l.total, l.prefix)
}

func (l *Log) Finish() {
	log.Debugf("[%s] done (%d/%d)", l.prefix, l.current.Load(), l.total)
}

// Current returns the number of steps advanced since Begin.
func (l *Log) Current() int {
	return int(l.current.Load())
}

type numbered struct {
	Progress
	n, of int
}

// Numbered labels every run of p with its position among of runs, e.g.
// "2/5 us-west-2".
func Numbered(p Progress, n, of int) Progress {
	return numbered{Progress: OrNop(p), n: n, of: of}
}

func (p numbered) Begin(prefix string, total int) {
	p.Progress.Begin(fmt.Sprintf("%d/%d %s", p.n, p.of, prefix), total)
}
