// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/fatih/color"
	"golang.org/x/term"
)

// LevelEnv holds the log level, e.g. debug or info. ERROR when unset.
const LevelEnv = "AWARE_LOG"

// InitLogger sets up Apex with a custom handler writing to stderr and a log
// level from the AWARE_LOG env variable.
func InitLogger() {
	level := strings.ToUpper(os.Getenv(LevelEnv))
	if level == "" {
		level = "ERROR"
	}
	log.SetHandler(NewHandler(os.Stderr, term.IsTerminal(int(os.Stderr.Fd()))))
	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		log.SetLevel(log.ErrorLevel)
		log.Errorf("invalid %s %q, using error", LevelEnv, level)
		return
	}
	log.SetLevel(l)
}

var levelColors = map[log.Level]*color.Color{
	log.DebugLevel: color.New(color.FgHiBlack),
	log.InfoLevel:  color.New(color.FgCyan),
	log.WarnLevel:  color.New(color.FgYellow),
	log.ErrorLevel: color.New(color.FgRed),
	log.FatalLevel: color.New(color.FgRed, color.Bold),
}

// CustomHandler formats log messages as "timestamp L message".
type CustomHandler struct {
	w     io.Writer
	color bool
	now   func() time.Time
}

// NewHandler returns a handler writing to w. The level letter is coloured
// when colour is true.
func NewHandler(w io.Writer, colour bool) *CustomHandler {
	return &CustomHandler{w: w, color: colour, now: time.Now}
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := h.now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())[:1]
	if c, ok := levelColors[e.Level]; ok && h.color {
		level = c.Sprint(level)
	}

	message := e.Message
	for _, k := range e.Fields.Names() {
		message += fmt.Sprintf(" %s=%v", k, e.Fields.Get(k))
	}

	_, err := fmt.Fprintf(h.w, "%s %s %s\n", timestamp, level, message)
	return err
}
