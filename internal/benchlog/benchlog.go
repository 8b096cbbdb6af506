// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package benchlog records benchmark results of a mullerbench session as a
// JSON array, rewritten after every result so a crash loses nothing.
package benchlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Status values of a Result.
const (
	StatusPass  = "pass"
	StatusFail  = "fail"
	StatusError = "error"
)

// Result is one strategy measured on one problem size.
type Result struct {
	Session   string    `json:"session"`
	Strategy  string    `json:"strategy"`
	M         int       `json:"m"`
	N         int       `json:"n"`
	K         int       `json:"k"`
	Reps      int       `json:"reps"`
	NsPerOp   float64   `json:"ns_per_op,omitempty"`
	GFLOPS    float64   `json:"gflops,omitempty"`
	Status    string    `json:"status"`
	MaxAbsErr float64   `json:"max_abs_err"`
	MaxULP    uint64    `json:"max_ulp"`
	Platform  string    `json:"platform"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// ErrNoLogs is returned by Latest when dir holds no session files.
var ErrNoLogs = errors.New("benchlog: no log files found")

// Logger appends results to one session file.
type Logger struct {
	mu      sync.Mutex
	session string
	path    string
	results []Result
}

// maxSuffix bounds the _N suffixes tried for one session and second.
const maxSuffix = 1000

// New creates dir if needed and starts the session file
// <session>_<YYYYMMDD_HHMMSS>.json in it. If that file exists, _1, _2, ...
// is appended to the name.
func New(dir, session string, now time.Time) (*Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	path, err := claim(dir, fmt.Sprintf("%s_%s", session, now.Format("20060102_150405")))
	if err != nil {
		return nil, err
	}
	l := &Logger{session: session, path: path}
	if err := l.flush(); err != nil {
		return nil, err
	}
	return l, nil
}

// Path returns the session file.
func (l *Logger) Path() string { return l.path }

// Session returns the session name given to New.
func (l *Logger) Session() string { return l.session }

// Log stamps r with the session (and the current time if unset), appends it
// and rewrites the file.
func (l *Logger) Log(r Result) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	r.Session = l.session
	if r.Timestamp.IsZero() {
		r.Timestamp = time.Now()
	}
	l.results = append(l.results, r)
	return l.flush()
}

// Results returns a copy of the results logged so far.
func (l *Logger) Results() []Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Result(nil), l.results...)
}

func (l *Logger) flush() error {
	results := l.results
	if results == nil {
		results = []Result{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	return os.WriteFile(l.path, data, 0o644)
}

// claim creates the first of base.json, base_1.json, ... that does not exist.
func claim(dir, base string) (string, error) {
	for n := range maxSuffix {
		name := base + ".json"
		if n > 0 {
			name = fmt.Sprintf("%s_%d.json", base, n)
		}
		path := filepath.Join(dir, name)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create log file: %w", err)
		}
		return path, f.Close()
	}
	return "", fmt.Errorf("failed to create log file: %s_%d.json exists", base, maxSuffix-1)
}

// Load reads a session file.
func Load(path string) ([]Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var results []Result
	if err := json.Unmarshal(data, &results); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return results, nil
}

// Latest returns the most recently modified session file in dir.
func Latest(dir string) (string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return "", err
	}

	var latest string
	var latestTime time.Time
	for _, file := range files {
		info, err := os.Stat(file)
		if err != nil {
			continue
		}
		if latest == "" || info.ModTime().After(latestTime) {
			latest = file
			latestTime = info.ModTime()
		}
	}
	if latest == "" {
		return "", ErrNoLogs
	}
	return latest, nil
}
