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

package benchlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesEveryResult(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	l, err := New(dir, "run", now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run_20250304_050607.json"), l.Path())

	empty, err := Load(l.Path())
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, l.Log(Result{Strategy: "fma", M: 2, N: 2, K: 2, Status: StatusPass, Timestamp: now}))
	require.NoError(t, l.Log(Result{Strategy: "naive", Status: StatusFail, Error: "boom"}))

	got, err := Load(l.Path())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "run", got[0].Session)
	assert.Equal(t, "fma", got[0].Strategy)
	assert.True(t, got[0].Timestamp.Equal(now))
	assert.False(t, got[1].Timestamp.IsZero(), "Log stamps missing timestamps")
	assert.Equal(t, "boom", got[1].Error)
	assert.Len(t, l.Results(), 2)
}

func TestLatest(t *testing.T) {
	dir := t.TempDir()
	_, err := Latest(dir)
	require.ErrorIs(t, err, ErrNoLogs)

	old, err := New(dir, "a", time.Unix(0, 0))
	require.NoError(t, err)
	newer, err := New(dir, "b", time.Unix(60, 0))
	require.NoError(t, err)

	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old.Path(), past, past))

	latest, err := Latest(dir)
	require.NoError(t, err)
	assert.Equal(t, newer.Path(), latest)
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestNewSameSecondDoesNotOverwrite(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2025, 3, 4, 5, 6, 7, 0, time.UTC)

	first, err := New(dir, "run", now)
	require.NoError(t, err)
	second, err := New(dir, "run", now)
	require.NoError(t, err)
	third, err := New(dir, "run", now)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "run_20250304_050607.json"), first.Path())
	assert.Equal(t, filepath.Join(dir, "run_20250304_050607_1.json"), second.Path())
	assert.Equal(t, filepath.Join(dir, "run_20250304_050607_2.json"), third.Path())

	require.NoError(t, first.Log(Result{Strategy: "fma", Status: StatusPass}))
	require.NoError(t, second.Log(Result{Strategy: "naive", Status: StatusPass}))

	got, err := Load(first.Path())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fma", got[0].Strategy)

	got, err = Load(second.Path())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "naive", got[0].Strategy)
}
