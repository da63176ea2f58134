package cmd

import (
	"bytes"
	"os"
	"testing"
	"time"

	"github.com/cristianoliveira/cliptray/internal/colors"
	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/stretchr/testify/require"
)

// fakeHistory hands out one manager and counts how often it was closed.
type fakeHistory struct {
	manager *history.Manager
	closed  int
	openErr error
}

func newFakeHistory(t *testing.T, texts ...string) *fakeHistory {
	t.Helper()
	manager, err := history.NewManager()
	require.NoError(t, err)
	base := time.Now().Add(-time.Hour)
	for i, text := range texts {
		require.NoError(t, manager.Add(history.NewTextItem(text, base.Add(time.Duration(i)*time.Minute))))
	}
	return &fakeHistory{manager: manager}
}

func (f *fakeHistory) open() (*history.Manager, func() error, error) {
	if f.openErr != nil {
		return nil, nil, f.openErr
	}
	return f.manager, func() error {
		f.closed++
		return nil
	}, nil
}

// captureConsole redirects colors output for the duration of the test.
func captureConsole(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	colors.SetOutput(&buf, &buf)
	colors.SetColor(false)
	t.Cleanup(func() { colors.SetOutput(os.Stdout, os.Stderr) })
	return &buf
}
