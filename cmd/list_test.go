package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/cristianoliveira/cliptray/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runList(t *testing.T, fake *fakeHistory, args ...string) (string, error) {
	t.Helper()
	captureConsole(t)
	cmd := NewListCmd(fake.open)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestListPrintsNewestFirst(t *testing.T) {
	fake := newFakeHistory(t, "first", "https://example.com", "third")

	out, err := runList(t, fake)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "third")
	assert.Contains(t, lines[1], "URL")
	assert.Contains(t, lines[1], "https://example.com")
	assert.Contains(t, lines[2], "first")
	assert.Equal(t, 1, fake.closed)
}

func TestListLimitAndSearch(t *testing.T) {
	fake := newFakeHistory(t, "alpha one", "beta", "alpha two", "alpha three")

	out, err := runList(t, fake, "--search", "ALPHA", "--limit", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "alpha three")
	assert.Contains(t, lines[1], "alpha two")
}

func TestListRegex(t *testing.T) {
	fake := newFakeHistory(t, "https://go.dev", "see https://go.dev", "plain")

	out, err := runList(t, fake, "--regex", "--search", `^HTTPS://`)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "https://go.dev")
	assert.NotContains(t, lines[0], "see")

	_, err = runList(t, fake, "--regex", "--search", "([")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid search pattern")
}

func TestListEmpty(t *testing.T) {
	out, err := runList(t, newFakeHistory(t))
	require.NoError(t, err)
	assert.Equal(t, "No clipboard history\n", out)
}

func TestListRejectsNegativeLimit(t *testing.T) {
	fake := newFakeHistory(t, "x")
	_, err := runList(t, fake, "--limit", "-1")
	require.Error(t, err)
	assert.Zero(t, fake.closed, "history is not opened for invalid flags")
}

func TestListOpenError(t *testing.T) {
	fake := newFakeHistory(t)
	fake.openErr = errors.New("disk on fire")
	_, err := runList(t, fake)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list: open history: disk on fire")
}

func TestPrintListIDs(t *testing.T) {
	manager, err := history.NewManager()
	require.NoError(t, err)
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	item := history.NewTextItem("multi\nline   text", now.Add(-2*time.Minute))
	require.NoError(t, manager.Add(item))

	var short, full bytes.Buffer
	PrintList(&short, manager, ListOptions{Now: now})
	PrintList(&full, manager, ListOptions{Now: now, FullIDs: true})

	assert.True(t, strings.HasPrefix(short.String(), item.ID[:shortIDLength]+"  "))
	assert.NotContains(t, short.String(), item.ID)
	assert.True(t, strings.HasPrefix(full.String(), item.ID+"  "))
	assert.Contains(t, short.String(), "2 minutes ago")
	assert.Contains(t, short.String(), "multi line text")
}

func TestResolveItem(t *testing.T) {
	manager, err := history.NewManager()
	require.NoError(t, err)
	at := time.Now()
	for _, item := range []history.Item{
		{ID: "abc-111", Text: "one", Type: history.TypeText, Timestamp: at},
		{ID: "abc-222", Text: "two", Type: history.TypeText, Timestamp: at},
		{ID: "def-333", Text: "three", Type: history.TypeText, Timestamp: at},
	} {
		require.NoError(t, manager.Add(item))
	}

	got, err := resolveItem(manager, "abc-222")
	require.NoError(t, err)
	assert.Equal(t, "two", got.Text)

	got, err = resolveItem(manager, "def")
	require.NoError(t, err)
	assert.Equal(t, "three", got.Text)

	_, err = resolveItem(manager, "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")

	_, err = resolveItem(manager, "zzz")
	assert.ErrorIs(t, err, history.ErrItemNotFound)

	_, err = resolveItem(manager, "  ")
	assert.ErrorIs(t, err, history.ErrInvalidItemID)
}
