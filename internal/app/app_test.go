package app

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appLog "github.com/rdo34/notebook/internal/log"
	"github.com/rdo34/notebook/internal/model"
	"github.com/rdo34/notebook/internal/store"
)

func rec(date, time, desc string) model.Record {
	return model.Record{Date: date, Time: time, Description: desc}
}

func newApp() *App {
	return New(store.NewFSStoreFS(memfs.New()))
}

func descriptions(records []model.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Description)
	}
	return out
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-03", "08:00", "c"))
	a.Add(rec("2024-01-01", "08:00", "a"))
	a.Add(rec("2024-01-02", "08:00", "b"))

	assert.Equal(t, []string{"c", "a", "b"}, descriptions(a.Records()))
	assert.Equal(t, 3, a.Len())
}

func TestAddKeepsDuplicates(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-01", "08:00", "same"))
	a.Add(rec("2024-01-01", "08:00", "same"))
	assert.Equal(t, 2, a.Len())
}

func TestRecordsForDay(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-02", "12:00", "lunch"))
	a.Add(rec("2024-01-01", "10:00", "call"))
	a.Add(rec("2024-01-02", "09:00", "meeting"))
	a.Add(rec("2024-01-02 ", "09:00", "trailing space"))

	got := a.RecordsForDay("2024-01-02")
	assert.Equal(t, []string{"lunch", "meeting"}, descriptions(got))

	// the result is a copy, not a view
	got[0].Description = "changed"
	assert.Equal(t, "lunch", a.Records()[0].Description)
}

func TestRecordsForDayNoMatch(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-01", "10:00", "call"))

	got := a.RecordsForDay("2024-02-01")
	assert.NotNil(t, got)
	assert.Empty(t, got)

	assert.Empty(t, newApp().RecordsForDay("2024-01-01"))
}

func TestDeleteRemovesAllMatches(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-01", "10:00", "call"))
	a.Add(rec("2024-01-01", "11:00", "call"))
	a.Add(rec("2024-01-01", "10:00", "call"))
	a.Add(rec("2024-01-01", "10:00", "Call"))

	before := a.Len()
	removed := a.Delete("2024-01-01", "10:00", "call")
	assert.Equal(t, 2, removed)
	assert.Equal(t, before-removed, a.Len())
	assert.Equal(t, []model.Record{
		rec("2024-01-01", "11:00", "call"),
		rec("2024-01-01", "10:00", "Call"),
	}, a.Records())
}

func TestDeleteNoMatch(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-01", "10:00", "call"))

	assert.Equal(t, 0, a.Delete("2024-01-01", "10:00", "other"))
	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 0, newApp().Delete("x", "y", "z"))
}

func TestSortIsStable(t *testing.T) {
	a := newApp()
	a.Add(rec("b", "2", "x"))
	a.Add(rec("a", "1", "y"))
	a.Add(rec("a", "1", "z"))

	a.Sort()
	assert.Equal(t, []string{"y", "z", "x"}, descriptions(a.Records()))
}

func TestSortIsIdempotent(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-10", "09:00", "d"))
	a.Add(rec("2024-01-02", "18:00", "c"))
	a.Add(rec("2024-01-02", "08:00", "b"))
	a.Add(rec("2024-01-02", "08:00", "a"))

	a.Sort()
	first := a.Records()
	a.Sort()
	assert.Equal(t, first, a.Records())
	assert.Equal(t, []string{"b", "a", "c", "d"}, descriptions(first))
}

func TestSortIsLexicographic(t *testing.T) {
	a := newApp()
	// "10/01/2024" sorts after "09/02/2024" even though it is the earlier
	// date in day/month/year order.
	a.Add(rec("10/01/2024", "09:00", "january"))
	a.Add(rec("09/02/2024", "09:00", "february"))
	a.Add(rec("2024-01-01", "9:00", "nine"))
	a.Add(rec("2024-01-01", "10:00", "ten"))

	a.Sort()
	assert.Equal(t, []string{"february", "january", "ten", "nine"}, descriptions(a.Records()))
}

func TestScenario(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-02", "09:00", "Meeting"))
	a.Add(rec("2024-01-01", "10:00", "Call"))

	day := a.RecordsForDay("2024-01-02")
	require.Len(t, day, 1)
	assert.Equal(t, "Meeting", day[0].Description)

	a.Sort()
	assert.Equal(t, []string{"Call", "Meeting"}, descriptions(a.Records()))
}

func TestReplaceAll(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-01", "10:00", "old"))

	in := []model.Record{rec("b", "1", "second"), rec("a", "1", "first")}
	a.ReplaceAll(in)
	assert.Equal(t, in, a.Records())

	// the caller's slice is not shared
	in[0].Description = "mutated"
	assert.Equal(t, "second", a.Records()[0].Description)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-02", "09:00", "Meeting"))
	a.Add(rec("2024-01-01", "10:00", "Call"))
	a.Add(rec("2024-01-01", "10:00", "Call"))
	want := a.Records()

	require.NoError(t, a.Save("notes.json"))

	b := New(a.Store)
	b.Add(rec("2030-01-01", "00:00", "replaced"))
	require.NoError(t, b.Load("notes.json"))
	assert.Equal(t, want, b.Records())
}

func TestSaveLoadEmpty(t *testing.T) {
	a := newApp()
	require.NoError(t, a.Save("empty.json"))

	b := New(a.Store)
	b.Add(rec("2024-01-01", "10:00", "will be dropped"))
	require.NoError(t, b.Load("empty.json"))
	assert.Equal(t, 0, b.Len())
}

func TestLoadMissingLeavesStoreUntouched(t *testing.T) {
	a := newApp()
	a.Add(rec("2024-01-01", "10:00", "keep"))

	err := a.Load("missing.json")
	var nf *store.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, []model.Record{rec("2024-01-01", "10:00", "keep")}, a.Records())
}

func TestLoadMalformedLeavesStoreUntouched(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "bad.json", []byte(`{"not": "an array"}`), 0o644))
	a := New(store.NewFSStoreFS(fs))
	a.Add(rec("2024-01-01", "10:00", "keep"))

	err := a.Load("bad.json")
	var pe *store.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, 1, a.Len())
}

type failingStore struct{ err error }

func (f failingStore) Load(string) ([]model.Record, error) { return nil, f.err }
func (f failingStore) Save(string, []model.Record) error { return f.err }

func TestSavePropagatesStoreError(t *testing.T) {
	boom := &store.WriteError{Path: "x.json", Err: errors.New("disk full")}
	a := New(failingStore{err: boom})
	a.Add(rec("2024-01-01", "10:00", "call"))

	err := a.Save("x.json")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, a.Len())
}

func TestFailedLoadIsQuietAtDefaultLevel(t *testing.T) {
	var buf bytes.Buffer
	appLog.SetOutput(&buf)
	appLog.SetLevel(appLog.LevelError)

	a := newApp()
	require.Error(t, a.Load("missing.json"))
	require.Error(t, New(failingStore{err: errors.New("disk full")}).Save("x.json"))

	// the front-end reports these; nothing goes to the log
	assert.Empty(t, buf.String())
}
