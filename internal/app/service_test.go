package app

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"

	"github.com/patrickprogramme/segscript/internal/captions"
	"github.com/patrickprogramme/segscript/internal/store"
	"github.com/patrickprogramme/segscript/internal/transcript"
)

const vid = "dQw4w9WgXcQ"

// fakeAcquirer renvoie des fragments fixes et compte les appels.
type fakeAcquirer struct {
	fragments []transcript.Fragment
	err       error
	calls     int
}

func (f *fakeAcquirer) Acquire(ctx context.Context, videoID string) (*transcript.Transcript, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return transcript.New(videoID, "English", "en", false, f.fragments), nil
}

func sampleFragments() []transcript.Fragment {
	return []transcript.Fragment{
		{Text: "hello", Start: 0, Duration: 5},
		{Text: "world", Start: 5, Duration: 5},
		{Text: "bye", Start: 10, Duration: 5},
	}
}

func newTestService(t *testing.T, acq *fakeAcquirer) (*Service, *store.FileStore) {
	t.Helper()
	st := store.New(t.TempDir())
	return NewService(st, acq, zap.NewNop()), st
}

func TestQueryScenario(t *testing.T) {
	acq := &fakeAcquirer{fragments: sampleFragments()}
	svc, st := newTestService(t, acq)
	ctx := context.Background()

	tests := []struct {
		rng  string
		want string
	}{
		{"", " hello world bye"},
		{"00:04;00:06", "hello world"},
		{"00:20;00:30", ""},
		{"0:00:10;0:00:10", "world bye"},
		{"abc", MsgInvalidRange},
		{"00:01", MsgInvalidRange},
		{"00:01;00:02;00:03", MsgInvalidRange},
	}
	for _, tt := range tests {
		if got := svc.Query(ctx, vid, tt.rng); got != tt.want {
			t.Errorf("Query(%q) = %q; want %q", tt.rng, got, tt.want)
		}
	}

	// une seule acquisition : les requêtes suivantes lisent le cache
	if acq.calls != 1 {
		t.Errorf("acquisitions = %d; want 1", acq.calls)
	}
	if ok, _ := st.Exists(vid); !ok {
		t.Error("transcript not persisted")
	}
}

func TestQueryAcceptsURL(t *testing.T) {
	acq := &fakeAcquirer{fragments: sampleFragments()}
	svc, _ := newTestService(t, acq)

	got := svc.Query(context.Background(), "https://youtu.be/"+vid, "00:11;00:12")
	if got != "bye" {
		t.Fatalf("Query = %q", got)
	}
}

func TestEnsureAvailableUsesCache(t *testing.T) {
	acq := &fakeAcquirer{err: errors.New("must not be called")}
	svc, st := newTestService(t, acq)

	stored := transcript.New(vid, "English", "en", true, sampleFragments())
	// texte complet volontairement différent : il ne doit jamais être recalculé
	stored.FullText = "cached text"
	if err := st.Save(stored); err != nil {
		t.Fatal(err)
	}

	if err := svc.EnsureAvailable(context.Background(), vid); err != nil {
		t.Fatalf("EnsureAvailable: %v", err)
	}
	if acq.calls != 0 {
		t.Fatalf("acquisitions = %d; want 0", acq.calls)
	}
	if got := svc.Query(context.Background(), vid, ""); got != "cached text" {
		t.Fatalf("Query(full) = %q", got)
	}
}

func TestFetchFailureWritesNothing(t *testing.T) {
	acq := &fakeAcquirer{err: &captions.AcquisitionError{ID: vid, Reason: captions.ReasonNoCaptions}}
	svc, st := newTestService(t, acq)
	ctx := context.Background()

	if got := svc.FetchAndCache(ctx, vid); got != StatusFailed {
		t.Fatalf("FetchAndCache = %v; want failed", got)
	}
	if got := svc.Query(ctx, vid, "00:00;00:10"); got != MsgFetchFailed {
		t.Fatalf("Query = %q; want %q", got, MsgFetchFailed)
	}
	if err := svc.EnsureAvailable(ctx, vid); captions.ReasonOf(err) != captions.ReasonNoCaptions {
		t.Fatalf("EnsureAvailable err = %v", err)
	}

	entries, _ := os.ReadDir(st.Root())
	if len(entries) != 0 {
		t.Fatalf("cache dir not empty after failure: %v", entries)
	}
	if _, ok := svc.LoadFullText(vid); ok {
		t.Fatal("LoadFullText found a record after failure")
	}
}

func TestFetchAndCacheInvalidID(t *testing.T) {
	acq := &fakeAcquirer{fragments: sampleFragments()}
	svc, _ := newTestService(t, acq)

	_, err := svc.FetchAndCacheErr(context.Background(), "../../etc/passwd")
	if captions.ReasonOf(err) != captions.ReasonInvalidID {
		t.Fatalf("err = %v; want invalid_id", err)
	}
	if acq.calls != 0 {
		t.Fatalf("acquirer called for an invalid id")
	}
}

func TestFetchAndCacheOverwrites(t *testing.T) {
	acq := &fakeAcquirer{fragments: sampleFragments()}
	svc, st := newTestService(t, acq)
	ctx := context.Background()

	if got := svc.FetchAndCache(ctx, vid); got != StatusOK {
		t.Fatalf("first fetch = %v", got)
	}
	acq.fragments = []transcript.Fragment{{Text: "new", Start: 0, Duration: 1}}
	if got := svc.FetchAndCache(ctx, vid); got != StatusOK {
		t.Fatalf("second fetch = %v", got)
	}

	got, err := st.Load(vid)
	if err != nil {
		t.Fatal(err)
	}
	want := transcript.New(vid, "English", "en", false, acq.fragments)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("stored record (-want +got):\n%s", diff)
	}
}

func TestLoadFullTextNeverAcquires(t *testing.T) {
	acq := &fakeAcquirer{fragments: sampleFragments()}
	svc, _ := newTestService(t, acq)

	if text, ok := svc.LoadFullText(vid); ok || text != "" {
		t.Fatalf("LoadFullText = %q, %v; want absent", text, ok)
	}
	if acq.calls != 0 {
		t.Fatal("LoadFullText triggered an acquisition")
	}

	svc.FetchAndCache(context.Background(), vid)
	if text, ok := svc.LoadFullText(vid); !ok || text != " hello world bye" {
		t.Fatalf("LoadFullText = %q, %v", text, ok)
	}
}

func TestCorruptRecordIsNotRefetched(t *testing.T) {
	acq := &fakeAcquirer{fragments: sampleFragments()}
	svc, st := newTestService(t, acq)

	if err := os.WriteFile(filepath.Join(st.Root(), vid+".json"), []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}
	if got := svc.Query(context.Background(), vid, ""); got != MsgFetchFailed {
		t.Fatalf("Query = %q", got)
	}
	if acq.calls != 0 {
		t.Fatal("corrupt record triggered an acquisition")
	}
}

func TestListAndDelete(t *testing.T) {
	acq := &fakeAcquirer{fragments: sampleFragments()}
	svc, _ := newTestService(t, acq)
	ctx := context.Background()

	svc.FetchAndCache(ctx, vid)
	svc.FetchAndCache(ctx, "aaaaaaaaaaa")

	ids, err := svc.List()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"aaaaaaaaaaa", vid}, ids); diff != "" {
		t.Errorf("List (-want +got):\n%s", diff)
	}

	if err := svc.Delete(vid); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(vid); !errors.Is(err, store.ErrNotCached) {
		t.Fatalf("second Delete err = %v; want ErrNotCached", err)
	}
}
