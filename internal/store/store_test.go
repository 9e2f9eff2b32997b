package store

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/patrickprogramme/segscript/internal/fsutil"
	"github.com/patrickprogramme/segscript/internal/transcript"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "cache"))
	want := transcript.New("abc123", "English (auto-generated)", "en", true, []transcript.Fragment{
		{Text: "hello & <welcome>", Start: 0, Duration: 1.5},
		{Text: "café", Start: 1.5, Duration: 2.25},
	})

	if err := s.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Load("abc123")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round-trip mismatch (-want +got):\n%s", diff)
	}
	if got.FullText != " hello & <welcome> café" {
		t.Fatalf("FullText = %q", got.FullText)
	}
}

func TestLoadReadsHistoricalLayout(t *testing.T) {
	dir := t.TempDir()
	// format écrit par l'ancienne version : floats, ASCII échappé, espace initial
	raw := `{
  "video_id": "old",
  "language": "English",
  "language_code": "en",
  "is_generated": false,
  "snippets": [
    {"text": "café", "start": 0.0, "duration": 1.0},
    {"text": "ok", "start": 1.0, "duration": 2.0}
  ],
  "transcript": " café ok"
}`
	if err := os.WriteFile(filepath.Join(dir, "old.json"), []byte(raw), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := New(dir).Load("old")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.FullText != " café ok" || len(got.Fragments) != 2 || got.Fragments[1].Duration != 2 {
		t.Fatalf("unexpected record: %+v", got)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := New(t.TempDir()).Load("nope")
	if !errors.Is(err, ErrNotCached) {
		t.Fatalf("err = %v; want ErrNotCached", err)
	}
	var nc *NotCachedError
	if !errors.As(err, &nc) || nc.VideoID != "nope" {
		t.Fatalf("err = %#v; want *NotCachedError{nope}", err)
	}
}

func TestExistsDeleteList(t *testing.T) {
	s := New(t.TempDir())

	if ok, err := s.Exists("a"); err != nil || ok {
		t.Fatalf("Exists before save = %v, %v", ok, err)
	}
	for _, id := range []string{"b", "a"} {
		if err := s.Save(transcript.New(id, "", "", false, nil)); err != nil {
			t.Fatalf("Save(%s): %v", id, err)
		}
	}
	if ok, err := s.Exists("a"); err != nil || !ok {
		t.Fatalf("Exists after save = %v, %v", ok, err)
	}

	ids, err := s.List()
	if err != nil || strings.Join(ids, ",") != "a,b" {
		t.Fatalf("List = %v, %v", ids, err)
	}

	if err := s.Delete("a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("a"); !errors.Is(err, ErrNotCached) {
		t.Fatalf("second Delete err = %v; want ErrNotCached", err)
	}
}

func TestRejectsUnsafeIdentifiers(t *testing.T) {
	s := New(t.TempDir())
	for _, id := range []string{"", "../escape", "a/b"} {
		if _, err := s.Load(id); !errors.Is(err, fsutil.ErrInvalidKey) {
			t.Errorf("Load(%q) err = %v; want ErrInvalidKey", id, err)
		}
		if err := s.Save(transcript.New(id, "", "", false, nil)); !errors.Is(err, fsutil.ErrInvalidKey) {
			t.Errorf("Save(%q) err = %v; want ErrInvalidKey", id, err)
		}
	}
}
