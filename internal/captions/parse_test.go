package captions

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/patrickprogramme/segscript/internal/transcript"
)

const sampleJSON3 = `{
  "wireMagic": "pb3",
  "events": [
    {"tStartMs": 0, "dDurationMs": 2000, "segs": [{"utf8": "hello"}]},
    {"tStartMs": 1500, "dDurationMs": 500, "aAppend": 1, "segs": [{"utf8": "\n"}]},
    {"tStartMs": 2000, "dDurationMs": 3000, "segs": [{"utf8": "big"}, {"utf8": " wide\nworld", "tOffsetMs": 400}]},
    {"tStartMs": 5000, "dDurationMs": 1000},
    {"tStartMs": 6000, "dDurationMs": 1500, "segs": [{"utf8": "  "}]},
    {"tStartMs": 9050, "segs": [{"utf8": "[Music]"}]}
  ]
}`

func TestDecodeFragments(t *testing.T) {
	got, err := DecodeFragments([]byte(sampleJSON3))
	if err != nil {
		t.Fatalf("DecodeFragments: %v", err)
	}
	want := []transcript.Fragment{
		{Text: "hello", Start: 0, Duration: 2},
		{Text: "big wide world", Start: 2, Duration: 3},
		{Text: "[Music]", Start: 9.05, Duration: 0},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("fragments mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeFragmentsErrors(t *testing.T) {
	for _, in := range []string{"", "   ", "{not json", `{"events": "x"}`} {
		if _, err := DecodeFragments([]byte(in)); err == nil {
			t.Errorf("DecodeFragments(%q) returned no error", in)
		}
	}
}

func TestDecodeFragmentsNoEvents(t *testing.T) {
	got, err := DecodeFragments([]byte(`{"wireMagic":"pb3"}`))
	if err != nil {
		t.Fatalf("DecodeFragments: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want no fragments, got %v", got)
	}
}

func TestCleanSeg(t *testing.T) {
	tests := map[string]string{
		"  a\\nb ":   "a b",
		"x\n\ty   z": "x y z",
		"\n":         "",
		"déjà vu":    "déjà vu",
	}
	for in, want := range tests {
		if got := cleanSeg(in); got != want {
			t.Errorf("cleanSeg(%q) = %q; want %q", in, got, want)
		}
	}
}
