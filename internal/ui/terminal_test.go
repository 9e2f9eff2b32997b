package ui

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestGetVideoIDFromClipboard(t *testing.T) {
	var out bytes.Buffer
	clip := func() (string, error) { return "https://youtu.be/dQw4w9WgXcQ", nil }
	u := NewTerminalWith(strings.NewReader(""), &out, io.Discard, clip)

	id, err := u.GetVideoID(context.Background())
	if err != nil || id != "dQw4w9WgXcQ" {
		t.Fatalf("GetVideoID = %q, %v", id, err)
	}
}

func TestGetVideoIDPromptRetries(t *testing.T) {
	var out, errOut bytes.Buffer
	clip := func() (string, error) { return "some unrelated text", nil }
	u := NewTerminalWith(strings.NewReader("nope\nhttps://www.youtube.com/watch?v=dQw4w9WgXcQ\n"), &out, &errOut, clip)

	id, err := u.GetVideoID(context.Background())
	if err != nil || id != "dQw4w9WgXcQ" {
		t.Fatalf("GetVideoID = %q, %v", id, err)
	}
	if !strings.Contains(errOut.String(), "Invalid video ID") {
		t.Errorf("no retry message, stderr = %q", errOut.String())
	}
}

func TestGetVideoIDEOF(t *testing.T) {
	u := NewTerminalWith(strings.NewReader("bad\n"), io.Discard, io.Discard, nil)
	if _, err := u.GetVideoID(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("err = %v; want io.EOF", err)
	}
}

func TestAskChoiceAndRange(t *testing.T) {
	var out bytes.Buffer
	u := NewTerminalWith(strings.NewReader(" 2 \n00:10;00:20"), &out, io.Discard, nil)

	choice, err := u.AskChoice(context.Background())
	if err != nil || choice != ChoiceRange {
		t.Fatalf("AskChoice = %q, %v", choice, err)
	}
	if !strings.Contains(out.String(), "1. Get full transcript") {
		t.Errorf("menu not printed: %q", out.String())
	}

	// dernière ligne sans retour à la ligne
	rng, err := u.AskRange(context.Background())
	if err != nil || rng != "00:10;00:20" {
		t.Fatalf("AskRange = %q, %v", rng, err)
	}
}

func TestPromptCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	u := NewTerminalWith(strings.NewReader("1\n"), io.Discard, io.Discard, nil)
	if _, err := u.AskChoice(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v; want context.Canceled", err)
	}
}
