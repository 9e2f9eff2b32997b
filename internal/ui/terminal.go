package ui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patrickprogramme/segscript/internal/clipboard"
	"github.com/patrickprogramme/segscript/internal/yt"
)

// Entrées du menu interactif
const (
	ChoiceFull  = "1"
	ChoiceRange = "2"
)

type terminalUI struct {
	reader   *bufio.Reader
	out      io.Writer
	errOut   io.Writer
	readClip func() (string, error)
}

// NewTerminal construit l'UI sur stdin/stdout/stderr et le presse-papier système.
func NewTerminal() Interface {
	return NewTerminalWith(os.Stdin, os.Stdout, os.Stderr, clipboard.ReadAll)
}

// NewTerminalWith permet d'injecter les flux et la lecture du presse-papier (nil => ignoré).
func NewTerminalWith(in io.Reader, out, errOut io.Writer, readClip func() (string, error)) Interface {
	if readClip == nil {
		readClip = func() (string, error) { return "", errors.New("presse-papier désactivé") }
	}
	return &terminalUI{reader: bufio.NewReader(in), out: out, errOut: errOut, readClip: readClip}
}

func (t *terminalUI) GetVideoID(ctx context.Context) (string, error) {
	// 1) clipboard
	if clip, err := t.readClip(); err == nil && yt.IsYouTubeURL(clip) {
		if id, err := yt.ExtractVideoID(clip); err == nil {
			t.PrintInfo(ctx, fmt.Sprintf("Using video from clipboard: %s", id))
			return id, nil
		}
	}
	// 2) prompt
	for {
		input, err := t.prompt(ctx, "Enter YouTube video ID (the 11-character code in the URL): ")
		if err != nil {
			return "", err
		}
		if id, err := yt.ExtractVideoID(input); err == nil {
			return id, nil
		}
		t.PrintError(ctx, "❌ Invalid video ID or URL. Try again.")
	}
}

func (t *terminalUI) AskChoice(ctx context.Context) (string, error) {
	fmt.Fprintln(t.out, "\nOptions:")
	fmt.Fprintln(t.out, "1. Get full transcript")
	fmt.Fprintln(t.out, "2. Get transcript within a time range")
	return t.prompt(ctx, "Enter your choice (1 or 2): ")
}

func (t *terminalUI) AskRange(ctx context.Context) (string, error) {
	return t.prompt(ctx, "Enter time range (e.g., '10:00;20:00'): ")
}

func (t *terminalUI) PrintInfo(ctx context.Context, s string) {
	fmt.Fprintln(t.out, s)
}

func (t *terminalUI) PrintError(ctx context.Context, s string) {
	fmt.Fprintln(t.errOut, s)
}

// prompt affiche label et lit une ligne. Une dernière ligne sans "\n" est acceptée ;
// une entrée fermée sans contenu renvoie io.EOF.
func (t *terminalUI) prompt(ctx context.Context, label string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(t.out, label)
	line, err := t.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", io.EOF
		}
		return "", fmt.Errorf("lecture stdin: %w", err)
	}
	return strings.TrimSpace(line), nil
}
