package voice

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestConsoleSpeak(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(strings.NewReader(""), &out, time.Second, zap.NewNop())

	if err := console.Speak(context.Background(), "Hello there"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := out.String(); got != "Bot: Hello there\n" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestConsoleTranscribeReadsLine(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(strings.NewReader("  my answer  \n"), &out, time.Second, zap.NewNop())

	text, err := console.Transcribe(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "my answer" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestConsoleTranscribeTimeoutIsSilence(t *testing.T) {
	var out bytes.Buffer
	blocked, _ := io.Pipe() // never written to

	console := NewConsole(blocked, &out, 20*time.Millisecond, zap.NewNop())

	text, err := console.Transcribe(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "" {
		t.Fatalf("expected silence on timeout, got %q", text)
	}
}

func TestConsoleTranscribeClosedInputIsSilence(t *testing.T) {
	var out bytes.Buffer
	console := NewConsole(strings.NewReader(""), &out, time.Second, zap.NewNop())

	text, err := console.Transcribe(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "" {
		t.Fatalf("expected silence on closed input, got %q", text)
	}
}

func TestNewSystemRequiresCommands(t *testing.T) {
	if _, err := NewSystem(&SystemConfig{}, zap.NewNop()); err == nil {
		t.Fatal("expected error when commands are missing")
	}

	if _, err := NewSystem(nil, nil); err == nil {
		t.Fatal("expected error on nil config")
	}
}

func TestSystemTranscribeCapturesOutput(t *testing.T) {
	system, err := NewSystem(&SystemConfig{
		SpeakCommand:  []string{"true"},
		ListenCommand: []string{"echo", "spoken words"},
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := system.Transcribe(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "spoken words" {
		t.Fatalf("unexpected transcript: %q", text)
	}
}

func TestSystemTranscribeWindowElapsesToSilence(t *testing.T) {
	system, err := NewSystem(&SystemConfig{
		SpeakCommand:  []string{"true"},
		ListenCommand: []string{"sleep", "5"},
		ListenTimeout: 10 * time.Millisecond,
		PhraseLimit:   10 * time.Millisecond,
	}, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text, err := system.Transcribe(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if text != "" {
		t.Fatalf("expected silence when window elapses, got %q", text)
	}
}
