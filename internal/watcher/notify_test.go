package watcher

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"
)

type recordedCmd struct {
	name string
	args []string
}

func fakeNotifier(goos string, haveNotifySend bool, runErr error) (*Notifier, *[]recordedCmd, *bytes.Buffer) {
	var cmds []recordedCmd
	var buf bytes.Buffer
	n := NewNotifier(&buf)
	n.goos = goos
	n.lookPath = func(file string) (string, error) {
		if haveNotifySend {
			return "/usr/bin/" + file, nil
		}
		return "", errors.New("not found")
	}
	n.run = func(name string, args ...string) error {
		cmds = append(cmds, recordedCmd{name, args})
		return runErr
	}
	return n, &cmds, &buf
}

var testAlert = Alert{Level: "warning", Title: "Streaks at risk", Message: "Check in today", Time: time.Now()}

func TestNotifier_Linux(t *testing.T) {
	n, cmds, buf := fakeNotifier("linux", true, nil)
	if err := n.Notify(testAlert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*cmds) != 1 || (*cmds)[0].name != "notify-send" {
		t.Fatalf("expected one notify-send call, got %+v", *cmds)
	}
	args := (*cmds)[0].args
	if args[0] != "--urgency=normal" || args[1] != "wellwatch: Streaks at risk" {
		t.Errorf("unexpected args: %v", args)
	}
	if buf.Len() != 0 {
		t.Errorf("fallback should not be used, got %q", buf.String())
	}
}

func TestNotifier_LinuxWithoutNotifySend(t *testing.T) {
	n, cmds, buf := fakeNotifier("linux", false, nil)
	if err := n.Notify(testAlert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*cmds) != 0 {
		t.Errorf("expected no commands, got %+v", *cmds)
	}
	if got := buf.String(); got != "[warning] Streaks at risk: Check in today\n" {
		t.Errorf("fallback output = %q", got)
	}
}

func TestNotifier_MacOSFailureFallsBack(t *testing.T) {
	n, cmds, buf := fakeNotifier("darwin", false, errors.New("exit 1"))
	if err := n.Notify(testAlert); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(*cmds) != 1 || (*cmds)[0].name != "osascript" {
		t.Fatalf("expected osascript call, got %+v", *cmds)
	}
	if !strings.Contains((*cmds)[0].args[1], `with title "wellwatch"`) {
		t.Errorf("unexpected script: %s", (*cmds)[0].args[1])
	}
	if !strings.Contains(buf.String(), "Streaks at risk") {
		t.Errorf("expected fallback output, got %q", buf.String())
	}
}

func TestNotifier_UnsupportedPlatform(t *testing.T) {
	n, _, buf := fakeNotifier("plan9", false, nil)
	if err := n.Notify(Alert{Level: "info", Title: "t", Message: "m"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if buf.String() != "[info] t: m\n" {
		t.Errorf("fallback output = %q", buf.String())
	}
}

func TestUrgency(t *testing.T) {
	tests := map[string]string{"critical": "critical", "warning": "normal", "info": "low", "": "normal"}
	for level, want := range tests {
		if got := urgency(level); got != want {
			t.Errorf("urgency(%q) = %q, want %q", level, got, want)
		}
	}
}
