package watcher

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
)

// Notifier delivers alerts as desktop notifications. On macOS it uses
// osascript, on Linux notify-send. When neither works the alert is written
// to Fallback.
type Notifier struct {
	AppName  string
	Fallback io.Writer

	goos     string
	lookPath func(file string) (string, error)
	run      func(name string, args ...string) error
}

// NewNotifier returns a Notifier for the current platform.
func NewNotifier(fallback io.Writer) *Notifier {
	return &Notifier{
		AppName:  "wellwatch",
		Fallback: fallback,
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

// Notify sends a desktop notification using a stderr fallback.
func Notify(alert Alert) error {
	return NewNotifier(os.Stderr).Notify(alert)
}

// Notify sends alert, falling back to the Fallback writer.
func (n *Notifier) Notify(alert Alert) error {
	var err error
	switch n.goos {
	case "darwin":
		script := fmt.Sprintf(`display notification %q with title %q subtitle %q`,
			alert.Message, n.AppName, alert.Title)
		err = n.run("osascript", "-e", script)
	case "linux":
		if _, err = n.lookPath("notify-send"); err == nil {
			err = n.run("notify-send", "--urgency="+urgency(alert.Level),
				fmt.Sprintf("%s: %s", n.AppName, alert.Title), alert.Message)
		}
	default:
		err = fmt.Errorf("no desktop notifier for %s", n.goos)
	}
	if err != nil {
		return n.fallback(alert)
	}
	return nil
}

func (n *Notifier) fallback(alert Alert) error {
	_, err := fmt.Fprintf(n.Fallback, "[%s] %s: %s\n", alert.Level, alert.Title, alert.Message)
	return err
}

// urgency maps alert levels to notify-send urgency.
func urgency(level string) string {
	switch level {
	case "critical":
		return "critical"
	case "info":
		return "low"
	default:
		return "normal"
	}
}
