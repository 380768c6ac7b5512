package cli

import (
	"fmt"
	"io"
	"os"
)

// Output prints build progress for the command-line tools. Colors are on
// only when stdout is a terminal and NO_COLOR is unset.
type Output struct {
	stdout       io.Writer
	stderr       io.Writer
	enableColors bool
}

func NewOutput() *Output {
	return &Output{
		stdout:       os.Stdout,
		stderr:       os.Stderr,
		enableColors: isTerminal() && os.Getenv("NO_COLOR") == "",
	}
}

// NewOutputTo writes to the given streams with colors off.
func NewOutputTo(stdout, stderr io.Writer) *Output {
	return &Output{
		stdout: stdout,
		stderr: stderr,
	}
}

func (o *Output) Green(text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[32m" + text + "\033[0m"
}

func (o *Output) Yellow(text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[33m" + text + "\033[0m"
}

func (o *Output) Red(text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[31m" + text + "\033[0m"
}

func (o *Output) Gray(text string) string {
	if !o.enableColors {
		return text
	}
	return "\033[90m" + text + "\033[0m"
}

func (o *Output) PrintHeader(msg string) {
	fmt.Fprintf(o.stdout, "%s\n\n", msg)
}

func (o *Output) PrintStep(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.stdout, "  %s\n", o.Gray(formatted))
}

func (o *Output) PrintSuccess(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.stdout, "  "+o.Green("✓ ")+"%s\n", formatted)
}

func (o *Output) PrintWarning(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.stdout, "  "+o.Yellow("⚠ ")+"%s\n", formatted)
}

func (o *Output) PrintError(msg string, args ...any) {
	formatted := fmt.Sprintf(msg, args...)
	fmt.Fprintf(o.stderr, "  "+o.Red("✗ ")+"%s\n", formatted)
}

func (o *Output) PrintFile(path string) {
	fmt.Fprintf(o.stdout, "    %s\n", path)
}

func (o *Output) PrintDone(msg string) {
	fmt.Fprintf(o.stdout, "%s\n", msg)
}

func isTerminal() bool {
	stat, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == os.ModeCharDevice
}
