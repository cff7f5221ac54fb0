package terminal

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// colorTerminals lists TERM values (or prefixes) known to handle basic ANSI colors.
var colorTerminals = []string{
	"xterm",
	"screen",
	"tmux",
	"rxvt",
	"vt100",
	"vt220",
	"ansi",
	"linux",
	"cygwin",
	"putty",
}

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",
	"CONTINUOUS_INTEGRATION",
	"GITHUB_ACTIONS",
	"TRAVIS",
	"CIRCLECI",
	"JENKINS_URL",
	"BUILD_NUMBER",
	"GITLAB_CI",
	"APPVEYOR",
	"BUILDKITE",
	"DRONE",
	"TF_BUILD",
}

func termSupportsColor(termName string) bool {
	termName = strings.ToLower(strings.TrimSpace(termName))
	if termName == "" || termName == "dumb" {
		return false
	}
	for _, colorTerm := range colorTerminals {
		if termName == colorTerm || strings.HasPrefix(termName, colorTerm+"-") {
			return true
		}
	}
	return false
}

// isCIEnvironment checks for a CI/CD system. CI=false, CI=0 and CI=no do not count.
func isCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if envVar == "CI" {
			lower := strings.ToLower(strings.TrimSpace(value))
			return lower != "false" && lower != "0" && lower != "no"
		}
		return true
	}
	return false
}

func stdStreamsAreTerminals() bool {
	return term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stderr.Fd()))
}

// isTerminalReader reports whether r is a file attached to a terminal
func isTerminalReader(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
