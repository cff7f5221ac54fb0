package terminal

import (
	"os"
	"testing"
)

// setupCleanEnv controls every color and CI related variable for one test and
// sets only the requested ones.
func setupCleanEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	// NO_COLOR is checked with os.LookupEnv, so an empty value still counts.
	// t.Setenv registers the restore; Unsetenv then removes it for this test.
	if value, specified := envVars["NO_COLOR"]; specified {
		t.Setenv("NO_COLOR", value)
	} else {
		t.Setenv("NO_COLOR", "")
		os.Unsetenv("NO_COLOR") //nolint:errcheck
	}

	valueCheckedVars := append([]string{"CLICOLOR", "CLICOLOR_FORCE", "TERM"}, ciEnvVars...)
	for _, v := range valueCheckedVars {
		if value, specified := envVars[v]; specified {
			t.Setenv(v, value)
		} else {
			t.Setenv(v, "")
		}
	}
}
