package main

import "testing"

// TestTestCommandFlags verifies the documented flags of the test subcommand
// are all registered
func TestTestCommandFlags(t *testing.T) {
	for _, name := range []string{"offline", "no-browser", "description", "url", "keep-open"} {
		if testCmd.Flags().Lookup(name) == nil {
			t.Errorf("test command missing flag --%s", name)
		}
	}
}

// TestKeepOpenDefaultsOff verifies the fixture is torn down unless asked
// to stay up
func TestKeepOpenDefaultsOff(t *testing.T) {
	flag := testCmd.Flags().Lookup("keep-open")
	if flag == nil {
		t.Fatal("test command missing flag --keep-open")
	}
	if flag.DefValue != "false" {
		t.Errorf("--keep-open default = %q, want false", flag.DefValue)
	}
}
