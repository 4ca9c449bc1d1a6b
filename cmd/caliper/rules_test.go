package main

import "testing"

func TestRunRulesFormats(t *testing.T) {
	for _, format := range []string{"text", "json"} {
		rulesFlags.format = format
		if err := runRules(rulesCmd, nil); err != nil {
			t.Errorf("runRules(%s) returned error: %v", format, err)
		}
	}
}

func TestRunRulesUnknownFormat(t *testing.T) {
	rulesFlags.format = "yaml"
	if err := runRules(rulesCmd, nil); err == nil {
		t.Error("runRules() with unknown format should return error")
	}
}
