package main

import (
	"os"
	"testing"

	"github.com/spf13/cobra"

	"github.com/nitcli/nit/internal/nerr"
)

func TestOutputFormatReflectsFlag(t *testing.T) {
	orig := formatFlag
	t.Cleanup(func() { formatFlag = orig })

	formatFlag = "json"
	if !outputFormat().IsJSON() {
		t.Error("expected json format to report IsJSON")
	}

	formatFlag = "compact"
	if outputFormat().IsJSON() {
		t.Error("compact format should not report IsJSON")
	}
	if !outputFormat().IsValid() {
		t.Error("compact format should be valid")
	}

	formatFlag = "bogus"
	if outputFormat().IsValid() {
		t.Error("bogus format should not be valid")
	}
}

func TestIsNoDBCommand(t *testing.T) {
	initCmd := &cobra.Command{Use: "init"}
	schemaCmd := &cobra.Command{Use: "schema"}
	addCmd := &cobra.Command{Use: "add"}

	if !isNoDBCommand(initCmd) {
		t.Error("init should be a no-db command")
	}
	if !isNoDBCommand(schemaCmd) {
		t.Error("schema should be a no-db command")
	}
	if isNoDBCommand(addCmd) {
		t.Error("add should require a database")
	}
}

func TestIsEmptyResult(t *testing.T) {
	notFound := nerr.NotFoundf("issue %d not found", 42)
	if !isEmptyResult(notFound) {
		t.Error("expected NotFound to be treated as an empty result")
	}

	invalid := nerr.InvalidValuef("title", "", "non-empty string")
	if isEmptyResult(invalid) {
		t.Error("InvalidValue should not be treated as an empty result")
	}

	if isEmptyResult(nil) {
		t.Error("nil error should not be treated as an empty result")
	}
}

func TestResolveAgentPrecedence(t *testing.T) {
	origFlag, origEnv := agentFlag, os.Getenv("NIT_AGENT")
	t.Cleanup(func() {
		agentFlag = origFlag
		os.Setenv("NIT_AGENT", origEnv)
	})

	agentFlag = "flag-agent"
	os.Setenv("NIT_AGENT", "env-agent")
	if got := resolveAgent(); got != "flag-agent" {
		t.Errorf("resolveAgent = %q, want flag to win", got)
	}

	agentFlag = ""
	if got := resolveAgent(); got != "env-agent" {
		t.Errorf("resolveAgent = %q, want env var to win when flag is unset", got)
	}

	os.Setenv("NIT_AGENT", "")
	origUser := os.Getenv("USER")
	t.Cleanup(func() { os.Setenv("USER", origUser) })
	os.Setenv("USER", "user-fallback")
	if got := resolveAgent(); got == "" {
		t.Error("resolveAgent should not return empty when $USER is set")
	}
}
