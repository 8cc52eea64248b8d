package main

import "github.com/nitcli/nit/internal/nerr"

func idParseError(raw string) error {
	return nerr.InvalidValuef("id", raw, "integer issue id")
}
