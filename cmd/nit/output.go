package main

import (
	"fmt"

	"github.com/nitcli/nit/internal/render"
	"github.com/nitcli/nit/internal/types"
)

func writeLine(s string) {
	if s == "" {
		return
	}
	fmt.Println(s)
}

func printDetail(d types.IssueDetail) {
	if quietFlag && !outputFormat().IsJSON() {
		return
	}
	writeLine(render.IssueDetail(d, outputFormat()))
}

func printUnblocked(unblocked []types.UnblockedIssue) {
	if quietFlag {
		return
	}
	writeLine(render.Unblocked(unblocked, outputFormat()))
}
