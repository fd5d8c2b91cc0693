// Package main GitPulse periodic commit service
//
// GitPulse watches a local git working tree, commits accumulated changes on
// a schedule and pushes them to a GitHub remote, with an HTTP API for
// control, history and credentials.
package main

import "github.com/gitpulse/gitpulse/internal"

func main() {
	internal.Run()
}
