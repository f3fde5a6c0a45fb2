// Command fdnverb runs the FDN reverb models on files and on a live audio
// interface.
//
// Usage:
//
//	fdnverb [global flags] <command> [args]
//
// Examples:
//
//	fdnverb models
//	fdnverb render -m plate --strength 0.8 dry.wav wet.wav
//	fdnverb impulse -m shimmer --size 0.9 --length 4 ir.wav
//	fdnverb live -c preset.yaml
//	fdnverb devices
//
// Global flags override the values loaded from the --config preset.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "fdnverb:", err)
		os.Exit(1)
	}
}
