package main

import (
	"fmt"
	"os"
	"strings"
)

// uiMode is the --ui setting of parse, summary and index.
type uiMode uint8

const (
	uiModeAuto uiMode = iota
	uiModeOn
	uiModeOff
)

var uiModeNames = map[string]uiMode{"": uiModeAuto, "auto": uiModeAuto, "on": uiModeOn, "off": uiModeOff}

func readUIMode(value string) (uiMode, error) {
	if mode, ok := uiModeNames[strings.ToLower(strings.TrimSpace(value))]; ok {
		return mode, nil
	}
	return uiModeAuto, fmt.Errorf("--ui: unknown mode %q, want auto, on or off", value)
}

// shouldUseTUI: auto shows progress only on an interactive stderr and never
// together with -v output.
func shouldUseTUI(mode uiMode, verbose int) bool {
	if mode != uiModeAuto {
		return mode == uiModeOn
	}
	return verbose == 0 && isTerminal(os.Stderr)
}
