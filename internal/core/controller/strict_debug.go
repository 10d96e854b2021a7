//go:build sgsddebug

package controller

// Debug builds crash on invariant violations so UI bugs surface immediately.
const strictDefault = true
