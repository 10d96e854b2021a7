//go:build !sgsddebug

package controller

const strictDefault = false
