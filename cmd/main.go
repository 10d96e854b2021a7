package main

import (
	"fmt"
	"os"
)

const appName = "SGSD"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
