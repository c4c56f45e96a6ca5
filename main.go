package main

import (
	"fmt"
	"os"

	"github.com/yarncheck/check-yarn-rm/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		// Usage failures still speak the plugin protocol: one line, exit 3.
		fmt.Printf("UNKNOWN: %v\n", err)
		os.Exit(3)
	}
}
