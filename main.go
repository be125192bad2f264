package main

import (
	"os"

	"github.com/BhanuPrakashPandey0843/Inner-Balance/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
