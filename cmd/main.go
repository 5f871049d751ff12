package main

import (
	"os"
	_ "time/tzdata"

	"learner-activity-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
