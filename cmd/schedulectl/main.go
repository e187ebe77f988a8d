package main

import (
	"os"

	"github.com/bibbank/credit-schedule-service/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
