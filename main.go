package main

import (
	"os"

	"github.com/pushcast/pushcast/app"
)

func main() {
	if err := app.Execute(); err != nil {
		os.Exit(1)
	}
}
