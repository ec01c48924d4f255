// Command regaudit serves the compliance audit API and carries the
// operational subcommands that go with it.
package main

import (
	"os"

	"github.com/heartmarshall/regaudit-backend/internal/app"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = app.BuildVersion()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
