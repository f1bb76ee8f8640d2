package main

import (
	"os"

	"tenant-ledger/internal/app"
	"tenant-ledger/internal/cli"
)

func main() {
	os.Exit(cli.Execute(app.Run))
}
