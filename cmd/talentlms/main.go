package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/talentlms/talentlms-go/internal/cmd"
	"github.com/talentlms/talentlms-go/internal/debug"
)

var (
	executeCmd  = cmd.Execute
	mapExitCode = cmd.ExitCode
	terminate   = os.Exit
)

// run executes the CLI until it finishes or the process is interrupted.
// Interrupting a throttled or in-flight call cancels it.
func run(args []string) int {
	debug.SetupLogger(false)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := executeCmd(ctx, args); err != nil {
		return mapExitCode(err)
	}
	return 0
}

func main() {
	terminate(run(os.Args[1:]))
}
