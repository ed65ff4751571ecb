// Package main - test-runner
// Executable to run the recovery acceptance scenarios.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MRamiBalles/vitals/internal/platform/logger"
	"github.com/MRamiBalles/vitals/test"
)

func main() {
	fmt.Println("VITALS - RECOVERY SCENARIO SUITE")
	fmt.Println("================================")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	suite := test.NewRecoverySuite(logger.NewLogger(), 10*time.Second)
	suite.Run(ctx)

	passed := 0
	failed := 0
	for _, r := range suite.GetResults() {
		if r.Passed {
			passed++
		} else {
			failed++
		}
	}

	fmt.Print("\n" + suite.Report())
	fmt.Printf("   Passed: %d\n", passed)
	fmt.Printf("   Failed: %d\n", failed)

	if failed > 0 {
		os.Exit(1)
	}
}
