package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	ichingcmd "github.com/threemachines/i-ching/internal/cmd/iching"
)

// main casts or resolves a reading and prints it.
func main() {
	cfg, err := ichingcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[ICHING] ")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := ichingcmd.Run(ctx, cfg, os.Stdout); err != nil {
		log.Fatalf("failed to run reading: %v", err)
	}
}
