package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	intakecmd "github.com/harborlight/intake/internal/cmd/intake"
)

func main() {
	cfg, err := intakecmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[INTAKE] ")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := intakecmd.Run(ctx, cfg); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
