package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/pkg/renderer"
	"github.com/df07/go-sphere-tracer/web/server"
)

func main() {
	cfg, err := config.LoadServer(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		log.Printf("Usage: sphere-tracer-web [-addr host:port]")
		return
	}
	if err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}

	logger := renderer.NewDefaultLogger()
	webServer := server.NewServer(*cfg, logger)

	logger.Printf("Sphere Tracer Preview Server\n")
	logger.Printf("Connect a WebSocket client to ws://localhost%s/api/render?scene=quick\n", cfg.Address)

	if err := webServer.Start(); err != nil {
		logger.Printf("Error starting server: %v\n", err)
		os.Exit(1)
	}
}
