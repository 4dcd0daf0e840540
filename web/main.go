package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-sphere-tracer/pkg/config"
	"github.com/df07/go-sphere-tracer/web/server"
)

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading configuration: %v", err)
		os.Exit(1)
	}

	// Parse command line flags
	port := flag.Int("port", cfg.Port, "Port to serve on")
	flag.Parse()

	// Create and start web server
	webServer := server.NewServer(*port, nil)

	log.Printf("Sphere Tracer Web Server")
	log.Printf("Try http://localhost:%d/api/render?sx=1.5&rz=30", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
