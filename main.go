package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/openstripedashboard/report-backend/api"
	"go.vocdoni.io/dvote/log"
)

func main() {
	log.Init("debug", "stdout", nil)
	api.New(&api.Config{Host: "0.0.0.0", Port: 8080}).Start()

	// Wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", "0.0.0.0", "port", 8080)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
