package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/openstripedashboard/report-backend/api"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.vocdoni.io/dvote/log"
)

func main() {
	// define flags
	flag.StringP("host", "h", "0.0.0.0", "listen address")
	flag.IntP("port", "p", 8080, "listen port")
	flag.String("stripe-api-url", "", "override the Stripe API base URL (for testing)")
	flag.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	// parse flags
	flag.Parse()
	// initialize Viper
	viper.SetEnvPrefix("OSD")
	if err := viper.BindPFlags(flag.CommandLine); err != nil {
		panic(err)
	}
	viper.AutomaticEnv()
	// read the configuration
	host := viper.GetString("host")
	port := viper.GetInt("port")
	stripeAPIURL := viper.GetString("stripe-api-url")
	logLevel := viper.GetString("log-level")
	log.Init(logLevel, "stdout", nil)
	// create the local API server; the Stripe secret key is supplied by the
	// caller on every request and is never part of the configuration
	api.New(&api.Config{
		Host:             host,
		Port:             port,
		StripeAPIBaseURL: stripeAPIURL,
	}).Start()
	// wait forever, as the server is running in a goroutine
	log.Infow("server started", "host", host, "port", port)
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c
}
