package main

import (
	"flag"
	"log"
	"os"
	"time"

	"reelwatch/internal/config"
	"reelwatch/internal/logging"
	"reelwatch/internal/notify"
	"reelwatch/internal/prober"
	"reelwatch/internal/scheduler"
	"reelwatch/internal/util"
)

func main() {
	log.SetFlags(0)

	configPath := flag.String("config", "./config.yaml", "path to the config file")
	once := flag.Bool("once", false, "perform a single check and exit (0 found, 1 not found)")
	flag.Parse()

	appConfig, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("%s %v", util.RedBold("!!! FATAL"), err)
	}

	logger, closeLog, err := logging.New(appConfig.Logging)
	if err != nil {
		log.Fatalf("%s %v", util.RedBold("!!! FATAL"), err)
	}
	defer closeLog()

	log.Println(util.BlueBold("--- Movie Availability Monitor (Reelwatch) ---"))
	log.Printf("%s %s", util.Green("Monitoring:"), appConfig.MovieName)
	log.Printf("%s %s", util.Green("URL:"), appConfig.URL)

	p := prober.New(time.Duration(appConfig.FetchTimeout)*time.Second, appConfig.TitleSelector, logger)
	d := notify.NewDispatcher(logger, notify.ChannelsFromConfig(appConfig)...)

	if *once {
		log.Println(util.BlueBold("--- Single Run Mode ---"))
		os.Exit(scheduler.RunOnce(appConfig, p, d, logger))
	}

	log.Printf("%s every %ds", util.Green("Checking:"), appConfig.CheckInterval)
	log.Println(util.Yellow("Press Ctrl+C to stop"))
	if err := scheduler.Run(appConfig, p, d, logger); err != nil {
		log.Fatalf("%s %v", util.RedBold("!!! FATAL"), err)
	}
	log.Println(util.GreenBold("Movie found! Notifications dispatched."))
}
