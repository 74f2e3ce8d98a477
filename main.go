package main

import (
	"context"
	"log"
	"os/signal"
	"powerdash/api"
	"powerdash/dashboard"
	"powerdash/internal"
	"powerdash/internal/config"
	"powerdash/metrics"
	"powerdash/server"
	"powerdash/telegram"
	"syscall"
	"time"
)

func main() {
	conf, err := config.GetConfig()
	if err != nil {
		log.Println("configuration load failed", err)
		return
	}

	log.Println("set time zone to " + conf.TimeZone)
	location, err := time.LoadLocation(conf.TimeZone)
	if err != nil {
		log.Println("time zone initialization failed", err)
		return
	}

	var database internal.Database
	if conf.Mongo.Enabled {
		mongo, err := internal.NewMongoClient(conf)
		if err != nil {
			log.Println("mongodb setup failed", err)
			return
		}
		database = mongo
		log.Println("mongodb is configured and enabled")
	} else {
		log.Println("database is disabled")
	}

	logService := internal.NewLogger(location)
	logService.SetDebugMode(conf.IsDebug)
	if database != nil {
		logService.SetDatabase(database)
	}

	dash, err := dashboard.New(conf, logService)
	if err != nil {
		log.Println("dashboard initialization failed", err)
		return
	}

	if conf.Telegram.Enabled {
		telegramBot, err := telegram.NewBot(conf.Telegram.ApiKey)
		if err != nil {
			log.Println("telegram bot setup failed", err)
			return
		}
		telegramBot.SetStatusProvider(dash)
		telegramBot.Start()
		dash.AddEventListener(telegramBot)
		log.Println("telegram bot is configured and enabled")
	}

	apiHandler := api.NewApiHandler()
	apiHandler.SetLogger(logService)
	if database != nil {
		apiHandler.SetDatabase(database)
	}

	httpServer := server.NewServer(conf, dash, logService)
	httpServer.SetApiHandler(apiHandler)

	go func() {
		if err := metrics.Listen(conf); err != nil {
			logService.Error("metrics server failed", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logService.Error("server shutdown", err)
		}
	}()

	if err = httpServer.Start(); err != nil {
		log.Println("server failed", err)
	}
}
