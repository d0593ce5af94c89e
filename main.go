package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"rasp_unitech/modules/config"
	"rasp_unitech/modules/database"
	"rasp_unitech/modules/logs"
	"rasp_unitech/modules/site"
	"rasp_unitech/modules/tg"
)

func main() {
	configPath := flag.String("config", os.Getenv("RASP_CONFIG"), "path to YAML config")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	database.DefaultStudentID = cfg.DefaultStudent

	files, err := logs.OpenLogs(cfg.LogsDir, cfg.LogsMaxAge)
	if err != nil {
		log.Fatal(err)
	}
	defer files.CloseAll()

	bot, err := tg.InitBot(files, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer bot.DB.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.ListenAddr != "" {
		web := site.New(bot.Service, bot.Debug)
		go func() {
			if err := web.Serve(ctx, cfg.ListenAddr); err != nil {
				bot.Debug.Println(err)
			}
		}()
	}

	// Сброс брошенных диалогов
	c := cron.New()
	if _, err := c.AddFunc(cfg.CleanupCron, func() {
		n, err := database.ResetStale(bot.DB, time.Now().Add(-cfg.DialogTTL))
		if err != nil {
			bot.Debug.Println(err)
		} else if n != 0 {
			bot.Debug.Printf("reset %d stale dialogs", n)
		}
	}); err != nil {
		log.Fatal(err)
	}
	c.Start()
	defer c.Stop()

	log.Println("Started")
	for {
		select {
		case update := <-bot.Updates:
			if _, err := bot.HandleUpdate(update); err != nil {
				bot.Debug.Println(err)
			}
		case <-ctx.Done():
			log.Println("Stopped")

			return
		}
	}
}
