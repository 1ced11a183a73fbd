package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"SalesEcho/internal/collector"
	"SalesEcho/internal/config"
	"SalesEcho/internal/notifier"
	"SalesEcho/internal/playback"
	"SalesEcho/internal/playback/otoplayer"
	"SalesEcho/internal/recorder"
	"SalesEcho/internal/scheduler"
	"SalesEcho/internal/session"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	flag.StringVar(&cfgPath, "config", cfgPath, "path to the YAML config")
	once := flag.Bool("once", false, "render one clip, play it with the configured backend and exit")
	solo := flag.String("solo", "", "with -once: both, traffic or revenue (default: session setting)")
	flag.Parse()

	log.Println("[INFO] SalesEcho starting...")

	// Load config
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher collector.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = collector.NewHTTPFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = &collector.SyntheticFetcher{
			Seed:  cfg.DataSource.Seed,
			Start: time.Now().AddDate(0, 0, -(cfg.DataSource.Days - 1)),
		}
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())
	col := collector.NewCollector(fetcher, cfg.DataSource.Days)

	// Init session state
	sm, err := session.NewManager(cfg.Session.StateFile, session.Defaults{
		Mode:    cfg.Mode(),
		Ticks:   *cfg.Audio.Ticks,
		LagDays: *cfg.Audio.LagDays,
	})
	if err != nil {
		log.Fatalf("[FATAL] init session manager: %v", err)
	}

	// Init recorder
	var rec recorder.Recorder
	if cfg.Database.SQLitePath != "" {
		sr, err := recorder.NewSQLiteRecorder(cfg.Database.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite recorder failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	audio := scheduler.AudioSettings{
		SampleRate:      cfg.Audio.SampleRate,
		DurationSeconds: cfg.Audio.DurationSeconds,
		OutputDir:       cfg.Output.Dir,
	}

	if *once {
		player, err := newPlayer(cfg)
		if err != nil {
			log.Fatalf("[FATAL] init player: %v", err)
		}
		sched := scheduler.NewScheduler(ctx, col, sm, nil, rec, player, audio)
		go cancelOnSignal(cancel)
		if err := renderOnce(ctx, sched, sm, *solo); err != nil {
			log.Printf("[ERROR] %v", err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.ValidateBot(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init Telegram notifier
	tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)

	// Init scheduler
	sched := scheduler.NewScheduler(ctx, col, sm, tn, rec, nil, audio)
	if err := sched.RegisterAll(cfg.Schedule.DailyCron); err != nil {
		log.Fatalf("[FATAL] register cron tasks: %v", err)
	}
	sched.Start()
	defer sched.Stop()

	// Start Telegram polling
	go tn.StartPolling(ctx, sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	// Optional: run immediately on start
	if os.Getenv("RUN_ON_START") == "true" {
		log.Println("[INFO] RUN_ON_START enabled, sending the daily digest now")
		go sched.RunDailyNow()
	}

	log.Println("[INFO] SalesEcho is running. Press Ctrl+C to stop.")

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	log.Println("[INFO] SalesEcho stopped")
}

func renderOnce(ctx context.Context, sched *scheduler.Scheduler, sm *session.Manager, solo string) error {
	if solo == "" {
		solo = sm.GetState().Solo
	} else if err := sm.SetSolo(solo); err != nil {
		return err
	}
	clip, err := sched.Produce(ctx, "cli", solo)
	if err != nil {
		return err
	}
	fmt.Println(clip.Report)
	log.Printf("[INFO] wrote %s", clip.Path)

	if err := sched.PlayLocal(ctx, clip); err != nil && ctx.Err() == nil {
		return fmt.Errorf("playback: %w", err)
	}
	return nil
}

func newPlayer(cfg *config.Config) (playback.Player, error) {
	switch cfg.Playback.Backend {
	case "oto":
		return otoplayer.New(cfg.Audio.SampleRate)
	case "command":
		return playback.NewCommandPlayer(cfg.Playback.Command)
	default:
		return nil, nil
	}
}

func cancelOnSignal(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	log.Println("[INFO] interrupted, stopping playback...")
	cancel()
}
