package scheduler

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"SalesEcho/internal/collector"
	"SalesEcho/internal/model"
	"SalesEcho/internal/notifier"
	"SalesEcho/internal/playback"
	"SalesEcho/internal/recorder"
	"SalesEcho/internal/session"

	"github.com/robfig/cron/v3"
)

// Messenger delivers reports and clips to the listener.
type Messenger interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
	SendAudioWithRetry(ctx context.Context, path, caption string, maxRetries int) error
}

// AudioSettings are the render settings that do not change between sessions.
type AudioSettings struct {
	SampleRate      int
	DurationSeconds float64
	OutputDir       string
}

// Scheduler manages the cron jobs and the bot commands that trigger renders.
type Scheduler struct {
	Cron      *cron.Cron
	Collector *collector.Collector
	Session   *session.Manager
	Notifier  Messenger
	Recorder  recorder.Recorder
	Player    playback.Player
	Audio     AudioSettings
	Ctx       context.Context

	renderMu sync.Mutex
}

// NewScheduler creates a new Scheduler. Player may be nil to skip local playback.
func NewScheduler(ctx context.Context, col *collector.Collector, sm *session.Manager, msg Messenger,
	rec recorder.Recorder, player playback.Player, audio AudioSettings) *Scheduler {
	return &Scheduler{
		Cron:      cron.New(cron.WithSeconds()),
		Collector: col,
		Session:   sm,
		Notifier:  msg,
		Recorder:  rec,
		Player:    player,
		Audio:     audio,
		Ctx:       ctx,
	}
}

// RegisterAll registers the daily digest.
func (s *Scheduler) RegisterAll(dailyCron string) error {
	if _, err := s.Cron.AddFunc(dailyCron, s.dailyTask); err != nil {
		return fmt.Errorf("register daily task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	log.Println("[INFO] scheduler stopped")
}

// RunDailyNow executes the daily digest immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunDailyNow() {
	s.dailyTask()
}

func (s *Scheduler) dailyTask() {
	log.Println("[INFO] running daily digest")
	state := s.Session.GetState()
	if err := s.deliver("cron", state.Solo); err != nil {
		log.Printf("[ERROR] daily digest: %v", err)
		s.trySend(notifier.FormatError("Daily digest", err))
	}
}

// deliver renders a clip and sends it with its report.
func (s *Scheduler) deliver(trigger, solo string) error {
	clip, err := s.Produce(s.Ctx, trigger, solo)
	if err != nil {
		return err
	}
	if s.Notifier == nil {
		return nil
	}
	if err := s.Notifier.SendAudioWithRetry(s.Ctx, clip.Path, clip.Caption, 3); err != nil {
		return fmt.Errorf("send clip: %w", err)
	}
	s.trySend(clip.Report)
	return nil
}

// HandleCommand processes a bot command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return notifier.FormatHelp()
	}
	// Strip the @botname suffix Telegram adds in group chats.
	name, _, _ := strings.Cut(strings.ToLower(fields[0]), "@")
	arg := ""
	if len(fields) > 1 {
		arg = strings.ToLower(fields[1])
	}

	switch name {
	case "/play":
		solo := s.Session.GetState().Solo
		if arg != "" {
			if err := s.Session.SetSolo(arg); err != nil {
				return "❌ " + err.Error()
			}
			solo = arg
		}
		if err := s.deliver("command", solo); err != nil {
			log.Printf("[ERROR] play: %v", err)
			return notifier.FormatError("Render", err)
		}
		return ""
	case "/mode":
		mode, err := model.ParseMode(arg)
		if err != nil {
			return "❌ " + err.Error() + " (use continuous or perday)"
		}
		if err := s.Session.SetMode(mode); err != nil {
			return "❌ " + err.Error()
		}
		return fmt.Sprintf("✅ Mode: %s", mode)
	case "/ticks":
		var on bool
		switch arg {
		case "on":
			on = true
		case "off":
		default:
			return "❌ use /ticks on or /ticks off"
		}
		if err := s.Session.SetTicks(on); err != nil {
			return "❌ " + err.Error()
		}
		return fmt.Sprintf("✅ Day ticks %s", arg)
	case "/lag":
		days, err := strconv.Atoi(arg)
		if err != nil {
			return "❌ use /lag N with N a whole number of days"
		}
		if err := s.Session.SetLag(days); err != nil {
			return "❌ " + err.Error()
		}
		return fmt.Sprintf("✅ Revenue lag: %d day(s)", days)
	case "/solo":
		if err := s.Session.SetSolo(arg); err != nil {
			return "❌ " + err.Error()
		}
		return fmt.Sprintf("✅ Solo: %s", arg)
	case "/status":
		return notifier.FormatStatus(s.Session.GetState())
	default:
		return notifier.FormatHelp()
	}
}

func (s *Scheduler) trySend(text string) {
	if s.Notifier == nil {
		return
	}
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
