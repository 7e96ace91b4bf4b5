package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diegoclair/attendance-bot/internal/config"
	"github.com/diegoclair/attendance-bot/internal/database"
	"github.com/diegoclair/attendance-bot/internal/domain/service"
	"github.com/diegoclair/attendance-bot/internal/handlers"
	"github.com/diegoclair/attendance-bot/internal/logging"
	"github.com/diegoclair/attendance-bot/internal/notifier"
	"github.com/diegoclair/attendance-bot/internal/roster"
	"github.com/diegoclair/attendance-bot/migrator/sqlite"
	"github.com/joho/godotenv"
	"github.com/slack-go/slack"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[WARN] .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ERROR] Failed to load configuration: %v", err)
	}

	logging.Setup(cfg.LogLevel)

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("[ERROR] Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Println("[INFO] Running migrations...")
	if err := sqlite.Migrate(db.DB()); err != nil {
		log.Fatalf("[ERROR] Failed to run migrations: %v", err)
	}
	log.Println("[INFO] Migrations completed successfully")

	dm := database.NewInstance(db)

	members, err := roster.Load(cfg.RosterFile)
	if err != nil {
		log.Fatalf("[ERROR] Failed to load roster: %v", err)
	}
	seeded, err := roster.Seed(context.Background(), dm, members)
	if err != nil {
		log.Printf("[ERROR] Failed to seed roster: %v", err)
	} else if seeded {
		log.Printf("[INFO] Seeded roster with %d members", len(members))
	}

	slackClient := slack.New(cfg.SlackBotToken)
	slackNotifier := notifier.NewSlack(slackClient, notifier.DefaultTimeout)

	services := service.NewInstance(dm, slackNotifier, service.Options{
		Location:           cfg.Location,
		Policy:             cfg.BucketPolicy,
		ReminderLead:       cfg.ReminderLead,
		RejectMalformed:    cfg.RejectMalformed,
		ClearOnDisable:     cfg.ClearOnDisable,
		DefaultDestination: cfg.BroadcastChannel,
		DefaultRoster:      members,
	})
	services.Attendance.Load(context.Background())

	services.Reminder.Start()
	defer services.Reminder.Stop()

	slackHandler := handlers.New(services.Attendance, slackNotifier, cfg.SlackSigningSecret)
	router := handlers.NewRouter(slackHandler, handlers.NewAPI(services.Attendance))

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Printf("[INFO] Server starting on port %s (zone %s, %s buckets)", cfg.Port, cfg.Location, cfg.BucketPolicy)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[ERROR] Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[INFO] Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("[ERROR] HTTP server shutdown: %v", err)
	}
	slackHandler.Wait()
}
