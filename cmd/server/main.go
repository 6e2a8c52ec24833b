package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/peartree/finbot/internal/bot"
	"github.com/peartree/finbot/internal/config"
	"github.com/peartree/finbot/internal/db"
	"github.com/peartree/finbot/internal/events"
	eventskafka "github.com/peartree/finbot/internal/events/kafka"
	"github.com/peartree/finbot/internal/notify"
	"github.com/peartree/finbot/internal/persona"
	"github.com/peartree/finbot/internal/routes"
	"github.com/peartree/finbot/internal/scheduler"
	"github.com/peartree/finbot/internal/storage/postgres"
	"github.com/peartree/finbot/utils"
)

func main() {
	seed := flag.Bool("seed", false, "popular o banco com dados de demonstração")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Printf("arquivo .env não carregado: %v", err)
	}
	cfg := config.MustLoad()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := db.MustConnect(ctx, cfg.DatabaseURL)
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, "./migrations"); err != nil {
		log.Fatalf("migrações: %v", err)
	}

	store := postgres.NewStore(pool)

	if *seed {
		if err := utils.GenerateDemoLedger(ctx, store, 5, 20); err != nil {
			log.Fatalf("seed: %v", err)
		}
		log.Println("dados de demonstração gerados")
	}

	var notifier notify.Notifier = notify.Disabled{}
	if cfg.TwilioAccountSID != "" && cfg.TwilioAuthToken != "" {
		notifier = notify.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.BotNumber)
	}

	var publisher events.Publisher = events.Noop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := eventskafka.NewPublisher(cfg.KafkaBrokers)
		defer kp.Close()
		publisher = kp
	}

	p := persona.New(nil)
	exec := bot.NewExecutor(store, p, publisher, time.Duration(cfg.LoanDueDays)*24*time.Hour)

	sched := scheduler.New(store, notifier, p, cfg.NotifyDefaultTo)
	if err := sched.Start(); err != nil {
		log.Fatalf("agendador: %v", err)
	}
	defer sched.Stop()

	r := routes.SetupRouter(exec)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
		<-ch
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	log.Printf("Peartree ouvindo na porta %s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("servidor: %v", err)
	}
	log.Println("até mais, miserável")
}
