package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"country-quiz-game/internal/app"
	"country-quiz-game/internal/config"
	"country-quiz-game/internal/infra/memory"
	pgstore "country-quiz-game/internal/infra/postgres"
	infraredis "country-quiz-game/internal/infra/redis"
	"country-quiz-game/internal/infra/restcountries"
	"country-quiz-game/internal/quiz"
	transport "country-quiz-game/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	redisTTL := config.TTLDuration(cfg.Redis.TTL, 10*time.Minute)

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	countriesTTL := config.TTLDuration(cfg.Countries.TTL, time.Hour)
	fetchTimeout := config.TTLDuration(cfg.Countries.Timeout, 15*time.Second)
	source := restcountries.NewClient(cfg.Countries.URL, fetchTimeout)

	var countryRepo app.CountryRepository
	if redisClient != nil {
		countryRepo = infraredis.NewCountryRepository(redisClient, source, countriesTTL)
	} else {
		countryRepo = memory.NewCountryRepository(source, countriesTTL)
	}

	var statsStore app.StatsStore
	switch {
	case pool != nil:
		statsStore = pgstore.NewStatsStore(pool)
	case redisClient != nil:
		statsStore = infraredis.NewStatsStore(redisClient)
	default:
		statsStore = memory.NewStatsStore()
	}

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = infraredis.NewSessionStore(redisClient, redisTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	service := app.NewQuizService(countryRepo, sessions, quiz.NewGenerator(), app.NewLedger(statsStore))
	wsHandler := transport.NewWSHandler(service, cfg.Quiz.Questions)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/ws", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting country quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
