package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"autorent/internal/app/commands"
	availabilityapp "autorent/internal/app/handlers/availability"
	bookingapp "autorent/internal/app/handlers/booking"
	selectionapp "autorent/internal/app/handlers/selection"
	"autorent/internal/app/middleware"
	appoutbox "autorent/internal/app/outbox"
	"autorent/internal/app/queries"
	"autorent/internal/app/uow"
	"autorent/internal/domain/availability"
	"autorent/internal/infra/broker/kafka"
	"autorent/internal/infra/config"
	"autorent/internal/infra/db/mongo"
	ginserver "autorent/internal/infra/http/gin"
	"autorent/internal/infra/obs"
	infraoutbox "autorent/internal/infra/outbox"
	"autorent/internal/infra/storage/memory"
	infraredis "autorent/internal/infra/storage/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration invalid", "error", err)
		os.Exit(1)
	}

	app, err := buildApplication(cfg, logger)
	if err != nil {
		logger.Error("wiring failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: app.ready,
	}, app.handlers)

	if app.outboxWorker != nil {
		go func() {
			if err := app.outboxWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}
	go app.runHoldSweeper(ctx, cfg.HoldSweepInterval, logger)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "storage", cfg.StorageMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

type application struct {
	handlers     ginserver.Handlers
	commands     commands.Bus
	outboxWorker *infraoutbox.Worker
	ready        func() error
}

func buildApplication(cfg config.Config, logger *slog.Logger) (application, error) {
	var (
		uowFactory   uow.UoWFactory
		outboxStore  appoutbox.Outbox
		idStore      middleware.IdempotencyStore
		outboxWorker *infraoutbox.Worker
		ready        = func() error { return nil }
	)

	switch cfg.StorageMode {
	case "mongo":
		client, err := mongo.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return application{}, err
		}
		uowFactory = mongo.Factory{
			DB:              client.DB,
			ReservationRepo: mongo.NewReservationRepository(client.DB),
		}
		store := infraoutbox.NewStore(client.DB)
		outboxStore = store
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
		if len(cfg.KafkaBrokers) > 0 {
			producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
			if err != nil {
				return application{}, err
			}
			outboxWorker = &infraoutbox.Worker{
				Store:       store,
				Producer:    producer,
				Interval:    cfg.OutboxPollInterval,
				TopicPrefix: cfg.KafkaTopicPrefix,
				Logger:      logger,
			}
		} else {
			logger.Warn("no kafka brokers configured, outbox events will accumulate")
		}
	default:
		uowFactory = memory.Factory{ReservationRepo: memory.NewReservationRepository()}
		outboxStore = memory.NewOutbox()
	}

	if cfg.RedisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr})
		idStore = infraredis.NewIdempotencyStore(client, cfg.IdempotencyTTL)
	} else {
		idStore = memory.NewIdempotencyStore()
	}

	rules := availability.Rules{
		MinStayDays:       cfg.MinStayDays,
		MaintenanceBuffer: cfg.MaintenanceBuffer,
	}

	commandBus := commands.NewInMemoryBus()
	submitHandler := &bookingapp.SubmitReservationHandler{
		Outbox:  outboxStore,
		Encoder: appoutbox.JSONEventEncoder{},
		Rules:   rules,
		Lead:    cfg.PickupLead,
		Logger:  logger,
	}
	commands.RegisterHandler(commandBus, bookingapp.SubmitReservationCommand{}.Key(), submitHandler)
	confirmHandler := &bookingapp.ConfirmReservationHandler{
		Outbox:  outboxStore,
		Encoder: appoutbox.JSONEventEncoder{},
		Logger:  logger,
	}
	commands.RegisterHandler(commandBus, bookingapp.ConfirmReservationCommand{}.Key(), confirmHandler)
	cancelHandler := &bookingapp.CancelReservationHandler{
		Outbox:  outboxStore,
		Encoder: appoutbox.JSONEventEncoder{},
		Logger:  logger,
	}
	commands.RegisterHandler(commandBus, bookingapp.CancelReservationCommand{}.Key(), cancelHandler)
	expireHandler := &bookingapp.ExpireHoldsHandler{
		Outbox:  outboxStore,
		Encoder: appoutbox.JSONEventEncoder{},
		HoldTTL: cfg.HoldTTL,
		Logger:  logger,
	}
	commands.RegisterHandler(commandBus, bookingapp.ExpireHoldsCommand{}.Key(), expireHandler)

	queryBus := queries.NewInMemoryBus()
	calendarHandler := &availabilityapp.GetCalendarHandler{
		UoWFactory: uowFactory,
		Rules:      rules,
		Logger:     logger,
	}
	queries.RegisterHandler(queryBus, availabilityapp.GetCalendarQuery{}.Key(), calendarHandler)
	dayHandler := &availabilityapp.EvaluateDayHandler{
		UoWFactory: uowFactory,
		Rules:      rules,
		Logger:     logger,
	}
	queries.RegisterHandler(queryBus, availabilityapp.EvaluateDayQuery{}.Key(), dayHandler)
	slotsHandler := &availabilityapp.DaySlotsHandler{
		UoWFactory: uowFactory,
		Rules:      rules,
		Logger:     logger,
	}
	queries.RegisterHandler(queryBus, availabilityapp.DaySlotsQuery{}.Key(), slotsHandler)
	applyHandler := &selectionapp.ApplyHandler{
		UoWFactory: uowFactory,
		Rules:      rules,
		Logger:     logger,
	}
	queries.RegisterHandler(queryBus, selectionapp.ApplyPickupQuery{}.Key(), applyHandler.PickupHandler())
	queries.RegisterHandler(queryBus, selectionapp.ApplyReturnQuery{}.Key(), applyHandler.ReturnHandler())
	getReservationHandler := &bookingapp.GetReservationHandler{UoWFactory: uowFactory}
	queries.RegisterHandler(queryBus, bookingapp.GetReservationQuery{}.Key(), getReservationHandler)

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Idempotency(idStore, nil),
		middleware.Transaction(uowFactory, nil),
		middleware.OutboxFlush(outboxStore),
	)
	queryBusWithMiddleware := middleware.ChainQueries(queryBus)

	return application{
		handlers: ginserver.Handlers{
			Availability: ginserver.AvailabilityHandler{
				Queries:   queryBusWithMiddleware,
				OpenHour:  cfg.OpenHour,
				CloseHour: cfg.CloseHour,
			},
			Selection: ginserver.SelectionHandler{
				Queries: queryBusWithMiddleware,
			},
			Reservation: ginserver.ReservationHandler{
				Commands: commandBusWithMiddleware,
				Queries:  queryBusWithMiddleware,
			},
		},
		commands:     commandBusWithMiddleware,
		outboxWorker: outboxWorker,
		ready:        ready,
	}, nil
}

// runHoldSweeper periodically expires stale pending holds.
func (a application) runHoldSweeper(ctx context.Context, interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := commands.Dispatch[bookingapp.ExpireHoldsCommand, bookingapp.ExpireHoldsResult](ctx, a.commands, bookingapp.ExpireHoldsCommand{}); err != nil {
				logger.Warn("hold expiry sweep failed", "error", err)
			}
		}
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
