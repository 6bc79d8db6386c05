package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/medqueue/medqueue-go/internal/adapters/auth"
	"github.com/medqueue/medqueue-go/internal/adapters/cache"
	"github.com/medqueue/medqueue-go/internal/adapters/storage"
	"github.com/medqueue/medqueue-go/internal/application/services"
	"github.com/medqueue/medqueue-go/internal/domain/entities"
	"github.com/medqueue/medqueue-go/internal/domain/providers"
	"github.com/medqueue/medqueue-go/internal/infrastructure/clients/medqueue"
	"github.com/medqueue/medqueue-go/internal/infrastructure/observability"
	queryservices "github.com/medqueue/medqueue-go/internal/query/services"
	"github.com/medqueue/medqueue-go/pkg/config"
	apperrors "github.com/medqueue/medqueue-go/pkg/errors"
)

const usage = `Usage: medqueue <command> [flags]

Commands:
  list      show the hospital listing (-q query, -type category)
  login     sign in (-name, -email)
  logout    sign out
  book      book an appointment (-name, -phone, -hospital, -specialty, -datetime, -quick)
  status    check a reservation (-code)
  cancel    cancel a reservation (-code, -yes)
`

func main() {
	// Optional .env, same as the other deployment surfaces.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("medqueue-client", os.Getenv("MEDQUEUE_ENV"))
	logger := observability.GetLogger()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store := openStore(ctx, cfg)
	directory := medqueue.NewClient(cfg.API.Origin, cfg.API.Timeout)
	listingCache := cache.NewFreshnessCache(directory, store, cfg.Cache.Key, cfg.Cache.TTL)
	gate := auth.NewKVGate(store)
	booking := services.NewBookingService(directory, gate, listingCache)
	status := services.NewStatusService(directory, listingCache)

	var runErr error
	switch os.Args[1] {
	case "list":
		runErr = runList(ctx, listingCache, os.Args[2:])
	case "login":
		runErr = runLogin(ctx, gate, os.Args[2:])
	case "logout":
		runErr = gate.SignOut(ctx)
	case "book":
		runErr = runBook(ctx, booking, os.Args[2:])
	case "status":
		runErr = runStatus(ctx, status, os.Args[2:])
	case "cancel":
		runErr = runCancel(ctx, status, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if runErr != nil {
		logger.Debug().Err(runErr).Msg("command failed")
		fmt.Fprintf(os.Stderr, "%s\n", userMessage(runErr))
		os.Exit(1)
	}
}

// openStore connects the durable key-value store. Without a reachable Redis
// the client still works, it just loses persistence across runs.
func openStore(ctx context.Context, cfg *config.Config) providers.KeyValueStore {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Redis.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("redis unavailable, falling back to in-memory storage")
		return storage.NewMemoryStore()
	}
	return storage.NewRedisStore(client)
}

func runList(ctx context.Context, listingCache *cache.FreshnessCache, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	query := fs.String("q", "", "search text")
	hospitalType := fs.String("type", entities.FilterTypeAll, "category filter")
	fs.Parse(args)

	result := queryservices.Filter(listingCache.Get(ctx), entities.ListingFilter{
		Query: *query,
		Type:  *hospitalType,
	})
	if len(result) == 0 {
		fmt.Println("Ничего не найдено")
		return nil
	}
	for _, h := range result {
		fmt.Printf("%d\t%s [%s]\n\t%s — очередь %d чел., ожидание ~%d мин\n",
			h.ID, h.Name, h.Type, h.Address, h.CurrentQueue, h.WaitingTime)
	}
	return nil
}

func runLogin(ctx context.Context, gate *auth.KVGate, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email")
	fs.Parse(args)

	user, err := gate.SignIn(ctx, *name, *email)
	if err != nil {
		return err
	}
	fmt.Printf("Вы вошли как %s\n", user.Name)
	return nil
}

func runBook(ctx context.Context, booking *services.BookingService, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	name := fs.String("name", "", "patient name")
	phone := fs.String("phone", "", "phone number")
	hospital := fs.Int64("hospital", 0, "hospital id")
	specialty := fs.String("specialty", "", "doctor specialty")
	datetime := fs.String("datetime", "", "appointment datetime, e.g. 2024-05-01T10:00")
	quick := fs.Bool("quick", false, "quick booking with the guest name")
	fs.Parse(args)

	req := &entities.AppointmentRequest{
		PatientName: *name,
		Phone:       *phone,
		HospitalID:  *hospital,
		Specialty:   *specialty,
		Datetime:    *datetime,
	}

	var appointment *entities.Appointment
	var err error
	if *quick {
		appointment, err = booking.SubmitQuick(ctx, req)
	} else {
		appointment, err = booking.Submit(ctx, req)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Запись подтверждена!\nКод записи: %s\nМесто в очереди: %d\n",
		appointment.Code, appointment.QueuePosition)
	return nil
}

func runStatus(ctx context.Context, status *services.StatusService, args []string) error {
	fs := flag.NewFlagSet("status", flag.ExitOnError)
	code := fs.String("code", "", "reservation code")
	fs.Parse(args)

	appointment, err := status.CheckStatus(ctx, *code)
	if err != nil {
		return err
	}

	fmt.Printf("Код: %s\nСтатус: %s\nПациент: %s\nБольница: %s (%s)\nСпециалист: %s\nДата: %s\nМесто в очереди: %d\nОжидание: ~%d мин\n",
		appointment.Code, appointment.Status, appointment.PatientName,
		appointment.HospitalName, appointment.HospitalAddress, appointment.Specialty,
		appointment.Datetime, appointment.QueuePosition, appointment.EstimatedWait)
	return nil
}

func runCancel(ctx context.Context, status *services.StatusService, args []string) error {
	fs := flag.NewFlagSet("cancel", flag.ExitOnError)
	code := fs.String("code", "", "reservation code")
	yes := fs.Bool("yes", false, "confirm the cancellation")
	fs.Parse(args)

	if err := status.Cancel(ctx, *code, *yes); err != nil {
		return err
	}
	fmt.Println("Запись отменена")
	return nil
}

// userMessage renders an error for direct display. Workflow errors carry a
// user-facing message already; anything else gets the raw error text.
func userMessage(err error) string {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeAuthRequired:
		return "Войдите, чтобы записаться к врачу (medqueue login -name ...)"
	case apperrors.ErrorTypeNotFound:
		return "Запись не найдена. Возможно, вы ввели неверный код или запись была отменена."
	}

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
