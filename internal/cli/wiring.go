package cli

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"learner-activity-service/internal/app"
	"learner-activity-service/internal/config"
	"learner-activity-service/internal/infra/memory"
	"learner-activity-service/internal/infra/postgres"
	redisstore "learner-activity-service/internal/infra/redis"
	"learner-activity-service/internal/infra/ses"
)

// services is the wired application, backed by whichever stores the config names.
type services struct {
	activity *app.ActivityService
	users    *app.UserService
	reset    *app.PasswordResetService

	// memoryTokens is set when reset tokens live in process and need sweeping.
	memoryTokens *memory.TokenStore
	closers      []func()
}

func buildServices(ctx context.Context, cfg config.Config) (*services, error) {
	svc := &services{}

	calendar, err := app.NewCalendar(cfg.Activity.Timezone)
	if err != nil {
		return nil, err
	}
	retry := app.RetryPolicy{
		MaxRetries: uint64(cfg.Activity.MaxRetries),
		Interval:   config.TTLDuration(cfg.Activity.RetryInterval, app.DefaultRetryPolicy.Interval),
	}

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		svc.closers = append(svc.closers, func() { _ = redisClient.Close() })
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			svc.Close()
			return nil, err
		}
		svc.closers = append(svc.closers, pool.Close)
	}

	var users app.UserStore
	switch {
	case pool != nil:
		users = postgres.NewUserStore(pool)
	case redisClient != nil:
		users = redisstore.NewUserStore(redisClient)
	default:
		users = memory.NewUserStore()
	}

	var tokens app.TokenStore
	if redisClient != nil {
		tokens = redisstore.NewTokenStore(redisClient)
	} else {
		svc.memoryTokens = memory.NewTokenStore()
		tokens = svc.memoryTokens
	}

	var mailer app.Mailer = memory.NewOutbox()
	if cfg.Email.From != "" {
		sesMailer, err := ses.NewMailer(ctx, cfg.Email.Region, cfg.Email.From, cfg.Email.FromName)
		if err != nil {
			svc.Close()
			return nil, err
		}
		mailer = sesMailer
	}

	svc.activity = app.NewActivityService(users, calendar, retry)
	svc.users = app.NewUserService(users, retry)
	svc.reset = app.NewPasswordResetService(users, tokens, mailer, config.TTLDuration(cfg.Reset.TTL, 10*time.Minute), cfg.Reset.BaseURL, retry)
	return svc, nil
}

func (s *services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

// errNoDurableStore rejects maintenance commands that would run against a
// throwaway in-memory store.
var errNoDurableStore = errors.New("user and password commands need redis.addr or postgres.url configured")

// runWithServices loads config, wires services and prints fn's result as JSON.
func runWithServices(cmd *cobra.Command, configPath string, fn func(ctx context.Context, svc *services) (any, error)) error {
	ctx := cmd.Context()
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cfg.Postgres.URL == "" && cfg.Redis.Addr == "" {
		return errNoDurableStore
	}
	svc, err := buildServices(ctx, cfg)
	if err != nil {
		return err
	}
	defer svc.Close()

	result, err := fn(ctx, svc)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return printJSON(cmd.OutOrStdout(), result)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
