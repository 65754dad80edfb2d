package main

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/njprem/Wanderly_APP_BackEnd/internal/config"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/logger"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/logging"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/media"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/otp"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/memory"
	storage "github.com/njprem/Wanderly_APP_BackEnd/internal/repository/minio"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/seed"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/service"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/telemetry"
	httptransport "github.com/njprem/Wanderly_APP_BackEnd/internal/transport/http"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/transport/mail"
	"github.com/njprem/Wanderly_APP_BackEnd/internal/util"
)

const serviceName = "wanderly-api"

func main() {
	cfg := config.Load()

	var sinks []io.Writer
	var logstash *logging.LogstashWriter
	if cfg.LogstashTCPAddr != "" {
		w, err := logging.NewLogstashWriter(cfg.LogstashTCPAddr)
		if err == nil {
			logstash = w
			sinks = append(sinks, w)
		}
	}
	log := logger.New(logger.Options{Mode: cfg.LogMode, Level: cfg.LogLevel, Sinks: sinks})
	defer func() {
		_ = log.Sync()
		if logstash != nil {
			_ = logstash.Close()
		}
	}()
	if !config.EnvFileLoaded {
		log.Debug("no .env file loaded, using process environment")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatal("tracing setup failed", "error", err)
	}

	accountRepo, destinationRepo, closeDB := openRepositories(ctx, cfg, log)
	codeStore, closeStore := openCodeStore(ctx, cfg, log)
	mailer := newMailer(cfg, log)
	objectStorage := openObjectStorage(ctx, cfg, log)

	accounts := service.NewAccountService(service.AccountServiceConfig{
		Accounts:      accountRepo,
		Storage:       objectStorage,
		Processor:     media.NewImagingProcessor(cfg.ProfileImageMaxDimension),
		Bucket:        cfg.MinIOBucketProfile,
		MaxImageBytes: cfg.ProfileImageMaxBytes,
		MaxDimension:  cfg.ProfileImageMaxDimension,
		Logger:        log,
	})
	codes := otp.NewService(codeStore, cfg.OTPTTL, cfg.OTPLength, otp.WithLogger(log))
	auth := service.NewAuthService(service.AuthServiceConfig{
		Accounts:       accounts,
		Codes:          codes,
		Mailer:         mailer,
		JWT:            util.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		GoogleAudience: cfg.GoogleAudience,
		Logger:         log,
	})
	bookings := service.NewBookingService(accountRepo, destinationRepo, log)
	destinations := service.NewDestinationService(destinationRepo, log)

	if cfg.SeedDestinations {
		defaults, err := seed.Destinations()
		if err != nil {
			log.Fatal("load seed destinations failed", "error", err)
		}
		if _, err := destinations.Seed(ctx, defaults); err != nil {
			log.Error("seeding destinations failed", "error", err)
		}
	}

	e := httptransport.NewRouter(cfg.AllowOrigins, log)
	httptransport.RegisterSwagger(e, filepath.Join("docs", "swagger.yaml"))
	httptransport.RegisterAuth(e, auth, accounts, cfg.RateLimitPerMinute, log)
	httptransport.RegisterUser(e, httptransport.UserRoutes{
		Auth:        auth,
		Accounts:    accounts,
		Bookings:    bookings,
		RequireAuth: cfg.RequireAuth,
		Logger:      log,
	})
	httptransport.RegisterDestinations(e, destinations, log)

	go func() {
		log.Info("server listening", "port", cfg.Port, "memory_mode", cfg.MemoryMode(), "require_auth", cfg.RequireAuth)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server stopped", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "error", err)
	}
	if err := closeStore(); err != nil {
		log.Error("closing otp store failed", "error", err)
	}
	if err := closeDB(); err != nil {
		log.Error("closing database failed", "error", err)
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error("tracing shutdown failed", "error", err)
	}
}

func openRepositories(ctx context.Context, cfg config.Config, log *logger.Logger) (ports.AccountRepository, ports.DestinationRepository, func() error) {
	if cfg.MemoryMode() {
		log.Warn("DATABASE_URL not set, accounts and bookings are kept in memory")
		return memory.NewAccountRepo(), memory.NewDestinationRepo(), func() error { return nil }
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("database connection failed", "error", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		log.Fatal("database migration failed", "error", err)
	}
	return postgres.NewAccountRepo(db), postgres.NewDestinationRepo(db), db.Close
}

func openCodeStore(ctx context.Context, cfg config.Config, log *logger.Logger) (otp.Store, func() error) {
	switch cfg.OTPBackend {
	case "redis":
		client, err := otp.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Fatal("redis connection failed", "addr", cfg.RedisAddr, "error", err)
		}
		return otp.NewRedisStore(client, cfg.OTPTTL), client.Close
	default:
		store := otp.NewMemoryStore(cfg.OTPTTL, time.Minute)
		return store, store.Close
	}
}

func newMailer(cfg config.Config, log *logger.Logger) mail.Sender {
	switch cfg.MailProvider {
	case "smtp":
		return mail.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.MailFrom, cfg.MailFromName)
	case "sendgrid":
		sender, err := mail.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom, cfg.MailFromName, log)
		if err != nil {
			log.Fatal("sendgrid setup failed", "error", err)
		}
		return sender
	default:
		log.Warn("MAIL_PROVIDER is log, one-time codes are only written to debug logs")
		return mail.NewLogSender(log)
	}
}

// openObjectStorage returns nil when MinIO is not configured so profile image
// uploads answer 503.
func openObjectStorage(ctx context.Context, cfg config.Config, log *logger.Logger) ports.ObjectStorage {
	if !cfg.StorageEnabled() {
		log.Info("object storage disabled, profile image upload unavailable")
		return nil
	}
	client, err := storage.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Fatal("minio client failed", "error", err)
	}
	s := storage.NewStorage(client, cfg.MinIOPublicURL)
	if err := s.EnsureBucket(ctx, cfg.MinIOBucketProfile); err != nil {
		log.Fatal("minio bucket setup failed", "bucket", cfg.MinIOBucketProfile, "error", err)
	}
	return s
}
