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

	"github.com/joho/godotenv"

	appevents "villastay/internal/app/events"
	authservice "villastay/internal/app/services/auth"
	"villastay/internal/app/services/availability"
	bookingservice "villastay/internal/app/services/booking"
	enquiryservice "villastay/internal/app/services/enquiry"
	villaservice "villastay/internal/app/services/villa"
	domainenquiry "villastay/internal/domain/enquiry"
	domainvilla "villastay/internal/domain/villa"
	"villastay/internal/infra/broker/kafka"
	"villastay/internal/infra/config"
	mongostore "villastay/internal/infra/db/mongo"
	ginserver "villastay/internal/infra/http/gin"
	"villastay/internal/infra/obs"
	"villastay/internal/infra/security"
	"villastay/internal/infra/storage/memory"
	"villastay/internal/infra/storage/s3"
)

func main() {
	// Local development reads .env; deployed environments set real
	// variables and have no such file.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	enquiries, villas, ready, closeStore, err := buildStores(ctx, cfg, logger)
	if err != nil {
		logger.Error("store init failed", "error", err, "mode", cfg.StoreMode)
		os.Exit(1)
	}
	defer closeStore()

	publisher, closeBroker := buildPublisher(cfg, logger)
	defer closeBroker()

	photos, err := buildPhotoStore(cfg, logger)
	if err != nil {
		logger.Warn("photo storage unavailable, photo uploads disabled", "error", err)
	}

	availabilitySvc := &availability.Service{Enquiries: enquiries, Logger: logger}
	bookingSvc := &bookingservice.Service{
		Enquiries:    enquiries,
		Availability: availabilitySvc,
		Events:       publisher,
		Logger:       logger,
		AdminEmail:   cfg.AdminContactEmail,
	}
	enquirySvc := &enquiryservice.Service{Enquiries: enquiries, Events: publisher, Logger: logger}
	villaSvc := &villaservice.Service{Villas: villas, Photos: photos, Logger: logger}
	authSvc := &authservice.Service{
		AllowedEmail: cfg.IsAdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
		Passwords:    security.BcryptHasher{},
		Tokens:       security.RandomTokenGenerator{},
		SessionTTL:   cfg.SessionTTL,
		Logger:       logger,
	}

	handlers := ginserver.Handlers{
		Villa:        ginserver.VillaHandler{Villas: villaSvc},
		Enquiry:      ginserver.EnquiryHandler{Enquiries: enquirySvc},
		Availability: ginserver.AvailabilityHandler{Availability: availabilitySvc},
		Auth:         ginserver.AuthHandler{Auth: authSvc},
		Contact: ginserver.ContactHandler{
			WhatsAppNumber: cfg.WhatsAppNumber,
			Email:          cfg.AdminContactEmail,
		},
		Admin: ginserver.AdminHandler{
			Bookings:  bookingSvc,
			Enquiries: enquirySvc,
			Villas:    villaSvc,
		},
		AdminGuard: ginserver.AdminGuard(authSvc),
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (domainenquiry.Repository, domainvilla.Repository, func() error, func(), error) {
	if cfg.StoreMode == config.StoreModeMemory {
		logger.Warn("using in-memory store, data will not survive a restart")
		return memory.NewEnquiryRepository(), memory.NewVillaRepository(), func() error { return nil }, func() {}, nil
	}

	client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	closeStore := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.Warn("mongo disconnect failed", "error", err)
		}
	}
	ready := func() error {
		pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return client.Ping(pingCtx)
	}
	return mongostore.NewEnquiryRepository(client.DB, logger),
		mongostore.NewVillaRepository(client.DB, logger),
		ready, closeStore, nil
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (appevents.Publisher, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("kafka brokers not configured, lifecycle events stay local")
		return nil, func() {}
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Warn("kafka unavailable, lifecycle events stay local", "error", err)
		return nil, func() {}
	}
	closeBroker := func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
	return &kafka.EventPublisher{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix}, closeBroker
}

func buildPhotoStore(cfg config.Config, logger *slog.Logger) (villaservice.Uploader, error) {
	client, err := s3.NewClient(cfg.S3Endpoint, cfg.S3UseSSL, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3Bucket, cfg.S3PublicEndpoint, logger)
	if err != nil {
		return nil, err
	}
	return client, nil
}
