package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"smarterstarts-be/internal/config"
	"smarterstarts-be/internal/controller"
	"smarterstarts-be/internal/model"
	"smarterstarts-be/internal/outcome"
	"smarterstarts-be/internal/pkg/logger"
	"smarterstarts-be/internal/pkg/mailer"
	"smarterstarts-be/internal/pkg/sheets"
	"smarterstarts-be/internal/repository/contract"
	"smarterstarts-be/internal/repository/implementation"
	"smarterstarts-be/internal/repository/memory"
	mongorepo "smarterstarts-be/internal/repository/mongo"
	"smarterstarts-be/internal/service"
	"smarterstarts-be/internal/sink"
	"smarterstarts-be/pkg/database"
	"smarterstarts-be/pkg/llm"
	"smarterstarts-be/pkg/llm/factory"
	pktNats "smarterstarts-be/pkg/nats"
	"smarterstarts-be/pkg/recommend"
	"smarterstarts-be/pkg/workerpool"

	"github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/v2/mongo"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	ConsultationController controller.IConsultationController
	HealthController       controller.IHealthController

	Pool *workerpool.Pool

	closers []func(ctx context.Context) error
}

func NewContainer(ctx context.Context, cfg *config.Config, sysLogger logger.ILogger) *Container {
	c := &Container{Logger: sysLogger}

	// 1. Generator
	generator := recommend.NewGenerator(c.llmProvider(cfg), sysLogger, recommend.GeneratorOptions{
		MaxTokens:   cfg.Ai.MaxTokens,
		Temperature: cfg.Ai.Temperature,
		Timeout:     cfg.Ai.Timeout,
		TopK:        cfg.Ai.TopK,
	})

	// 2. Sinks
	sinks := []sink.Sink{
		c.documentSink(ctx, cfg),
		c.sheetSink(ctx, cfg),
		c.emailSink(cfg),
	}

	// 3. Outcome recording
	memRecorder := outcome.NewMemoryRecorder(cfg.Outcome.Retention)
	var reader outcome.Reader = memRecorder
	recorders := []outcome.Recorder{outcome.NewLogRecorder(sysLogger), memRecorder}

	if rdb := c.redisClient(ctx, cfg); rdb != nil {
		redisRecorder := outcome.NewRedisRecorder(rdb, cfg.Outcome.RedisKey, int64(cfg.Outcome.RedisMaxLen))
		recorders = append(recorders, redisRecorder)
		reader = redisRecorder
	}
	if pub := c.natsPublisher(cfg); pub != nil {
		recorders = append(recorders, outcome.NewEventRecorder(pub))
	}

	// 4. Dispatch
	c.Pool = workerpool.New(workerpool.Config{
		Workers:        cfg.Dispatch.Workers,
		QueueSize:      cfg.Dispatch.QueueSize,
		EnqueueTimeout: cfg.Dispatch.EnqueueTimeout,
		OnPanic: func(recovered interface{}) {
			sysLogger.Error(logger.ModuleDispatch, "Fan-out job panicked", map[string]interface{}{
				"error": fmt.Sprint(recovered),
			})
		},
	})
	dispatcher := service.NewDispatcher(c.Pool, sinks, outcome.Multi(recorders...), sysLogger, service.DispatcherConfig{
		SinkTimeout: cfg.Dispatch.SinkTimeout,
	})

	// 5. Services & Controllers
	consultationService := service.NewConsultationService(generator, dispatcher, sysLogger)

	c.ConsultationController = controller.NewConsultationController(consultationService)
	c.HealthController = controller.NewHealthController(reader)

	return c
}

// Shutdown drains pending fan-outs, then releases external clients.
func (c *Container) Shutdown(ctx context.Context) error {
	var errs []error
	if c.Pool != nil {
		if err := c.Pool.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain worker pool: %w", err))
		}
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (c *Container) llmProvider(cfg *config.Config) llm.LLMProvider {
	provider, err := factory.NewLLMProvider(factory.ProviderConfig{
		Provider:      cfg.Ai.LLMProvider,
		Model:         cfg.Ai.LLMModel,
		GeminiAPIKey:  cfg.Ai.GeminiAPIKey,
		AnthropicKey:  cfg.Ai.AnthropicAPIKey,
		OllamaBaseURL: cfg.Ai.OllamaBaseURL,
	})
	if err != nil {
		c.Logger.Warn(logger.ModuleBootstrap, "LLM provider unavailable, every request will get the fallback list", map[string]interface{}{
			"provider": cfg.Ai.LLMProvider,
			"error":    err.Error(),
		})
		return nil
	}
	c.Logger.Info(logger.ModuleBootstrap, "Using LLM provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    cfg.Ai.LLMModel,
	})
	return provider
}

func (c *Container) sessionRepository(ctx context.Context, cfg *config.Config) (contract.SessionRepository, error) {
	switch cfg.Store.Backend {
	case "mongo":
		if cfg.Store.MongoURI == "" {
			return nil, errors.New("MONGO_URI is not set")
		}
		client, err := mongorepo.Connect(ctx, cfg.Store.MongoURI)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func(ctx context.Context) error { return disconnectMongo(ctx, client) })
		return mongorepo.New(mongorepo.Options{
			Client:     client,
			Database:   cfg.Store.MongoDatabase,
			Collection: cfg.Store.MongoCollection,
		})
	case "postgres":
		db, err := database.NewGormDBFromDSN(cfg.Store.PostgresDSN, database.DefaultPoolConfig)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, func(context.Context) error { return closeGorm(db) })
		return implementation.NewSessionRepository(db), nil
	case "memory":
		return memory.NewSessionRepository(cfg.Store.MemoryRetention), nil
	default:
		return nil, fmt.Errorf("unsupported document store: %s", cfg.Store.Backend)
	}
}

func (c *Container) documentSink(ctx context.Context, cfg *config.Config) sink.Sink {
	repo, err := c.sessionRepository(ctx, cfg)
	if err != nil {
		c.Logger.Warn(logger.ModuleBootstrap, "Document store disabled", map[string]interface{}{
			"backend": cfg.Store.Backend,
			"error":   err.Error(),
		})
		return sink.Disabled(sink.NameDocument, err.Error())
	}
	return sink.NewDocumentSink(repo)
}

func (c *Container) sheetSink(ctx context.Context, cfg *config.Config) sink.Sink {
	creds, err := sheets.LoadCredentials(cfg.Sheets.Credentials)
	if err == nil && (len(creds) == 0 || cfg.Sheets.SpreadsheetId == "") {
		err = errors.New("spreadsheet id or credentials not set")
	}
	var client *sheets.Client
	if err == nil {
		client, err = sheets.New(ctx, sheets.Config{
			SpreadsheetId:   cfg.Sheets.SpreadsheetId,
			Worksheet:       cfg.Sheets.Worksheet,
			CredentialsJSON: creds,
		})
	}
	if err != nil {
		c.Logger.Warn(logger.ModuleBootstrap, "Spreadsheet sink disabled", map[string]interface{}{"error": err.Error()})
		return sink.Disabled(sink.NameSheet, err.Error())
	}
	return sink.NewSheetSink(client)
}

func (c *Container) emailSink(cfg *config.Config) sink.Sink {
	if cfg.SMTP.Host == "" || cfg.SMTP.Email == "" || cfg.SMTP.Receiver == "" {
		reason := "SMTP host, account or receiver not set"
		c.Logger.Warn(logger.ModuleBootstrap, "Admin email sink disabled", map[string]interface{}{"error": reason})
		return sink.Disabled(sink.NameEmail, reason)
	}
	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.Email,
		cfg.SMTP.SenderName,
	)
	collection := cfg.Store.MongoCollection
	if cfg.Store.Backend == "postgres" {
		collection = model.ConsultationSession{}.TableName()
	}
	return sink.NewEmailSink(emailService, sink.EmailConfig{
		Receiver:       cfg.SMTP.Receiver,
		ConsoleBaseURL: cfg.Store.ConsoleBaseURL,
		Collection:     collection,
	})
}

func (c *Container) redisClient(ctx context.Context, cfg *config.Config) *redis.Client {
	if cfg.App.RedisURL == "" {
		return nil
	}
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		c.Logger.Warn(logger.ModuleBootstrap, "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: cfg.App.RedisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		c.Logger.Warn(logger.ModuleBootstrap, "Failed to connect to Redis, outcomes stay in memory", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	c.closers = append(c.closers, func(context.Context) error { return rdb.Close() })
	return rdb
}

func (c *Container) natsPublisher(cfg *config.Config) *pktNats.Publisher {
	if cfg.App.NatsURL == "" {
		return nil
	}
	pub, err := pktNats.NewPublisher(cfg.App.NatsURL, c.Logger)
	if err != nil {
		c.Logger.Warn(logger.ModuleBootstrap, "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		return nil
	}
	c.closers = append(c.closers, func(context.Context) error {
		pub.Close()
		return nil
	})
	return pub
}

func disconnectMongo(ctx context.Context, client *mongodriver.Client) error {
	return client.Disconnect(ctx)
}

func closeGorm(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
