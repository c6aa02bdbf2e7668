package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	grpchealth "google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"hangman/internal/adapters"
	"hangman/internal/bootstrap"
	"hangman/internal/delivery"
	gameDelivery "hangman/internal/delivery/game"
	scoreDelivery "hangman/internal/delivery/score"
	taskDelivery "hangman/internal/delivery/tasks"
	userDelivery "hangman/internal/delivery/user"
	"hangman/internal/health"
	ownMiddleware "hangman/internal/middleware"
	"hangman/internal/repository"
	"hangman/internal/taskqueue"
	gameuc "hangman/internal/usecase/game"
	scoreuc "hangman/internal/usecase/score"
	"hangman/internal/usecase/stats"
	useruc "hangman/internal/usecase/user"
	"hangman/internal/words"
)

const (
	shutdownTimeout     = 10 * time.Second
	healthProbeInterval = 15 * time.Second
)

type gameStorage interface {
	gameuc.GameStore
	stats.OpenGameLister
}

type storage struct {
	games    gameStorage
	users    useruc.UserStore
	scores   scoreuc.ScoreStore
	cache    stats.StatCache
	shutdown func(ctx context.Context)
}

func main() {
	cfg, err := bootstrap.Setup(".env")
	if err != nil {
		panic("failed to setup configuration: " + err.Error())
	}
	logger := NewLogger(cfg.Debug)
	defer logger.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go handleShutdown(cancel, logger)

	checker := health.NewChecker(logger)
	store, err := initStorage(ctx, logger, cfg, checker)
	if err != nil {
		logger.Fatalf("failed to initialize %s storage: %v", cfg.Storage, err)
	}

	wordList, err := words.Load(cfg.WordsFile)
	if err != nil {
		logger.Fatalf("failed to load words: %v", err)
	}
	vocabulary, err := words.NewVocabulary(wordList, cfg.WordSeed)
	if err != nil {
		logger.Fatalf("failed to build vocabulary: %v", err)
	}
	logger.Infof("vocabulary has %d words", vocabulary.Len())

	queue := taskqueue.NewQueue(logger, cfg.TaskWorkers, cfg.TaskQueueSize)

	users := useruc.NewUserUseCase(store.users)
	scores := scoreuc.NewScoreUseCase(store.scores, users)
	statsUC := stats.NewStatsUseCase(store.games, store.cache, queue, logger)
	games := gameuc.NewGameUseCase(store.games, vocabulary, users, scores, statsUC, cfg.DefaultAttempts)

	go statsUC.RunPeriodicRefresh(ctx, cfg.AverageRefreshInterval)

	handlers := &delivery.MainDeliveryHandler{
		User:  userDelivery.NewUserHandler(logger, users),
		Game:  gameDelivery.NewGameHandler(logger, games),
		Score: scoreDelivery.NewScoreHandler(logger, scores),
		Tasks: taskDelivery.NewTaskHandler(logger, statsUC, checker),
	}

	middlewares := []func(http.Handler) http.Handler{
		ownMiddleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst).Middleware,
	}
	if cfg.IsLocalCors {
		middlewares = append(middlewares, ownMiddleware.CORS)
	}

	r := chi.NewRouter()
	handlers.Router(r, middlewares...)

	var grpcServer *grpc.Server
	if cfg.GrpcPort != "" {
		grpcServer, err = startGrpcHealth(ctx, logger, cfg.GrpcPort, checker)
		if err != nil {
			logger.Fatalf("failed to start grpc health server: %v", err)
		}
	}

	server := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stop()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorf("http shutdown: %v", err)
		}
	}()

	logger.Infof("Server is running on port %s", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatalf("Failed to start server: %v", err)
	}

	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
	queue.Close()

	closeCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	store.shutdown(closeCtx)
	logger.Info("server stopped")
}

func NewLogger(debug bool) *zap.SugaredLogger {
	build := zap.NewProduction
	if debug {
		build = zap.NewDevelopment
	}
	logger, err := build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}

func initStorage(ctx context.Context, log *zap.SugaredLogger, cfg *bootstrap.Config, checker *health.Checker) (*storage, error) {
	if cfg.Storage == bootstrap.StorageMemory {
		log.Warn("using in-memory storage, state is lost on restart")
		return &storage{
			games:    repository.NewMemoryGameStore(),
			users:    repository.NewMemoryUserStore(),
			scores:   repository.NewMemoryScoreStore(),
			cache:    repository.NewMemoryStatCache(),
			shutdown: func(context.Context) {},
		}, nil
	}

	mongoAdapter := adapters.NewAdapterMongo(cfg, log)
	if err := mongoAdapter.Init(ctx); err != nil {
		return nil, err
	}

	redisAdapter := adapters.NewAdapterRedis(cfg, log)
	if err := redisAdapter.Init(ctx); err != nil {
		_ = mongoAdapter.Close(ctx)
		return nil, err
	}

	checker.Add("mongo", mongoAdapter)
	checker.Add("redis", redisAdapter)

	gameRepo := repository.NewGameRepository(log, mongoAdapter.Database)
	userRepo := repository.NewMongoUserStorage(log, mongoAdapter.Database)
	scoreRepo := repository.NewScoreRepository(log, mongoAdapter.Database)

	for name, ensure := range map[string]func(context.Context) error{
		"games":  gameRepo.EnsureIndexes,
		"users":  userRepo.EnsureIndexes,
		"scores": scoreRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			return nil, err
		}
		log.Debugf("indexes ready for %s", name)
	}

	log.Info("database adapters initialized")
	return &storage{
		games:    gameRepo,
		users:    userRepo,
		scores:   scoreRepo,
		cache:    repository.NewRedisStatCache(redisAdapter.GetClient()),
		shutdown: func(ctx context.Context) {
			if err := redisAdapter.Close(ctx); err != nil {
				log.Errorf("close redis: %v", err)
			}
			if err := mongoAdapter.Close(ctx); err != nil {
				log.Errorf("close mongodb: %v", err)
			}
		},
	}, nil
}

func startGrpcHealth(ctx context.Context, log *zap.SugaredLogger, port string, checker *health.Checker) (*grpc.Server, error) {
	lis, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, err
	}

	healthServer := grpchealth.NewServer()
	grpcServer := grpc.NewServer()
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	go checker.Watch(ctx, healthServer, healthProbeInterval)
	go func() {
		log.Infof("grpc health server is running on port %s", port)
		if err := grpcServer.Serve(lis); err != nil {
			log.Errorf("grpc serve: %v", err)
		}
	}()

	return grpcServer, nil
}

func handleShutdown(cancelFunc context.CancelFunc, log *zap.SugaredLogger) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	log.Info("Received shutdown signal")
	cancelFunc()
}
