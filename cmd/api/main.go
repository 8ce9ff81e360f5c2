package main

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"net/http/pprof"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/extra/redisotel/v9"
	redis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/backend-food/internal/auth"
	"github.com/noah-isme/backend-food/internal/cart"
	"github.com/noah-isme/backend-food/internal/catalog"
	"github.com/noah-isme/backend-food/internal/checkout"
	"github.com/noah-isme/backend-food/internal/common"
	"github.com/noah-isme/backend-food/internal/config"
	"github.com/noah-isme/backend-food/internal/db"
	"github.com/noah-isme/backend-food/internal/events"
	"github.com/noah-isme/backend-food/internal/health"
	"github.com/noah-isme/backend-food/internal/ledger"
	"github.com/noah-isme/backend-food/internal/lock"
	"github.com/noah-isme/backend-food/internal/obs"
	"github.com/noah-isme/backend-food/internal/order"
	"github.com/noah-isme/backend-food/internal/promotion"
	"github.com/noah-isme/backend-food/internal/ratelimit"
	"github.com/noah-isme/backend-food/internal/security"
	"github.com/noah-isme/backend-food/internal/shipping"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logFormat := envOrDefault("OBS_LOG_FORMAT", "json")
	logLevel := envOrDefault("OBS_LOG_LEVEL", "info")
	logger := obs.NewLogger(logFormat, logLevel).With().Str("env", cfg.AppEnv).Logger()

	metricsNamespace := envOrDefault("OBS_METRICS_NAMESPACE", "food")
	metricsEnabled := envBool("OBS_ENABLE_PROMETHEUS", true)
	obs.MustRegisterDomainMetrics(metricsNamespace, nil)

	tracingEnabled := envBool("OBS_ENABLE_TRACING", true)
	if tracingEnabled {
		shutdown, err := obs.InitTracer(context.Background(), obs.TracingConfig{
			ServiceName:   "food-api",
			Version:       envOrDefault("APP_VERSION", "dev"),
			Endpoint:      envOrDefault("OBS_OTLP_ENDPOINT", ""),
			Exporter:      envOrDefault("OBS_TRACING_EXPORTER", "otlp"),
			SamplingRatio: envFloat("OBS_TRACING_SAMPLING_RATIO", 1.0),
			Environment:   cfg.AppEnv,
		})
		if err != nil {
			logger.Error().Err(err).Msg("initialise tracing")
			tracingEnabled = false
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error().Err(err).Msg("shutdown tracer")
				}
			}()
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.MigrateOnStart {
		if err := db.Migrate(cfg.DatabaseURL); err != nil {
			logger.Fatal().Err(err).Msg("run migrations")
		}
		logger.Info().Msg("migrations applied")
	}

	startCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	pool, err := db.NewPool(startCtx, cfg.DatabaseURL, db.PoolOptions{
		ApplicationName: "food-api",
		MaxConns:        int32(envInt("DB_MAX_CONNS", 0)),
		MinConns:        int32(envInt("DB_MIN_CONNS", 0)),
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("open database")
	}
	defer pool.Close()
	store := db.NewStore(pool)

	redisClient := mustInitRedis(startCtx, cfg, logger, metricsEnabled)
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close redis")
		}
	}()

	asynqOpt, err := asynq.ParseRedisURI(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse asynq redis url")
	}
	asynqClient := asynq.NewClient(asynqOpt)
	defer func() {
		if err := asynqClient.Close(); err != nil {
			logger.Error().Err(err).Msg("close asynq client")
		}
	}()

	busLogger := logger.With().Str("component", "events").Logger()
	bus := &events.Bus{
		Store: store,
		Scheduler: events.AsynqScheduler{
			Client:   asynqClient,
			Queue:    "events",
			MaxRetry: cfg.RetryMaxAttempts,
		},
		Notifiers: []events.Notifier{events.LogNotifier{Logger: busLogger}},
		Logger:    &busLogger,
	}

	directory := &catalog.Directory{
		Q:      store,
		Cache:  catalog.NewCache(redisClient, cfg.StoreCacheTTL),
		Logger: logger.With().Str("component", "catalog").Logger(),
	}
	cartStore := &cart.Store{Q: store}

	var routing shipping.RouteProvider
	var osrm *shipping.OSRMProvider
	if cfg.RoutingBaseURL != "" {
		osrm = shipping.NewOSRMProvider(shipping.OSRMOptions{
			BaseURL:      cfg.RoutingBaseURL,
			Timeout:      cfg.RoutingTimeout,
			MaxAttempts:  cfg.RoutingMaxAttempts,
			BreakerMin:   cfg.RoutingBreakerMinReq,
			BreakerRatio: cfg.RoutingBreakerFailureRatio,
			BreakerOpen:  cfg.RoutingBreakerOpenFor,
			Logger:       logger.With().Str("component", "routing").Logger(),
		})
		routing = osrm
	}
	fees := shipping.FeeCalculator{
		BaseFee:   cfg.ShippingBaseFee,
		PerKmRate: cfg.ShippingPerKmRate,
		Decimals:  cfg.ShippingFeeDecimals,
		Provider:  routing,
		Timeout:   cfg.RoutingTimeout,
		Logger:    logger.With().Str("component", "shipping").Logger(),
	}

	checkoutSvc := &checkout.Service{
		Store:   store,
		Cart:    cartStore,
		Catalog: directory,
		Fees:    fees,
		Bus:     bus,
		Locker: lock.Locker{
			R:            redisClient,
			RetryBackoff: cfg.LockRetryBackoff,
			MaxWait:      cfg.CheckoutLockTTL,
		},
		LockTTL:       cfg.CheckoutLockTTL,
		MaxOrderTotal: cfg.CheckoutMaxOrderTotal,
		Logger:        logger.With().Str("component", "checkout").Logger(),
	}
	orderSvc := &order.Service{Store: store, Catalog: directory, Bus: bus}
	deliverySvc := &shipping.DeliveryService{Store: store, Bus: bus}
	promotionSvc := &promotion.Service{Q: store}
	promotionLedger := &ledger.Ledger{Store: store, Bus: bus}

	verifier, err := auth.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTClockSkew)
	if err != nil {
		logger.Fatal().Err(err).Msg("initialise token verifier")
	}
	authMiddleware := auth.Middleware{Verifier: verifier}

	idem := common.Idem{R: redisClient, TTL: cfg.IdempotencyTTL}
	checkoutLimit := ratelimit.Handler{
		Limiter: mustInitLimiter(cfg, redisClient, logger),
		Config: ratelimit.Config{
			Key:    ratelimit.KeyByCaller("checkout:"),
			Window: cfg.CheckoutRateWindow,
			Max:    cfg.CheckoutRateLimit,
		},
		OnError: func(err error) {
			logger.Warn().Err(err).Msg("checkout rate limiter unavailable")
		},
	}

	cartHandler := &cart.Handler{Store: cartStore}
	catalogHandler := &catalog.Handler{Directory: directory}
	checkoutHandler := &checkout.Handler{Svc: checkoutSvc}
	orderHandler := &order.Handler{Svc: orderSvc}
	deliveryHandler := &shipping.Handler{Svc: deliverySvc}
	promotionHandler := &promotion.Handler{Svc: promotionSvc}
	ledgerHandler := &ledger.Handler{Ledger: promotionLedger}

	var httpMetrics *obs.HTTPMetrics
	if metricsEnabled {
		buckets := obs.ParseBucketsCSV(envOrDefault("OBS_METRICS_BUCKETS_MS", ""))
		httpMetrics = obs.NewHTTPMetrics(metricsNamespace, buckets, nil)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if tracingEnabled {
		r.Use(obs.TracingMiddleware)
	}
	if httpMetrics != nil {
		r.Use(obs.HTTPObs{Metrics: httpMetrics}.Middleware)
	}
	r.Use(obs.RequestLogger{Logger: logger}.Middleware)
	r.Use(security.CORS(cfg.CORSAllowedOrigins))
	r.Use(security.Headers{
		Enable:                envBool("SECURE_HEADERS_ENABLE", true),
		EnableHSTS:            envBool("SECURE_HSTS_ENABLE", cfg.AppEnv == "production"),
		HSTSIncludeSubdomains: true,
	}.Middleware)
	r.Use(security.BodyLimit{Max: cfg.MaxBodyBytes}.Middleware)

	if metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}
	if envBool("OBS_ENABLE_PPROF", false) {
		user := envOrDefault("SECURE_PPROF_BASIC_AUTH_USER", "")
		pass := envOrDefault("SECURE_PPROF_BASIC_AUTH_PASS", "")
		r.Mount("/debug/pprof", protectPprof(newPprofMux(), user, pass))
	}

	healthHandler := health.Handler{
		Checker:      health.Probe{Pool: pool, Redis: redisClient},
		DBTimeout:    envDurationMillis("HEALTH_READY_DB_TIMEOUT_MS", 500),
		RedisTimeout: envDurationMillis("HEALTH_READY_REDIS_TIMEOUT_MS", 300),
		Routing:      osrm.Breaker(),
	}
	r.Get("/health/live", healthHandler.Live)
	r.Get("/health/ready", healthHandler.Ready)

	r.Route("/api/v1", func(v chi.Router) {
		v.Use(authMiddleware.RequireAuth)

		v.Get("/stores/{id}", catalogHandler.Store)

		v.With(auth.RequireRole(common.RoleCustomer)).Get("/cart", cartHandler.Get)
		v.With(
			auth.RequireRole(common.RoleCustomer),
			checkoutLimit.Middleware,
			idem.Middleware,
		).Post("/checkout", checkoutHandler.Create)

		v.Route("/orders", func(o chi.Router) {
			o.Get("/", orderHandler.List)
			o.Get("/groups/{groupId}", orderHandler.Group)
			o.Get("/{id}", orderHandler.Get)
			o.With(idem.Middleware).Post("/{id}/status", orderHandler.UpdateStatus)
			o.With(auth.RequireRole(common.RoleCustomer), idem.Middleware).Post("/{id}/cancel-group", orderHandler.CancelGroup)
		})

		v.Route("/promotions", func(p chi.Router) {
			p.Get("/available", promotionHandler.Available)
			p.Group(func(m chi.Router) {
				m.Use(auth.RequireRole(common.RoleAdmin, common.RoleStore))
				m.Get("/", promotionHandler.List)
				m.Post("/", promotionHandler.Create)
				m.Get("/{id}", promotionHandler.Get)
				m.Put("/{id}", promotionHandler.Update)
				m.Delete("/{id}", promotionHandler.Delete)
			})
		})

		v.Route("/shipper/orders", func(s chi.Router) {
			s.Use(auth.RequireRole(common.RoleShipper))
			s.Get("/available", deliveryHandler.Available)
			s.Post("/{id}/delivery", deliveryHandler.Advance)
		})

		v.Route("/admin/orders/{id}", func(a chi.Router) {
			a.Use(auth.RequireRole(common.RoleAdmin))
			a.Get("/promotions", ledgerHandler.List)
			a.Post("/promotions", ledgerHandler.Attach)
			a.Put("/promotions/{promoId}", ledgerHandler.Update)
			a.Delete("/promotions/{promoId}", ledgerHandler.Detach)
			a.Post("/recompute", ledgerHandler.Recompute)
		})
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal().Err(err).Msg("server exited unexpectedly")
		}
	case <-ctx.Done():
	}

	health.SetReady(false)
	logger.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), envDurationMillis("SHUTDOWN_TIMEOUT_MS", 15000))
	defer cancelShutdown()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown")
	}
}

func mustInitRedis(ctx context.Context, cfg *config.Config, logger zerolog.Logger, metrics bool) *redis.Client {
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("parse redis url")
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		logger.Error().Err(err).Msg("instrument redis tracing")
	}
	if metrics {
		if err := redisotel.InstrumentMetrics(redisClient); err != nil {
			logger.Error().Err(err).Msg("instrument redis metrics")
		}
	}
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logger.Fatal().Err(err).Msg("ping redis")
	}
	return redisClient
}

func mustInitLimiter(cfg *config.Config, client *redis.Client, logger zerolog.Logger) ratelimit.Allower {
	if cfg.RateLimitDriver == "fixed" {
		store, err := ratelimit.NewRedisStore(client, "food:ratelimit")
		if err != nil {
			logger.Fatal().Err(err).Msg("initialise rate limit store")
		}
		return ratelimit.FixedWindow{Store: store}
	}
	return ratelimit.Limiter{Client: client, Prefix: "food:ratelimit:"}
}

func envOrDefault(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(val)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "1", "t", "true", "yes", "on":
			return true
		case "0", "f", "false", "no", "off":
			return false
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if val, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			return parsed
		}
	}
	return fallback
}

func envDurationMillis(key string, fallback int) time.Duration {
	return time.Duration(envInt(key, fallback)) * time.Millisecond
}

func newPprofMux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", pprof.Index)
	mux.HandleFunc("/cmdline", pprof.Cmdline)
	mux.HandleFunc("/profile", pprof.Profile)
	mux.HandleFunc("/symbol", pprof.Symbol)
	mux.HandleFunc("/trace", pprof.Trace)
	mux.Handle("/allocs", pprof.Handler("allocs"))
	mux.Handle("/goroutine", pprof.Handler("goroutine"))
	mux.Handle("/heap", pprof.Handler("heap"))
	mux.Handle("/mutex", pprof.Handler("mutex"))
	return mux
}

func protectPprof(handler http.Handler, user, pass string) http.Handler {
	user = strings.TrimSpace(user)
	pass = strings.TrimSpace(pass)
	if user == "" {
		return handler
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, p, ok := r.BasicAuth()
		if !ok || subtle.ConstantTimeCompare([]byte(u), []byte(user)) != 1 || subtle.ConstantTimeCompare([]byte(p), []byte(pass)) != 1 {
			w.Header().Set("WWW-Authenticate", "Basic realm=restricted")
			http.Error(w, "unauthorised", http.StatusUnauthorized)
			return
		}
		handler.ServeHTTP(w, r)
	})
}
