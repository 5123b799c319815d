// Command fundmatchd is the hosted fundmatch service.
// It serves the matching and marketplace API, persists runs to Postgres,
// and archives reports to blob storage.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/lib/pq"

	"github.com/fundmatch/fundmatch/internal/api"
	"github.com/fundmatch/fundmatch/internal/marketplace"
	"github.com/fundmatch/fundmatch/internal/platform"
	"github.com/fundmatch/fundmatch/internal/suggest"
	"github.com/fundmatch/fundmatch/pkg/matching"
)

type config struct {
	Port           string
	DatabaseURL    string
	APIKey         string
	StorageBackend string
	LocalStorage   string
	S3Bucket       string
	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	GCSBucket      string
}

func loadConfig() config {
	return config{
		Port:           envOrDefault("PORT", "8080"),
		DatabaseURL:    envOrDefault("DATABASE_URL", "postgres://localhost:5432/fundmatch?sslmode=disable"),
		APIKey:         os.Getenv("API_KEY"),
		StorageBackend: envOrDefault("STORAGE_BACKEND", "local"),
		LocalStorage:   envOrDefault("LOCAL_STORAGE_PATH", "/tmp/fundmatch-data"),
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		GCSBucket:      os.Getenv("GCS_BUCKET"),
	}
}

func main() {
	cfg := loadConfig()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping database: %v", err)
	}

	if err := platform.AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	storage, err := newStorage(ctx, cfg)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}

	// Initialize services
	market := marketplace.NewService(db)
	store := matching.NewStore()
	engine := matching.NewEngine(matching.DefaultFactors(nil)...)

	// Restore the persisted weight vector, if one exists.
	if saved, err := market.LoadWeights(ctx); err != nil {
		log.Fatalf("load weights: %v", err)
	} else if saved != nil {
		if _, err := store.SetWeights(saved); err != nil {
			log.Printf("ignoring persisted weights: %v", err)
		} else {
			log.Printf("restored weight configuration (%d factors)", len(saved))
		}
	}

	suggestSvc := suggest.NewService(market, store, engine, storage)
	handler := api.NewHandler(db, market, suggestSvc, store, engine, nil)

	// Set up HTTP routes. The health check stays outside the API key guard.
	apiMux := http.NewServeMux()
	handler.RegisterRoutes(apiMux)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.CORS(api.APIKeyAuth(cfg.APIKey)(apiMux)))
	mux.HandleFunc("GET /healthz", healthHandler(db))

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: mux,
	}

	go func() {
		log.Printf("starting fundmatchd on :%s (storage=%s)", cfg.Port, cfg.StorageBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("shutting down...")
	if err := srv.Shutdown(context.Background()); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}

func newStorage(ctx context.Context, cfg config) (suggest.StorageClient, error) {
	switch cfg.StorageBackend {
	case "s3":
		return suggest.NewS3Storage(ctx, suggest.S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	case "gcs":
		return suggest.NewGCSStorage(ctx, cfg.GCSBucket)
	default:
		return suggest.NewLocalStorage(cfg.LocalStorage), nil
	}
}

func healthHandler(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			http.Error(w, "database unreachable", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
