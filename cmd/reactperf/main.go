package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/bigquery"
	"cloud.google.com/go/storage"
	"github.com/CAFxX/httpcompression"
	"github.com/dgraph-io/badger/v4"
	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	"github.com/inter-frhug/react-profiler-comparator/internal/httputil"
	"github.com/inter-frhug/react-profiler-comparator/internal/logutil"
	"github.com/inter-frhug/react-profiler-comparator/internal/storageprovider"
	"github.com/inter-frhug/react-profiler-comparator/internal/storageutil"
)

type environment struct {
	config ServiceConfig

	store storageutil.ObjectHandler

	occurrencesWriter   *kafka.Writer
	occurrencesInserter *bigquery.Inserter

	storage    *storage.Client
	blobBucket *blob.Bucket
	badgerDB   *badger.DB
}

var release string

func newEnvironment() (*environment, error) {
	var e environment
	err := cleanenv.ReadEnv(&e.config)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	switch e.config.StorageBackend {
	case "gcs":
		e.storage, err = storage.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		e.store = &storageprovider.Gcs{BucketHandle: e.storage.Bucket(e.config.CapturesBucket)}
	case "blob":
		e.blobBucket, err = blob.OpenBucket(ctx, e.config.BlobBucketURL)
		if err != nil {
			return nil, err
		}
		e.store = &storageprovider.Blob{Bucket: e.blobBucket}
	default:
		options := badger.DefaultOptions(e.config.BadgerPath)
		if e.config.BadgerPath == "" {
			options = options.WithInMemory(true)
		}
		e.badgerDB, err = badger.Open(options)
		if err != nil {
			return nil, err
		}
		e.store = &storageprovider.Badger{DB: e.badgerDB}
	}

	if e.config.OccurrencesEnabled {
		e.occurrencesWriter = &kafka.Writer{
			Addr:         kafka.TCP(e.config.OccurrencesKafkaBrokers...),
			Async:        true,
			Balancer:     kafka.CRC32Balancer{},
			BatchSize:    100,
			Compression:  kafka.Lz4,
			ReadTimeout:  3 * time.Second,
			Topic:        e.config.OccurrencesKafkaTopic,
			WriteTimeout: 3 * time.Second,
		}
		if e.config.Environment == "production" && e.config.OccurrencesBigQueryProject != "" {
			bqClient, err := bigquery.NewClient(ctx, e.config.OccurrencesBigQueryProject)
			if err != nil {
				return nil, err
			}
			e.occurrencesInserter = bqClient.
				Dataset(e.config.OccurrencesBigQueryDataset).
				Table(e.config.OccurrencesBigQueryTable).
				Inserter()
		}
	}
	return &e, nil
}

func (e *environment) shutdown() {
	if e.storage != nil {
		if err := e.storage.Close(); err != nil {
			sentry.CaptureException(err)
		}
	}
	if e.blobBucket != nil {
		if err := e.blobBucket.Close(); err != nil {
			sentry.CaptureException(err)
		}
	}
	if e.badgerDB != nil {
		if err := e.badgerDB.Close(); err != nil {
			sentry.CaptureException(err)
		}
	}
	if e.occurrencesWriter != nil {
		if err := e.occurrencesWriter.Close(); err != nil {
			sentry.CaptureException(err)
		}
	}
	sentry.Flush(5 * time.Second)
}

func (e *environment) newRouter() (*httprouter.Router, error) {
	compress, err := httpcompression.DefaultAdapter()
	if err != nil {
		return nil, err
	}

	routes := []struct {
		method  string
		path    string
		handler http.HandlerFunc
	}{
		{http.MethodGet, "/health", e.getHealth},
		{http.MethodPost, "/flamegraph", e.postFlamegraph},
		{http.MethodPost, "/compare", e.postCompare},
		{http.MethodPost, "/captures", e.postCapture},
		{http.MethodGet, "/captures/:capture_id/flamegraph", e.getCaptureFlamegraph},
	}

	router := httprouter.New()

	for _, route := range routes {
		handlerFunc := httputil.DecompressPayload(route.handler)
		handler := compress(handlerFunc)

		router.Handler(route.method, route.path, handler)
	}

	return router, nil
}

func main() {
	env, err := newEnvironment()
	if err != nil {
		logutil.ConfigureLogger(false)
		log.Fatal().Err(err).Msg("error setting up environment")
	}
	logutil.ConfigureLogger(env.config.DebugDump)

	err = sentry.Init(sentry.ClientOptions{
		Dsn:              env.config.SentryDSN,
		EnableTracing:    true,
		Environment:      env.config.Environment,
		Release:          release,
		TracesSampleRate: 1.0,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("can't initialize sentry")
	}

	router, err := env.newRouter()
	if err != nil {
		sentry.CaptureException(err)
		log.Fatal().Err(err).Msg("error setting up the router")
	}

	server := http.Server{
		Addr:    ":" + env.config.Port,
		Handler: sentryhttp.New(sentryhttp.Options{}).Handle(router),
	}

	waitForShutdown := make(chan struct{})
	go func() {
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c

		cctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(cctx); err != nil {
			sentry.CaptureException(err)
			log.Err(err).Msg("error shutting down server")
		}

		close(waitForShutdown)
	}()

	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		sentry.CaptureException(err)
		log.Err(err).Msg("server failed")
	}

	<-waitForShutdown

	// Shutdown the rest of the environment after the HTTP connections are closed
	env.shutdown()
}

func (e *environment) getHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}
