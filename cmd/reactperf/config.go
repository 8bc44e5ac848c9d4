package main

type (
	ServiceConfig struct {
		Environment string `env:"REACTPERF_ENVIRONMENT" env-default:"development"`
		Port        string `env:"PORT" env-default:"8080"`
		SentryDSN   string `env:"SENTRY_DSN"`

		// DebugDump makes the handlers log the full transform result.
		DebugDump bool `env:"REACTPERF_DEBUG_DUMP" env-default:"false"`

		// StorageBackend selects where stored captures live: badger, blob
		// or gcs.
		StorageBackend string `env:"STORAGE_BACKEND" env-default:"badger"`
		CapturesBucket string `env:"CAPTURES_BUCKET" env-default:"reactperf-captures"`
		BlobBucketURL  string `env:"BLOB_BUCKET_URL" env-default:"file:///var/lib/reactperf/captures"`
		// BadgerPath empty means in-memory.
		BadgerPath string `env:"BADGER_PATH"`

		OccurrencesEnabled         bool     `env:"OCCURRENCES_ENABLED" env-default:"false"`
		OccurrencesKafkaBrokers    []string `env:"OCCURRENCES_KAFKA_BROKERS" env-default:"localhost:9092"`
		OccurrencesKafkaTopic      string   `env:"OCCURRENCES_KAFKA_TOPIC" env-default:"render-occurrences"`
		OccurrencesBigQueryProject string   `env:"OCCURRENCES_BIGQUERY_PROJECT"`
		OccurrencesBigQueryDataset string   `env:"OCCURRENCES_BIGQUERY_DATASET" env-default:"issues"`
		OccurrencesBigQueryTable   string   `env:"OCCURRENCES_BIGQUERY_TABLE" env-default:"slow_renders"`
	}
)
