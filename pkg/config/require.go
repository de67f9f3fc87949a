package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustLoad parses the environment and aborts on any missing required key.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	MustNonEmpty(cfg.JWTSecret, "JWT_SECRET")
	if cfg.UploadBackend == "gcs" {
		MustNonEmpty(cfg.GCSBucket, "GCS_BUCKET")
	}

	return cfg
}
