package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "KAFKA_BROKERS", "MIGRATE_ON_START", "CORS_ORIGINS", "APP_ENV"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != "8081" {
		t.Errorf("port = %q", cfg.Port)
	}
	if cfg.KafkaBrokers != nil {
		t.Errorf("brokers = %v, want none", cfg.KafkaBrokers)
	}
	if !cfg.MigrateOnStart {
		t.Error("migrations should run by default")
	}
	if cfg.IsProduction() {
		t.Error("default env should not be production")
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("APP_ENV", "production")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("CORS_ORIGINS", "https://dash.example.com")

	cfg := Load()
	if cfg.Port != "9000" {
		t.Errorf("port = %q", cfg.Port)
	}
	if want := []string{"kafka-1:9092", "kafka-2:9092"}; !reflect.DeepEqual(cfg.KafkaBrokers, want) {
		t.Errorf("brokers = %v, want %v", cfg.KafkaBrokers, want)
	}
	if cfg.MigrateOnStart {
		t.Error("MIGRATE_ON_START=false ignored")
	}
	if !cfg.IsProduction() {
		t.Error("APP_ENV=production not detected")
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "https://dash.example.com" {
		t.Errorf("cors origins = %v", cfg.CORSOrigins)
	}
}
