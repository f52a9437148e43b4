package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "http://127.0.0.1:8000" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.API.RequestTimeout != 15*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.API.RequestTimeout)
	}
	if cfg.Catalog.PageSize != 15 {
		t.Errorf("PageSize = %d", cfg.Catalog.PageSize)
	}
	if cfg.Catalog.CategoryPerPage != 21 {
		t.Errorf("CategoryPerPage = %d", cfg.Catalog.CategoryPerPage)
	}
	if cfg.Catalog.ImageConcurrency != 8 {
		t.Errorf("ImageConcurrency = %d", cfg.Catalog.ImageConcurrency)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("YAGO_API_URL", "https://market.example.com")
	t.Setenv("YAGO_IMAGE_CONCURRENCY", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.API.BaseURL != "https://market.example.com" {
		t.Errorf("BaseURL = %q", cfg.API.BaseURL)
	}
	if cfg.Catalog.ImageConcurrency != 3 {
		t.Errorf("ImageConcurrency = %d", cfg.Catalog.ImageConcurrency)
	}
}
