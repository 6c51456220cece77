package config

import "testing"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GOOGLE_CLIENT_ID", "test-client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "test-secret")
}

func TestLoadExtractionDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Extraction.Strategy != "pattern" {
		t.Errorf("Strategy = %q, want pattern", cfg.Extraction.Strategy)
	}
	if cfg.Extraction.MinSimilarity != 0.65 {
		t.Errorf("MinSimilarity = %v, want 0.65", cfg.Extraction.MinSimilarity)
	}
	if cfg.Extraction.DedupThreshold != 0.98 {
		t.Errorf("DedupThreshold = %v, want 0.98", cfg.Extraction.DedupThreshold)
	}
	if cfg.Extraction.MinTaskLength != 3 {
		t.Errorf("MinTaskLength = %d, want 3", cfg.Extraction.MinTaskLength)
	}
}

func TestLoadExtractionOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EXTRACTION_STRATEGY", "syntax")
	t.Setenv("EXTRACTION_MIN_SIMILARITY", "0.7")
	t.Setenv("EXTRACTION_DEDUP_THRESHOLD", "0.95")
	t.Setenv("EXTRACTION_MIN_TASK_LENGTH", "5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Extraction.Strategy != "syntax" {
		t.Errorf("Strategy = %q, want syntax", cfg.Extraction.Strategy)
	}
	if cfg.Extraction.MinSimilarity != 0.7 {
		t.Errorf("MinSimilarity = %v, want 0.7", cfg.Extraction.MinSimilarity)
	}
	if cfg.Extraction.DedupThreshold != 0.95 {
		t.Errorf("DedupThreshold = %v, want 0.95", cfg.Extraction.DedupThreshold)
	}
	if cfg.Extraction.MinTaskLength != 5 {
		t.Errorf("MinTaskLength = %d, want 5", cfg.Extraction.MinTaskLength)
	}
}
