package main

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestResolveSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is empty")
	}

	t.Setenv("SECRET_KEY", "change_me_in_production")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses insecure placeholder")
	}

	t.Setenv("SECRET_KEY", "replace_with_at_least_32_random_characters")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses example placeholder")
	}

	t.Setenv("SECRET_KEY", "too-short-secret")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is too short")
	}

	valid := "0123456789abcdef0123456789abcdef"
	t.Setenv("SECRET_KEY", valid)

	secret, err := resolveSecretKey()
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != valid {
		t.Fatalf("expected %q, got %q", valid, secret)
	}
}

func TestResolvePort(t *testing.T) {
	t.Setenv("PORT", "")
	port, err := resolvePort()
	if err != nil {
		t.Fatalf("expected default port, got error: %v", err)
	}
	if port != "8080" {
		t.Fatalf("expected default port 8080, got %q", port)
	}

	t.Setenv("PORT", "9090")
	port, err = resolvePort()
	if err != nil {
		t.Fatalf("expected valid port, got error: %v", err)
	}
	if port != "9090" {
		t.Fatalf("expected port 9090, got %q", port)
	}

	for _, invalid := range []string{"0", "70000", "not-a-number"} {
		t.Setenv("PORT", invalid)
		if _, err := resolvePort(); err == nil {
			t.Fatalf("expected invalid port %q to fail", invalid)
		}
	}
}

func TestParseTokenArgs(t *testing.T) {
	ttl, err := parseTokenArgs(nil)
	if err != nil {
		t.Fatalf("expected default ttl, got error: %v", err)
	}
	if ttl != 30*24*time.Hour {
		t.Fatalf("expected default ttl of 30 days, got %s", ttl)
	}

	ttl, err = parseTokenArgs([]string{"-ttl", "2h"})
	if err != nil {
		t.Fatalf("expected valid ttl, got error: %v", err)
	}
	if ttl != 2*time.Hour {
		t.Fatalf("expected 2h, got %s", ttl)
	}

	if _, err := parseTokenArgs([]string{"-ttl", "-1h"}); err == nil {
		t.Fatal("expected negative ttl to fail")
	}
}

func TestMustLoadLocationFallsBackToUTC(t *testing.T) {
	if location := mustLoadLocation("Not/AZone", zap.NewNop()); location != time.UTC {
		t.Fatalf("expected UTC fallback, got %s", location)
	}
}

func TestOpenDatabaseCloserReleasesPool(t *testing.T) {
	database, closeDatabase, err := openDatabase(filepath.Join(t.TempDir(), "cyclecare-main.db"), zap.NewNop())
	if err != nil {
		t.Fatalf("openDatabase returned error: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("database handle: %v", err)
	}
	if err := sqlDB.Ping(); err != nil {
		t.Fatalf("expected open pool, got %v", err)
	}

	closeDatabase()
	if err := sqlDB.Ping(); err == nil {
		t.Fatal("expected ping to fail after close")
	}
}
