package utils

import (
	"strings"
	"testing"
)

func TestHashPassword_UniqueSalts(t *testing.T) {
	h1, err := HashPassword("samePassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	h2, err := HashPassword("samePassword")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if h1 == h2 {
		t.Error("same plaintext should hash to different values (per-call salt)")
	}
	if !CheckPassword("samePassword", h1) || !CheckPassword("samePassword", h2) {
		t.Error("both hashes should verify against the original plaintext")
	}
}

func TestCheckPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{name: "correct", password: "secret1", attempt: "secret1", want: true},
		{name: "wrong", password: "secret1", attempt: "wrong", want: false},
		{name: "case sensitive", password: "Secret1", attempt: "secret1", want: false},
		{name: "extra char", password: "secret1", attempt: "secret12", want: false},
		{name: "unicode", password: "пароль密碼", attempt: "пароль密碼", want: true},
		{name: "long", password: strings.Repeat("a", 60), attempt: strings.Repeat("a", 60), want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			if err != nil {
				t.Fatalf("HashPassword error: %v", err)
			}
			if got := CheckPassword(tt.attempt, hash); got != tt.want {
				t.Errorf("CheckPassword(%q) = %v, want %v", tt.attempt, got, tt.want)
			}
		})
	}
}

func TestCheckPassword_InvalidHash(t *testing.T) {
	for _, hash := range []string{"", "not-a-bcrypt-hash", "$2a$10$short"} {
		if CheckPassword("whatever", hash) {
			t.Errorf("CheckPassword should fail for invalid hash %q", hash)
		}
	}
}

func TestNewID(t *testing.T) {
	a, b := NewID(), NewID()
	if a == b {
		t.Error("NewID should not repeat")
	}
	if len(a) != 32 || strings.Contains(a, "-") {
		t.Errorf("NewID format unexpected: %q", a)
	}
}
