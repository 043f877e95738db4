package auth

import (
	"errors"
	"strings"
	"testing"
)

// cheap parameters keep the suite fast; DefaultParams are checked for format only.
var testParams = Params{Time: 1, Memory: 1024, Threads: 1, KeyLen: 32, SaltLen: 16}

func TestHasher_Hash_Format(t *testing.T) {
	t.Parallel()

	hash, err := NewHasher(DefaultParams).Hash("correct horse battery staple")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=") {
		t.Errorf("Hash should be in PHC format, got: %s", hash)
	}

	parts := strings.Split(hash, "$")
	if len(parts) != 6 {
		t.Fatalf("Hash should have 6 parts, got: %d", len(parts))
	}
	if parts[2] != "v=19" {
		t.Errorf("Expected v=19, got: %s", parts[2])
	}
	if parts[3] != "m=65536,t=3,p=4" {
		t.Errorf("Expected m=65536,t=3,p=4, got: %s", parts[3])
	}
}

func TestHasher_Hash_Uniqueness(t *testing.T) {
	t.Parallel()

	h := NewHasher(testParams)

	hash1, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	hash2, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Same password should produce different hashes due to random salt")
	}

	match1, _ := h.Verify("secret1", hash1)
	match2, _ := h.Verify("secret1", hash2)
	if !match1 || !match2 {
		t.Error("Both hashes should verify correctly")
	}
}

func TestHasher_Verify(t *testing.T) {
	t.Parallel()

	h := NewHasher(testParams)
	hash, err := h.Hash("secret1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{"correct", "secret1", true},
		{"wrong", "secret2", false},
		{"empty", "", false},
		{"case differs", "SECRET1", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			match, err := h.Verify(tt.password, hash)
			if err != nil {
				t.Fatalf("Verify should not return error: %v", err)
			}
			if match != tt.want {
				t.Errorf("Verify(%q) = %v, want %v", tt.password, match, tt.want)
			}
		})
	}
}

func TestHasher_Verify_UsesParamsFromHash(t *testing.T) {
	t.Parallel()

	hash, err := NewHasher(testParams).Hash("secret1")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}

	match, err := NewHasher(DefaultParams).Verify("secret1", hash)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if !match {
		t.Error("hash made with other parameters should still verify")
	}
}

func TestHasher_Verify_InvalidHashFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong format", "not-a-hash"},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=3,p=4$salt$hash"},
		{"missing parts", "$argon2id$v=19$m=65536"},
		{"bad params", "$argon2id$v=19$m=x,t=3,p=4$c29tZXNhbHQ$aGFzaA"},
		{"bad salt", "$argon2id$v=19$m=1024,t=1,p=1$!!!$aGFzaA"},
		{"empty key", "$argon2id$v=19$m=1024,t=1,p=1$c29tZXNhbHQ$"},
	}

	h := NewHasher(testParams)
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := h.Verify("password", tt.hash)
			if !errors.Is(err, ErrInvalidHash) {
				t.Errorf("Verify(%q) error = %v, want %v", tt.hash, err, ErrInvalidHash)
			}
		})
	}
}

func TestHasher_Verify_WrongVersion(t *testing.T) {
	t.Parallel()

	match, err := NewHasher(testParams).Verify("password", "$argon2id$v=18$m=65536,t=3,p=4$c29tZXNhbHRoZXJl$c29tZWhhc2hoZXJl")
	if !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("Expected ErrIncompatibleVersion, got: %v", err)
	}
	if match {
		t.Error("Should not match with incompatible version")
	}
}
