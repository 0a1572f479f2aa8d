package crypto

import (
	"strings"
	"testing"
)

func hashOrFatal(t *testing.T, password string) string {
	t.Helper()
	hash, err := NewArgon2().Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	return hash
}

// Requirement: hashes are encoded in the standard argon2id format and never
// contain the plaintext password.
func TestArgon2Hash(t *testing.T) {
	hash := hashOrFatal(t, "correct horse battery")

	tests := []struct {
		name  string
		check func(string) bool
	}{
		{
			name:  "starts with argon2id marker",
			check: func(h string) bool { return strings.HasPrefix(h, "$argon2id$") },
		},
		{
			name:  "has six dollar-separated parts",
			check: func(h string) bool { return len(strings.Split(h, "$")) == 6 },
		},
		{
			name:  "does not embed the plaintext",
			check: func(h string) bool { return !strings.Contains(h, "correct horse battery") },
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if !test.check(hash) {
				t.Errorf("hash %q failed check", hash)
			}
		})
	}

	t.Run("generates unique salts", func(t *testing.T) {
		if hashOrFatal(t, "same input") == hashOrFatal(t, "same input") {
			t.Error("two hashes of the same password should differ")
		}
	})
}

// Requirement: Verify accepts the original password and rejects everything else.
func TestArgon2Verify(t *testing.T) {
	hash := hashOrFatal(t, "SecurePass123!")

	tests := []struct {
		name     string
		password string
		hash     string
		want     bool
		wantErr  bool
	}{
		{name: "correct password", password: "SecurePass123!", hash: hash, want: true},
		{name: "wrong password", password: "wrong", hash: hash, want: false},
		{name: "garbage hash", password: "SecurePass123!", hash: "not-a-hash", wantErr: true},
		{name: "unsupported algorithm", password: "x", hash: "$argon2i$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := NewArgon2().Verify(test.password, test.hash)
			if (err != nil) != test.wantErr {
				t.Fatalf("Verify() error = %v, wantErr %v", err, test.wantErr)
			}
			if err == nil && got != test.want {
				t.Errorf("Verify() = %v, want %v", got, test.want)
			}
		})
	}
}
