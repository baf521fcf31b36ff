package security

import (
	"bytes"
	"testing"
)

func TestHashPasswordProducesSaltedBlob(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if len(hash) != SaltLength+KeyLength {
		t.Errorf("hash length = %d, want %d", len(hash), SaltLength+KeyLength)
	}

	// Same password must produce a different blob thanks to the fresh salt
	hash2, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if bytes.Equal(hash, hash2) {
		t.Error("two hashes of the same password are identical, salt not applied")
	}
}

func TestVerifyPassword(t *testing.T) {
	password := "mellon"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		stored   []byte
		want     bool
	}{
		{name: "correct password", password: password, stored: hash, want: true},
		{name: "wrong password", password: "speak friend", stored: hash, want: false},
		{name: "empty password", password: "", stored: hash, want: false},
		{name: "truncated blob", password: password, stored: hash[:SaltLength], want: false},
		{name: "empty blob", password: password, stored: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyPassword(tt.password, tt.stored); got != tt.want {
				t.Errorf("VerifyPassword() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVerifyPasswordTamperedKey(t *testing.T) {
	hash, err := HashPassword("precious")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	tampered := append([]byte(nil), hash...)
	tampered[len(tampered)-1] ^= 0xff

	if VerifyPassword("precious", tampered) {
		t.Error("VerifyPassword() accepted a tampered key")
	}
}
