package auth

import (
	"testing"
)

func TestPasswordHasher_Hash(t *testing.T) {
	hasher := NewPasswordHasher()

	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "simple password",
			password: "password123",
		},
		{
			name:     "complex password",
			password: "P@ssw0rd!#$%^&*()",
		},
		{
			name:     "long password",
			password: "this-is-a-very-long-password-that-should-still-work-correctly",
		},
		{
			name:     "unicode password",
			password: "密码123",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := hasher.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}

			if digest == "" {
				t.Error("Hash() returned empty string")
			}
			if digest == tt.password {
				t.Error("Hash() returned the original password")
			}

			if !hasher.Verify(tt.password, digest) {
				t.Error("Verify() returned false for correct password")
			}
		})
	}
}

func TestPasswordHasher_Verify(t *testing.T) {
	hasher := NewPasswordHasher()
	password := "testpassword123"

	digest, err := hasher.Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name     string
		password string
		digest   string
		want     bool
	}{
		{
			name:     "correct password",
			password: password,
			digest:   digest,
			want:     true,
		},
		{
			name:     "wrong password",
			password: "wrongpassword",
			digest:   digest,
			want:     false,
		},
		{
			name:     "empty password",
			password: "",
			digest:   digest,
			want:     false,
		},
		{
			name:     "malformed digest",
			password: password,
			digest:   "not-a-bcrypt-digest",
			want:     false,
		},
		{
			name:     "empty digest",
			password: password,
			digest:   "",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hasher.Verify(tt.password, tt.digest); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPasswordHasher_VerifyStrict(t *testing.T) {
	hasher := NewPasswordHasher()
	digest, err := hasher.Hash("correct-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	t.Run("correct password", func(t *testing.T) {
		ok, err := hasher.VerifyStrict("correct-password", digest)
		if err != nil {
			t.Fatalf("VerifyStrict() error = %v", err)
		}
		if !ok {
			t.Error("VerifyStrict() = false for correct password")
		}
	})

	t.Run("wrong password is not an error", func(t *testing.T) {
		ok, err := hasher.VerifyStrict("wrong-password", digest)
		if err != nil {
			t.Fatalf("VerifyStrict() error = %v for wrong password", err)
		}
		if ok {
			t.Error("VerifyStrict() = true for wrong password")
		}
	})

	t.Run("malformed digest is an internal error", func(t *testing.T) {
		ok, err := hasher.VerifyStrict("correct-password", "garbage")
		if ok {
			t.Error("VerifyStrict() = true for malformed digest")
		}
		if err != ErrMalformedDigest {
			t.Errorf("expected ErrMalformedDigest, got %v", err)
		}
	})
}

func TestPasswordHasher_DistinctDigests(t *testing.T) {
	hasher := NewPasswordHasher()

	first, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := hasher.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	// salted: two digests of one password must differ
	if first == second {
		t.Error("expected distinct digests for the same password")
	}
}
