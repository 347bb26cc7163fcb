package auth

import "testing"

func TestPasswordHashingLifecycle(t *testing.T) {
	password := "S3curePass!"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("unexpected error hashing password: %v", err)
	}
	if hash == "" {
		t.Fatal("expected hash to be populated")
	}

	if err := VerifyPassword(hash, password); err != nil {
		t.Fatalf("expected password to verify, got error: %v", err)
	}

	if err := VerifyPassword(hash, "wrong"); err == nil {
		t.Fatal("expected verification to fail for wrong password")
	}
}

func TestCodeHashingLifecycle(t *testing.T) {
	hash, err := HashCode("493017")
	if err != nil {
		t.Fatalf("unexpected error hashing code: %v", err)
	}

	if err := VerifyCode(hash, "493017"); err != nil {
		t.Fatalf("expected code to verify, got error: %v", err)
	}

	if err := VerifyCode(hash, "493018"); err == nil {
		t.Fatal("expected verification to fail for wrong code")
	}
}
