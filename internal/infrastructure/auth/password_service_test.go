package auth

import "testing"

func TestPasswordServiceImpl_HashAndCompare(t *testing.T) {
	svc := NewPasswordService()

	hash, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "password123" {
		t.Fatal("hash equals the plaintext")
	}

	if !svc.Compare(hash, "password123") {
		t.Error("Compare() rejected the right password")
	}
	if svc.Compare(hash, "password124") {
		t.Error("Compare() accepted a wrong password")
	}
	if svc.Compare("", "password123") {
		t.Error("Compare() accepted against an empty hash")
	}
}

func TestPasswordServiceImpl_HashIsSalted(t *testing.T) {
	svc := NewPasswordService()

	a, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	b, err := svc.Hash("password123")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if a == b {
		t.Error("two hashes of the same password are identical")
	}
}
