package crypto_test

import (
	"errors"
	"testing"
	"time"

	"quip/internal/crypto"
)

// Cheap parameters keep the tests fast.
var testParams = crypto.Argon2idParams{MemoryKiB: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestPassword_HashAndVerify(t *testing.T) {
	enc, err := crypto.HashPassword("secret1", testParams)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	ok, err := crypto.VerifyPassword(enc, "secret1", testParams)
	if err != nil || !ok {
		t.Fatalf("verify correct password: ok=%v err=%v", ok, err)
	}
	ok, err = crypto.VerifyPassword(enc, "secret2", testParams)
	if err != nil || ok {
		t.Fatalf("verify wrong password: ok=%v err=%v", ok, err)
	}
}

func TestPassword_SaltsDiffer(t *testing.T) {
	a, _ := crypto.HashPassword("same", testParams)
	b, _ := crypto.HashPassword("same", testParams)
	if a == b {
		t.Fatal("two hashes of the same password are identical")
	}
}

func TestPassword_RejectsMalformedHash(t *testing.T) {
	for _, enc := range []string{
		"",
		"plain",
		"$argon2i$v=19$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=18$m=1024,t=1,p=1$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=19$m=0,t=1,p=1$c2FsdHNhbHRzYWx0$aGFzaGhhc2hoYXNoaGFzaA",
		"$argon2id$v=19$m=1024,t=1,p=1$!!$aGFzaGhhc2hoYXNoaGFzaA",
	} {
		if _, err := crypto.VerifyPassword(enc, "x", testParams); !errors.Is(err, crypto.ErrInvalidHash) {
			t.Fatalf("%q: want ErrInvalidHash, got %v", enc, err)
		}
	}
}

func TestPassword_RefusesExcessiveCost(t *testing.T) {
	heavy := testParams
	heavy.Iterations = 5
	enc, err := crypto.HashPassword("pw", heavy)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if _, err := crypto.VerifyPassword(enc, "pw", testParams); !errors.Is(err, crypto.ErrInvalidHash) {
		t.Fatalf("want ErrInvalidHash, got %v", err)
	}
}

func TestNewID_UniqueAndSorted(t *testing.T) {
	now := time.Now()
	prev := ""
	for i := 0; i < 1000; i++ {
		id, err := crypto.NewID(now)
		if err != nil {
			t.Fatalf("NewID: %v", err)
		}
		if len(id) != 26 {
			t.Fatalf("unexpected id length %d", len(id))
		}
		if id <= prev {
			t.Fatalf("ids not strictly increasing: %s after %s", id, prev)
		}
		prev = id
	}
}

func TestWipe(t *testing.T) {
	b := []byte{1, 2, 3}
	crypto.Wipe(b)
	for _, v := range b {
		if v != 0 {
			t.Fatalf("byte not wiped: %v", b)
		}
	}
}
