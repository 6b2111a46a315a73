// Package daily provides the daily puzzle: one deterministic word (and set
// of hint letters) per theme per UTC day, shared by every player.
package daily

import (
	"crypto/sha256"
	"io"
	"math/rand/v2"
	"time"

	"golang.org/x/crypto/hkdf"

	"github.com/robalobadob/hangman/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Source returns a deterministic random source for (secret, date, theme).
// The seed is HKDF-SHA256(secret) with "date|theme" as salt.
func Source(secret, date string, theme words.Theme) *rand.Rand {
	kdf := hkdf.New(sha256.New, []byte(secret), []byte(date+"|"+string(theme)), []byte("hangman daily"))
	var seed [32]byte
	if _, err := io.ReadFull(kdf, seed[:]); err != nil {
		// hkdf only fails past 255*HashLen bytes of output.
		panic(err)
	}
	return rand.New(rand.NewChaCha8(seed))
}
