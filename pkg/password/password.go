package password

import (
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// MaxLength is the longest password bcrypt accepts, in bytes
const MaxLength = 72

// Hasher derives and checks bcrypt verifiers. The work factor is fixed at bcrypt.DefaultCost.
type Hasher struct {
	log  *logrus.Logger
	cost int
}

func NewHasher(log *logrus.Logger) *Hasher {
	return &Hasher{
		log:  log,
		cost: bcrypt.DefaultCost,
	}
}

// Hash returns a verifier string carrying algorithm tag, cost, salt and digest.
// A fresh salt is drawn on every call.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored verifier. Any failure other than a
// plain mismatch is logged and reported as false, so callers see one outcome for both.
func (h *Hasher) Verify(plaintext, verifier string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(verifier), []byte(plaintext))
	if err == nil {
		return true
	}
	if !errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		h.log.Warnf("Failed to verify password: %+v", err)
	}
	return false
}
