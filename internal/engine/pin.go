package engine

import (
	"context"
	"regexp"

	log "github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/ptomo194059/family-growth/internal/storage"
)

var pinPattern = regexp.MustCompile(`^\d{4}$`)

// SetPIN replaces the parent PIN. The PIN must be exactly four digits and is
// stored as a bcrypt hash.
func (s *Service) SetPIN(ctx context.Context, pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrInvalidPIN
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(st *storage.State) error {
		st.PINHash = string(hash)
		log.Info("parent PIN updated")
		return nil
	})
}

// VerifyPIN checks a PIN attempt against the stored hash. A wrong PIN
// returns ErrWrongPIN.
func (s *Service) VerifyPIN(pin string) error {
	if !pinPattern.MatchString(pin) {
		return ErrInvalidPIN
	}
	s.mu.Lock()
	hash := s.state.PINHash
	s.mu.Unlock()
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)); err != nil {
		return ErrWrongPIN
	}
	return nil
}
