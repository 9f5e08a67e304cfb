package service

import (
	"context"
	"log"
	"time"
)

// StartRevocationSweeper prunes ledger entries for tokens that are already
// past their own expiry. An expired token fails verification on its own, so
// dropping its entry can never produce a false "not revoked" answer.
func (s *AuthService) StartRevocationSweeper(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(s.sweepInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.repo.DeleteExpiredRevocations(ctx)
				if err != nil {
					log.Printf("revocation sweep failed: %v", err)
					continue
				}
				if n > 0 {
					log.Printf("revocation sweep removed %d expired entries", n)
				}
			}
		}
	}()
}
