package crypto

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"gitlab.com/hashburst.net/internal/core/ports/secondary"
)

// HashCost is the bcrypt cost factor applied to every work item. Cost 10
// keeps a single hash in the tens-of-milliseconds range, which is what makes
// the batch CPU-bound enough to measure parallel speedup.
const HashCost = 10

var _ secondary.Hasher = &BcryptHasher{}

// BcryptHasher is the CPU-bound compute capability applied to work items.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: HashCost}
}

// Compute hashes a single item. The work is synchronous and bounded; the
// context is accepted for interface symmetry but bcrypt itself is not
// interruptible.
func (h *BcryptHasher) Compute(_ context.Context, item string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(item), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash item: %w", err)
	}
	return string(hash), nil
}
