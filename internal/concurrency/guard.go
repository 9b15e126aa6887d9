// Package concurrency implements the checksum comparison that protects
// stored objects from stale updates.
package concurrency

import (
	"github.com/iudanet/matchsync/internal/matcherr"
	"github.com/iudanet/matchsync/pkg/models"
)

// Guard compares the checksum of stored data with the one the hub sent
type Guard struct {
	blackList []string
}

// NewGuard creates a Guard. Properties in blackList do not take part in the checksum.
func NewGuard(blackList ...string) *Guard {
	return &Guard{blackList: blackList}
}

// CheckSum computes the checksum of stored data for the key
func (g *Guard) CheckSum(key models.Key, stored *models.Data) string {
	return stored.CalculateCheckSumWithBlackList(g.blackList, key.Value, true)
}

// Check returns nil when incoming may overwrite stored.
// Mismatch yields a HasBeenUpdated error with the current checksum and a copy of the stored data.
func (g *Guard) Check(key models.Key, stored, incoming *models.Data) error {
	if incoming.ShouldCheckSumBeIgnored() {
		return nil
	}
	current := g.CheckSum(key, stored)
	if incoming.CheckSum() == current {
		return nil
	}
	snapshot := stored.Clone()
	snapshot.SetCheckSum(current)
	return matcherr.HasBeenUpdated(current, snapshot)
}
