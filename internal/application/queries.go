package application

import (
	"time"

	"github.com/bnema/chaos-recipe-cli/internal/domain"
)

type Status struct {
	Inventory    domain.Inventory
	TotalBundles int
	// Refreshes counts status requests that consumed a fetch result, failed and unchanged ones included.
	Refreshes uint64
	// UpdatedAt is when the inventory last changed; zero until the first successful fetch.
	UpdatedAt time.Time
}

type BundleResult struct {
	Bundle      domain.Bundle
	DoubleStash bool
}

func (r BundleResult) Empty() bool {
	return len(r.Bundle) == 0
}
