package framework

import "time"

// Ordering controls whether sibling tests started with RunGroup run in random order.
type Ordering struct {
	Random bool
	Seed   int64
}

// RandomOrdering returns a random Ordering. If seed is zero, a seed is picked from the clock;
// either way the seed is kept so a failing order can be reproduced.
func RandomOrdering(seed int64) Ordering {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return Ordering{Random: true, Seed: seed}
}

// DeclaredOrdering runs tests in the order they are declared.
func DeclaredOrdering() Ordering {
	return Ordering{}
}
