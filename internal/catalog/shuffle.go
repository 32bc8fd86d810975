package catalog

import "math/rand/v2"

// Shuffle permutes items in place with Fisher–Yates. A nil rng uses the
// global source.
func Shuffle(items []Item, rng *rand.Rand) {
	intn := rand.IntN
	if rng != nil {
		intn = rng.IntN
	}
	for i := len(items) - 1; i > 0; i-- {
		j := intn(i + 1)
		items[i], items[j] = items[j], items[i]
	}
}

// Shuffled returns a shuffled copy of items, leaving the input untouched.
func Shuffled(items []Item, rng *rand.Rand) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	Shuffle(out, rng)
	return out
}
