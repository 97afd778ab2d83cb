package tileswap

import "math/rand/v2"

// maxShuffleRerolls bounds the reroll loop for ShuffleRerollSolved. With two or
// more tiles the chance of hitting the solved order this many times in a row
// is negligible.
const maxShuffleRerolls = 64

// Shuffle permutes c in place with a Fisher-Yates pass, from the last position
// down to the second, swapping each with a uniformly chosen position at or
// before it. Every ordering is equally likely.
//
// With ShuffleRerollSolved the pass is repeated while the result is solved,
// so every unsolved ordering stays equally likely. Collections of fewer than
// two tiles cannot be unsolved and are left as they are.
func Shuffle(c *Collection, rng *rand.Rand, policy ShufflePolicy) {
	if c.Len() < 2 {
		return
	}
	shufflePass(c.tiles, rng)
	if policy != ShuffleRerollSolved {
		return
	}
	for range maxShuffleRerolls {
		if !c.Solved() {
			return
		}
		shufflePass(c.tiles, rng)
	}
	if c.Solved() {
		// Deterministic fallback: any transposition is unsolved.
		c.tiles[0], c.tiles[1] = c.tiles[1], c.tiles[0]
	}
}

func shufflePass(tiles []*Tile, rng *rand.Rand) {
	for i := len(tiles) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
}
