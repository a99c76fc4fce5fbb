package gridworld

import (
	"fmt"
)

// Default parameters of the wall task
const (
	DefaultWallHeight     int     = 10
	DefaultWallWidth      int     = 5
	DefaultWallNegMag     float64 = -10
	DefaultWallRewardMag  float64 = 100
	DefaultWallLatentCost float64 = -1
	DefaultWallProb       float64 = 0.8
	DefaultWallGamma      float64 = 0.9
)

// WallRewards returns the rewards of a gridworld with a wall in its
// upper right corner. Every state costs latentCost, the states in
// columns [c-1-wallWidth, c-1) of rows [0, wallHeight) pay negMag,
// and the top right state pays rewardMag.
func WallRewards(r, c, wallWidth, wallHeight int, negMag, rewardMag,
	latentCost float64) map[int]float64 {
	rewards := make(map[int]float64, r*c)
	for s := 0; s < r*c; s++ {
		rewards[s] = latentCost
	}

	wallEndX := c - 1
	wallBeginX := wallEndX - wallWidth
	for x := wallBeginX; x < wallEndX; x++ {
		for y := 0; y < wallHeight; y++ {
			if x >= 0 && y < r {
				rewards[cToInd(x, y, c)] = negMag
			}
		}
	}

	rewards[c-1] = rewardMag
	return rewards
}

// NewWall returns a gridworld with r rows and c columns whose goal in
// the top right corner is shielded by a wall c-2 columns wide and r-1
// rows tall. The agent starts in the top left corner, and must either
// cross the wall or walk around it through the bottom row. The goal is
// absorbing.
func NewWall(r, c int, negMag, rewardMag, latentCost float64) (*GridWorld,
	error) {
	if r < 2 || c < 3 {
		return nil, fmt.Errorf("newWall: wall world needs at least 2 rows "+
			"and 3 columns, got (%d, %d)", r, c)
	}

	rewards := WallRewards(r, c, c-2, r-1, negMag, rewardMag, latentCost)
	return New(r, c, rewards, []int{c - 1}, Simple, 0)
}
