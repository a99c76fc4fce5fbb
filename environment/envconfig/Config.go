// Package envconfig provides configuration structs for configuring
// worlds with default parameters. World configurations in this package
// are JSON serializable.
package envconfig

import (
	"fmt"
	"strings"

	env "github.com/samuelfneumann/gomdp/environment"
	"github.com/samuelfneumann/gomdp/environment/corridor"
	"github.com/samuelfneumann/gomdp/environment/gamblers"
	"github.com/samuelfneumann/gomdp/environment/gridworld"
	"github.com/samuelfneumann/gomdp/environment/riverswim"
)

// WorldName stores the name of worlds that can be configured with this
// package
type WorldName string

// Worlds available for configuration
const (
	Corridor  WorldName = "Corridor"
	RiverSwim WorldName = "RiverSwim"
	Gamblers  WorldName = "Gamblers"
	Wall      WorldName = "Wall"
)

// Config implements a specific configuration of a specific world,
// together with the success probability and discount factor the world
// is studied with. Not all fields are used by all worlds:
//
//	World		Fields
//	Corridor	Length, BigR
//	RiverSwim	Width, BigR, SmallR
//	Gamblers	Width, BigR, SmallR, VaryContinuation
//	Wall		Height, Width, NegMag, BigR, LatentCost
type Config struct {
	World WorldName
	Prob  float64
	Gamma float64

	Length int
	Height int
	Width  int

	BigR       float64
	SmallR     float64
	NegMag     float64
	LatentCost float64

	VaryContinuation bool
}

// ParseWorldName returns the WorldName called name, ignoring case
func ParseWorldName(name string) (WorldName, error) {
	for _, w := range []WorldName{Corridor, RiverSwim, Gamblers, Wall} {
		if strings.EqualFold(name, string(w)) {
			return w, nil
		}
	}
	return "", fmt.Errorf("parseWorldName: no such world %v", name)
}

// Default returns the default configuration of a world
func Default(name WorldName) (Config, error) {
	switch name {
	case Corridor:
		return Config{
			World:  Corridor,
			Prob:   corridor.DefaultProb,
			Gamma:  corridor.DefaultGamma,
			Length: 5,
			BigR:   corridor.TerminalReward,
		}, nil

	case RiverSwim:
		return Config{
			World:  RiverSwim,
			Prob:   riverswim.DefaultProb,
			Gamma:  riverswim.DefaultGamma,
			Height: 1,
			Width:  riverswim.DefaultWidth,
			BigR:   riverswim.DefaultBigR,
			SmallR: riverswim.DefaultSmallR,
		}, nil

	case Gamblers:
		return Config{
			World:            Gamblers,
			Prob:             gamblers.DefaultProb,
			Gamma:            gamblers.DefaultGamma,
			Height:           gamblers.Height,
			Width:            gamblers.DefaultWidth,
			BigR:             gamblers.DefaultBigR,
			SmallR:           gamblers.DefaultSmallR,
			VaryContinuation: true,
		}, nil

	case Wall:
		return Config{
			World:      Wall,
			Prob:       gridworld.DefaultWallProb,
			Gamma:      gridworld.DefaultWallGamma,
			Height:     gridworld.DefaultWallHeight,
			Width:      gridworld.DefaultWallWidth,
			BigR:       gridworld.DefaultWallRewardMag,
			NegMag:     gridworld.DefaultWallNegMag,
			LatentCost: gridworld.DefaultWallLatentCost,
		}, nil
	}

	return Config{}, fmt.Errorf("default: no such world %v", name)
}

// Create returns the world described by the Config
func (c Config) Create() (env.World, error) {
	switch c.World {
	case Corridor:
		w, err := corridor.NewWithReward(c.Length, c.BigR)
		if err != nil {
			return nil, fmt.Errorf("create: %v", err)
		}
		return w, nil

	case RiverSwim:
		w, err := riverswim.New(c.Width, c.BigR, c.SmallR)
		if err != nil {
			return nil, fmt.Errorf("create: %v", err)
		}
		return w, nil

	case Gamblers:
		w, err := gamblers.New(c.Width, c.BigR, c.SmallR, c.VaryContinuation)
		if err != nil {
			return nil, fmt.Errorf("create: %v", err)
		}
		return w, nil

	case Wall:
		w, err := gridworld.NewWall(c.Height, c.Width, c.NegMag, c.BigR,
			c.LatentCost)
		if err != nil {
			return nil, fmt.Errorf("create: %v", err)
		}
		return w, nil
	}

	return nil, fmt.Errorf("create: cannot create world %v, no such world",
		c.World)
}

// With returns a copy of the Config with the parameter called name set
// to value. Integer parameters must be given integral values.
func (c Config) With(name string, value float64) (Config, error) {
	integral := func() (int, error) {
		if value != float64(int(value)) {
			return 0, fmt.Errorf("with: parameter %v must be an integer, "+
				"got %v", name, value)
		}
		return int(value), nil
	}

	var err error
	switch name {
	case "prob":
		c.Prob = value
	case "gamma":
		c.Gamma = value
	case "length":
		c.Length, err = integral()
	case "height":
		c.Height, err = integral()
	case "width":
		c.Width, err = integral()
	case "big_r":
		c.BigR = value
	case "small_r":
		c.SmallR = value
	case "neg_mag":
		c.NegMag = value
	case "latent_cost":
		c.LatentCost = value
	default:
		err = fmt.Errorf("with: no such parameter %v", name)
	}
	return c, err
}
