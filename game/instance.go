package game

import (
	"fmt"

	"rail/meta"
)

// Commuter wants to travel from Origin to Destination.
type Commuter struct {
	Origin      Position `json:"origin"`
	Destination Position `json:"destination"`
}

// Distance is the one-time income a commuter pays once served.
func (c Commuter) Distance() int {
	return Manhattan(c.Origin, c.Destination)
}

// Instance is an immutable problem: board side, starting budget, turn limit and commuters.
type Instance struct {
	N         int        `json:"n"`
	Budget    int64      `json:"budget"`
	Turns     int        `json:"turns"`
	Commuters []Commuter `json:"commuters"`
}

// M returns the number of commuters.
func (inst *Instance) M() int {
	return len(inst.Commuters)
}

// Validate checks the invariants every parsed or generated instance satisfies.
func (inst *Instance) Validate() error {
	if inst.N != meta.GridSize {
		return fmt.Errorf("grid size %d, want %d", inst.N, meta.GridSize)
	}
	if m := inst.M(); m < 1 || m > meta.MaxCommuters {
		return fmt.Errorf("commuter count %d out of range [1, %d]", m, meta.MaxCommuters)
	}
	if inst.Budget < 1 || inst.Budget > meta.MaxParsedBudget {
		return fmt.Errorf("budget %d out of range [1, %d]", inst.Budget, meta.MaxParsedBudget)
	}
	if inst.Turns < 1 || inst.Turns > meta.MaxTurns {
		return fmt.Errorf("turn limit %d out of range [1, %d]", inst.Turns, meta.MaxTurns)
	}
	for i, c := range inst.Commuters {
		if !c.Origin.InBounds() || !c.Destination.InBounds() {
			return fmt.Errorf("commuter %d: cell out of the board", i)
		}
	}
	return nil
}
