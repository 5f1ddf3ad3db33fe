// meta/meta.go
package meta

// GridSize is the side length of every board.
const GridSize = 50

// MaxTurns is the turn limit of generated instances.
const MaxTurns = 800

// StationCost is the price of one station.
const StationCost = 5000

// TrackCost is the price of one track segment.
const TrackCost = 100

// ServiceRadius is the Manhattan radius around a commuter endpoint searched for stations.
const ServiceRadius = 2

// Commuter count bounds.
const (
	MinCommuters = 50
	MaxCommuters = 1600
)

// Budget bounds of generated instances. Parsing accepts anything in [1, MaxParsedBudget].
const (
	MinBudget       = 11000
	MaxBudget       = 20000
	MaxParsedBudget = 1_000_000_000
)

// MinCommuteDistance is the smallest Manhattan distance between an accepted origin and destination.
const MinCommuteDistance = 5

// BudgetOffset and BudgetPerCell shape the generated budget:
// budget = uniform[lower, BudgetPerCell*GridSize] + BudgetOffset.
const (
	BudgetOffset  = 1000
	BudgetPerCell = 380
)
