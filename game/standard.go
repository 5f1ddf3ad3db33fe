package game

import "rail/meta"

type StandardRules struct {
	Station int64
	Track   int64
	Radius  int
}

func NewStandardRules() *StandardRules {
	return &StandardRules{
		Station: meta.StationCost,
		Track:   meta.TrackCost,
		Radius:  meta.ServiceRadius,
	}
}

func (sr *StandardRules) StationCost() int64 {
	return sr.Station
}

func (sr *StandardRules) TrackCost() int64 {
	return sr.Track
}

func (sr *StandardRules) ServiceRadius() int {
	return sr.Radius
}
