package game

import "fmt"

// ActionType is the numeric kind written at the start of every action line.
type ActionType int

const (
	WaitAction    ActionType = -1
	StationAction ActionType = 0
	// Track shapes, named by the two sides they connect.
	TrackHorizontal ActionType = 1 // left-right
	TrackVertical   ActionType = 2 // up-down
	TrackLeftDown   ActionType = 3
	TrackLeftUp     ActionType = 4
	TrackRightUp    ActionType = 5
	TrackRightDown  ActionType = 6
)

var trackEdges = map[ActionType]EdgeSet{
	TrackHorizontal: EdgesOf(Left, Right),
	TrackVertical:   EdgesOf(Up, Down),
	TrackLeftDown:   EdgesOf(Left, Down),
	TrackLeftUp:     EdgesOf(Left, Up),
	TrackRightUp:    EdgesOf(Right, Up),
	TrackRightDown:  EdgesOf(Right, Down),
}

func (t ActionType) Valid() bool {
	return t >= WaitAction && t <= TrackRightDown
}

func (t ActionType) IsTrack() bool {
	return t >= TrackHorizontal && t <= TrackRightDown
}

// Edges returns the sides occupied by a build of this kind; empty for a wait.
func (t ActionType) Edges() EdgeSet {
	switch {
	case t == StationAction:
		return StationEdges
	case t.IsTrack():
		return trackEdges[t]
	default:
		return 0
	}
}

func (t ActionType) String() string {
	switch t {
	case WaitAction:
		return "wait"
	case StationAction:
		return "station"
	case TrackHorizontal:
		return "track-horizontal"
	case TrackVertical:
		return "track-vertical"
	case TrackLeftDown:
		return "track-left-down"
	case TrackLeftUp:
		return "track-left-up"
	case TrackRightUp:
		return "track-right-up"
	case TrackRightDown:
		return "track-right-down"
	default:
		return fmt.Sprintf("ActionType(%d)", int(t))
	}
}
