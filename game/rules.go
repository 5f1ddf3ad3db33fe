package game

// Rules prices construction and bounds the station search around commuters.
type Rules interface {
	StationCost() int64
	TrackCost() int64
	ServiceRadius() int
}
