package metrics

import (
	"time"

	"rail/game"
)

// RunMetric summarizes one replay.
type RunMetric struct {
	Turns     int
	Stations  int
	Tracks    int
	Waits     int
	Served    int
	Income    int64
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

type Collector interface {
	Start()
	AddAction(t game.ActionType)
	AddServed(count int, income int64)
	Complete(turns int) RunMetric
}

type collector struct {
	startTime time.Time
	stations  int
	tracks    int
	waits     int
	served    int
	income    int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	m.startTime = time.Now()
}

func (m *collector) AddAction(t game.ActionType) {
	switch {
	case t == game.StationAction:
		m.stations++
	case t.IsTrack():
		m.tracks++
	default:
		m.waits++
	}
}

func (m *collector) AddServed(count int, income int64) {
	m.served += count
	m.income += income
}

func (m *collector) Complete(turns int) RunMetric {
	end := time.Now()
	return RunMetric{
		Turns:     turns,
		Stations:  m.stations,
		Tracks:    m.tracks,
		Waits:     m.waits,
		Served:    m.served,
		Income:    m.income,
		StartTime: m.startTime,
		EndTime:   end,
		Duration:  end.Sub(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                            {}
func (m *dummyCollector) AddAction(t game.ActionType)       {}
func (m *dummyCollector) AddServed(count int, income int64) {}
func (m *dummyCollector) Complete(turns int) RunMetric      { return RunMetric{Turns: turns} }
