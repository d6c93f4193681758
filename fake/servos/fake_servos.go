package servos

import (
	log "github.com/sirupsen/logrus"
)

var logger = log.WithFields(log.Fields{
	"pkg": "fake",
})

// Write is a single angle sent to a channel.
type Write struct {
	Channel int
	Angle   float64
}

// FakeServos is a servo driver which records everything written to it,
// rather than moving anything.
type FakeServos struct {
	Writes  []Write
	Batches int
	Closed  bool

	// Returned by every call to SetAngle, if set.
	Err error

	angles map[int]float64
}

func New() *FakeServos {
	return &FakeServos{
		angles: map[int]float64{},
	}
}

func (s *FakeServos) SetAngle(channel int, angle float64) error {
	logger.Debugf("channel %d = %0.2f", channel, angle)
	s.Writes = append(s.Writes, Write{channel, angle})
	s.angles[channel] = angle
	return s.Err
}

// Batch runs f and counts the number of times it was called, which is the
// number of ticks sent to the servos.
func (s *FakeServos) Batch(f func()) error {
	s.Batches++
	f()
	return nil
}

// Angle returns the last angle written to the given channel, and whether any
// angle has been written to it at all.
func (s *FakeServos) Angle(channel int) (float64, bool) {
	a, ok := s.angles[channel]
	return a, ok
}

// Reset forgets everything which has been written.
func (s *FakeServos) Reset() {
	s.Writes = nil
	s.Batches = 0
	s.angles = map[int]float64{}
}

func (s *FakeServos) Close() error {
	logger.Debugf("close")
	s.Closed = true
	return nil
}
