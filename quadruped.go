package quadruped

import (
	"sync/atomic"

	"github.com/adammck/quadruped/calibration"
	"github.com/adammck/quadruped/components/legs"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "quadruped",
})

// Driver is the servo board.
type Driver interface {
	legs.Actuator
	Close() error
}

type Quadruped struct {
	Legs *legs.Legs

	driver Driver
	store  calibration.Store

	shutdown atomic.Bool
}

// New creates a Quadruped which moves the servos on the given driver, sleeping
// between ticks on the given clock, with offsets persisted in store.
func New(driver Driver, store calibration.Store, clock legs.Sleeper) *Quadruped {
	return &Quadruped{
		Legs:   legs.New(driver, clock),
		driver: driver,
		store:  store,
	}
}

// toAngles converts a row of the offsets table.
func toAngles(row [3]float64) legs.Angles {
	return legs.Angles{Coxa: row[0], Femur: row[1], Tibia: row[2]}
}

func fromAngles(a legs.Angles) [3]float64 {
	return [3]float64{a.Coxa, a.Femur, a.Tibia}
}

// Stop asks the robot to stop moving and shut down. It's safe to call from any
// goroutine. Movements can't be interrupted, so it takes effect between them.
func (q *Quadruped) Stop() {
	q.shutdown.Store(true)
}

// Stopping returns true once Stop has been called.
func (q *Quadruped) Stopping() bool {
	return q.shutdown.Load()
}

// LoadOffsets reads the servo offsets from the store and applies them to the
// legs.
func (q *Quadruped) LoadOffsets() error {
	o, err := calibration.Load(q.store)
	if err != nil {
		return err
	}

	var offsets [4]legs.Angles
	for i := range o {
		offsets[i] = toAngles(o[i])
	}

	q.Legs.SetOffsets(offsets)
	return nil
}

// SaveOffsets writes the current servo offsets of the legs to the store.
func (q *Quadruped) SaveOffsets() error {
	var o calibration.Offsets
	for i, a := range q.Legs.Pose.Offsets() {
		o[i] = fromAngles(a)
	}

	return calibration.Save(q.store, o)
}

// SetLegOffsets replaces the servo offsets of a single leg and persists them.
func (q *Quadruped) SetLegOffsets(n int, a legs.Angles) error {
	offsets := q.Legs.Pose.Offsets()
	if n < 0 || n >= len(offsets) {
		return errors.Errorf("no such leg: %d", n)
	}

	log.Infof("offsets of leg %d: %s", n, a)
	offsets[n] = a
	q.Legs.SetOffsets(offsets)

	return q.SaveOffsets()
}

// Boot loads the offsets and stands up. This must be called before any other
// movement, to get the servos into a known state.
func (q *Quadruped) Boot() error {
	err := q.LoadOffsets()
	if err != nil {
		return errors.Wrap(err, "while booting")
	}

	q.Legs.StandUp()
	return nil
}

// Close releases the servo driver, which powers the servos down.
func (q *Quadruped) Close() error {
	log.Infof("shutting down")

	err := q.driver.Close()
	if err != nil {
		return errors.Wrap(err, "while closing servo driver")
	}

	return nil
}
