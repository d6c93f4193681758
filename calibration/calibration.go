package calibration

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "calibration",
})

const (
	numLegs   = 4
	numJoints = 3
)

// ErrNotFound is returned by a Store which has never been saved to.
var ErrNotFound = errors.New("no offsets stored")

// Offsets are the servo offsets (coxa, femur, tibia) of each leg, in degrees.
type Offsets [numLegs][numJoints]float64

// Store persists the offsets table. Implementations don't need to check its
// shape; Load does that.
type Store interface {
	Load() ([][]float64, error)
	Save([][]float64) error
}

// Rows returns the offsets as a slice of rows, one per leg.
func (o Offsets) Rows() [][]float64 {
	rows := make([][]float64, numLegs)
	for i := range o {
		rows[i] = append([]float64(nil), o[i][:]...)
	}

	return rows
}

// fromRows returns the offsets in rows, or false if it's the wrong shape.
func fromRows(rows [][]float64) (Offsets, bool) {
	var o Offsets
	if len(rows) != numLegs {
		return o, false
	}

	for i, row := range rows {
		if len(row) != numJoints {
			return o, false
		}

		copy(o[i][:], row)
	}

	return o, true
}

// Load reads the offsets from the store. If there are none, or they're the
// wrong shape, they're reset to zero and saved, so the next load succeeds.
func Load(s Store) (Offsets, error) {
	rows, err := s.Load()
	if err != nil && errors.Cause(err) != ErrNotFound {
		return Offsets{}, errors.Wrap(err, "while loading offsets")
	}

	if err == nil {
		o, ok := fromRows(rows)
		if ok {
			return o, nil
		}

		log.Warnf("stored offsets have the wrong shape; resetting")
	} else {
		log.Infof("no stored offsets; initializing")
	}

	o := Offsets{}
	err = Save(s, o)
	if err != nil {
		return o, err
	}

	return o, nil
}

// Save writes the offsets to the store.
func Save(s Store, o Offsets) error {
	err := s.Save(o.Rows())
	if err != nil {
		return errors.Wrap(err, "while saving offsets")
	}

	return nil
}
