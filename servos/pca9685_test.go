package servos

import (
	"testing"

	fake_clock "github.com/adammck/quadruped/fake/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

func TestPrescale(t *testing.T) {
	assert.Equal(t, byte(121), prescale(50*physic.Hertz))
	assert.Equal(t, byte(3), prescale(2000*physic.Hertz))
	assert.Equal(t, byte(255), prescale(10*physic.Hertz))
}

func TestPulse(t *testing.T) {
	type eg struct {
		angle float64
		exp   uint16
	}

	examples := []eg{
		{0, 102},
		{90, 307},
		{180, 512},
		{-10, 102},
		{200, 512},
	}

	for i, x := range examples {
		assert.Equal(t, x.exp, pulse(x.angle), "example %d", i+1)
	}
}

func TestNewPCA9685(t *testing.T) {
	bus := &i2ctest.Record{}
	c := &fake_clock.FakeClock{}

	_, err := NewPCA9685(bus, PCA9685Addr, c)
	require.NoError(t, err)

	assert.Equal(t, []i2ctest.IO{
		{Addr: 0x40, W: []byte{regAllLED, 0, 0, 0, fullOff}},
		{Addr: 0x40, W: []byte{regMode2, mode2OutDrv}},
		{Addr: 0x40, W: []byte{regMode1, mode1Sleep | mode1AI}},
		{Addr: 0x40, W: []byte{regPrescale, 121}},
		{Addr: 0x40, W: []byte{regMode1, mode1AI}},
		{Addr: 0x40, W: []byte{regMode1, mode1Restart | mode1AI}},
	}, bus.Ops)

	assert.Equal(t, 1, c.Sleeps)
}

func TestPCA9685SetAngle(t *testing.T) {
	bus := &i2ctest.Record{}
	p, err := NewPCA9685(bus, PCA9685Addr, &fake_clock.FakeClock{})
	require.NoError(t, err)
	bus.Ops = nil

	require.NoError(t, p.SetAngle(0, 0))
	require.NoError(t, p.SetAngle(15, 180))
	assert.Equal(t, []i2ctest.IO{
		{Addr: 0x40, W: []byte{0x06, 0, 0, 102, 0}},
		{Addr: 0x40, W: []byte{0x42, 0, 0, 0x00, 0x02}},
	}, bus.Ops)

	assert.Error(t, p.SetAngle(16, 90))
	assert.Error(t, p.SetAngle(-1, 90))
}

func TestPCA9685Close(t *testing.T) {
	bus := &i2ctest.Record{}
	p, err := NewPCA9685(bus, PCA9685Addr, &fake_clock.FakeClock{})
	require.NoError(t, err)
	bus.Ops = nil

	require.NoError(t, p.Close())
	assert.Equal(t, []i2ctest.IO{
		{Addr: 0x40, W: []byte{regAllLED, 0, 0, 0, fullOff}},
	}, bus.Ops)
}
