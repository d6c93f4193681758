package servos

import (
	"math"
	"time"

	"github.com/adammck/quadruped/utils"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// PCA9685 registers.
const (
	regMode1    = 0x00
	regMode2    = 0x01
	regLED0     = 0x06
	regAllLED   = 0xFA
	regPrescale = 0xFE

	mode1Restart = 0x80
	mode1AI      = 0x20
	mode1Sleep   = 0x10
	mode2OutDrv  = 0x04

	// The internal oscillator, and the number of steps in each PWM cycle.
	oscillator = 25 * physic.MegaHertz
	pwmSteps   = 4096

	// The full-off bit of the LEDn_OFF_H register.
	fullOff = 0x10
)

const (

	// The address of the board, unless the address pins are bridged.
	PCA9685Addr = 0x40

	// Servos expect a pulse every 20ms.
	ServoFrequency = 50 * physic.Hertz

	// The pulse widths (in steps of 1/4096 of a cycle) at 0 and 180 degrees.
	MinPulse = 102
	MaxPulse = 512
)

// Sleeper is used to wait for the oscillator to start. clock.Clock satisfies
// it.
type Sleeper interface {
	Sleep(d time.Duration)
}

// PCA9685 drives up to 16 hobby servos from a PCA9685 PWM board on an I2C bus.
type PCA9685 struct {
	dev   *i2c.Dev
	bus   i2c.BusCloser
	clock Sleeper
}

// NewPCA9685 configures the board at addr for servos, and returns a driver.
// If bus is an i2c.BusCloser, it's closed by Close.
func NewPCA9685(bus i2c.Bus, addr uint16, clock Sleeper) (*PCA9685, error) {
	p := &PCA9685{
		dev:   &i2c.Dev{Bus: bus, Addr: addr},
		clock: clock,
	}

	if bc, ok := bus.(i2c.BusCloser); ok {
		p.bus = bc
	}

	err := p.init(ServoFrequency)
	if err != nil {
		return nil, errors.Wrapf(err, "while initializing pca9685 at %s", p.dev)
	}

	return p, nil
}

// prescale returns the value of the prescale register for the given PWM
// frequency.
func prescale(f physic.Frequency) byte {
	v := math.Round(float64(oscillator)/float64(pwmSteps*f)) - 1
	return byte(utils.Constrain(v, 3, 255))
}

// pulse returns the PWM off step for the given angle.
func pulse(angle float64) uint16 {
	a := utils.Constrain(angle, 0, 180)
	return uint16(math.Round(utils.Map(a, 0, 180, MinPulse, MaxPulse)))
}

func (p *PCA9685) init(f physic.Frequency) error {
	err := p.writeReg(regAllLED, 0, 0, 0, fullOff)
	if err != nil {
		return err
	}

	err = p.writeReg(regMode2, mode2OutDrv)
	if err != nil {
		return err
	}

	// The prescaler can only be set while the oscillator is off.
	err = p.writeReg(regMode1, mode1Sleep|mode1AI)
	if err != nil {
		return err
	}

	err = p.writeReg(regPrescale, prescale(f))
	if err != nil {
		return err
	}

	err = p.writeReg(regMode1, mode1AI)
	if err != nil {
		return err
	}

	p.clock.Sleep(5 * time.Millisecond)
	return p.writeReg(regMode1, mode1Restart|mode1AI)
}

func (p *PCA9685) writeReg(reg byte, vals ...byte) error {
	_, err := p.dev.Write(append([]byte{reg}, vals...))
	return err
}

// SetAngle sets the pulse width of a channel to hold the servo at the given
// angle (0-180).
func (p *PCA9685) SetAngle(channel int, angle float64) error {
	if channel < 0 || channel >= 16 {
		return errors.Errorf("no such channel: %d", channel)
	}

	off := pulse(angle)
	return p.writeReg(byte(regLED0+4*channel), 0, 0, byte(off&0xFF), byte(off>>8))
}

// Shutdown turns off every output, so the servos go limp.
func (p *PCA9685) Shutdown() error {
	return p.writeReg(regAllLED, 0, 0, 0, fullOff)
}

func (p *PCA9685) Close() error {
	err := p.Shutdown()
	if p.bus != nil {
		err = multierr.Append(err, p.bus.Close())
	}

	return err
}
