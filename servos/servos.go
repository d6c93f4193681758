package servos

import (
	"github.com/jacobsa/go-serial/serial"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "servos",
})

// Driver is a board which can move hobby servos, addressed by channel.
type Driver interface {
	SetAngle(channel int, angle float64) error
	Close() error
}

// Config selects and configures a driver.
type Config struct {
	Driver string // "pca9685" or "dynamixel"

	// pca9685
	Bus  string // I2C bus name, or empty for the first one
	Addr uint16

	// dynamixel
	Port   string
	Baud   uint
	BaseID int
}

// DefaultConfig returns the config of the stock robot.
func DefaultConfig() Config {
	return Config{
		Driver: "pca9685",
		Addr:   PCA9685Addr,
		Port:   "/dev/ttyACM0",
		Baud:   1000000,
		BaseID: 1,
	}
}

// Open opens the configured driver.
func Open(cfg Config, clock Sleeper) (Driver, error) {
	switch cfg.Driver {
	case "pca9685":
		return OpenPCA9685(cfg.Bus, cfg.Addr, clock)

	case "dynamixel":
		return OpenDynamixel(cfg.Port, cfg.Baud, cfg.BaseID)
	}

	return nil, errors.Errorf("unknown servo driver: %q", cfg.Driver)
}

// OpenPCA9685 initializes the host drivers, then opens the named I2C bus and
// the board on it.
func OpenPCA9685(busName string, addr uint16, clock Sleeper) (*PCA9685, error) {
	_, err := host.Init()
	if err != nil {
		return nil, errors.Wrap(err, "while initializing host drivers")
	}

	log.Infof("opening i2c bus %q", busName)
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.Wrapf(err, "while opening i2c bus %q", busName)
	}

	p, err := NewPCA9685(bus, addr, clock)
	if err != nil {
		bus.Close()
		return nil, err
	}

	return p, nil
}

// OpenDynamixel opens the serial port of a Dynamixel bus.
func OpenDynamixel(portName string, baud uint, baseID int) (*Dynamixel, error) {
	opts := serial.OpenOptions{
		PortName:              portName,
		BaudRate:              baud,
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       0,
		InterCharacterTimeout: 100,
	}

	log.Infof("opening serial port %s at %d baud", portName, baud)
	port, err := serial.Open(opts)
	if err != nil {
		return nil, errors.Wrapf(err, "while opening serial port %s", portName)
	}

	d, err := NewDynamixel(port, baseID)
	if err != nil {
		port.Close()
		return nil, err
	}

	return d, nil
}
