package servos

import (
	"bytes"
	"io"
	"math"

	"github.com/adammck/quadruped/utils"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
)

// Instructions and control table addresses of the AX-12 (protocol 1.0).
const (
	instWrite    = 0x03
	instRegWrite = 0x04
	instAction   = 0x05

	broadcastID = 0xFE

	addrReturnDelayTime = 0x05
	addrReturnLevel     = 0x10
	addrTorqueEnable    = 0x18
	addrLED             = 0x19
	addrGoalPosition    = 0x1E
	addrMovingSpeed     = 0x20

	// The AX-12 covers 300 degrees with positions 0-1023. Our 90 degrees is
	// its center, so the range is 90±150 rather than 0-180.
	axRange       = 300.0
	axMaxPosition = 1023
)

// Dynamixel drives a chain of AX-12 servos on a half-duplex serial bus. Each
// channel is mapped to the servo with ID BaseID+channel.
//
// Nothing is ever read back from the bus, so the servos are told not to
// reply.
type Dynamixel struct {
	BaseID int

	port     io.WriteCloser
	buf      bytes.Buffer
	buffered bool
}

// NewDynamixel configures every servo on the bus and returns a driver. The
// port is closed by Close.
func NewDynamixel(port io.WriteCloser, baseID int) (*Dynamixel, error) {
	d := &Dynamixel{
		BaseID: baseID,
		port:   port,
	}

	// Don't bother sending ACKs for writes. We must do this first, to ensure
	// that the servos are in the expected state before sending other commands.
	err := d.write(broadcastID, instWrite, addrReturnLevel, 1)
	if err != nil {
		return nil, errors.Wrap(err, "while setting return level")
	}

	err = d.write(broadcastID, instWrite, addrReturnDelayTime, 0)
	if err != nil {
		return nil, errors.Wrap(err, "while setting return delay")
	}

	err = d.write(broadcastID, instWrite, addrMovingSpeed, 0xFF, 0x03)
	if err != nil {
		return nil, errors.Wrap(err, "while setting move speed")
	}

	err = d.write(broadcastID, instWrite, addrTorqueEnable, 1)
	if err != nil {
		return nil, errors.Wrap(err, "while enabling torque")
	}

	return d, nil
}

// axPosition converts an angle (0-180, centered on 90) to an AX-12 goal
// position.
func axPosition(angle float64) int {
	p := math.Round((angle - 90 + (axRange / 2)) / axRange * axMaxPosition)
	return utils.ConstrainInt(int(p), 0, axMaxPosition)
}

func (d *Dynamixel) id(channel int) (byte, error) {
	id := d.BaseID + channel
	if channel < 0 || id < 0 || id >= broadcastID {
		return 0, errors.Errorf("no servo for channel %d", channel)
	}

	return byte(id), nil
}

// SetAngle moves the servo on the given channel. Within a Batch, the position
// is registered but the servo doesn't move until the batch ends.
func (d *Dynamixel) SetAngle(channel int, angle float64) error {
	id, err := d.id(channel)
	if err != nil {
		return err
	}

	p := axPosition(angle)
	inst := byte(instWrite)
	if d.buffered {
		inst = instRegWrite
	}

	return d.write(id, inst, addrGoalPosition, byte(p&0xFF), byte(p>>8))
}

// Batch runs f with every goal position buffered, then sends them all followed
// by a single ACTION, so every servo starts moving at the same time.
func (d *Dynamixel) Batch(f func()) error {
	d.buffered = true
	f()
	d.buffered = false

	return d.write(broadcastID, instAction)
}

// Shutdown powers off every servo on the bus. This should be called before
// terminating the program, to ensure that servos don't stay powered up
// indefinitely.
func (d *Dynamixel) Shutdown() error {
	return multierr.Combine(
		d.write(broadcastID, instWrite, addrTorqueEnable, 0),
		d.write(broadcastID, instWrite, addrLED, 0),
	)
}

func (d *Dynamixel) Close() error {
	return multierr.Append(d.Shutdown(), d.port.Close())
}

// write sends a single instruction packet. Within a batch, it's appended to the
// buffer and sent with the ACTION.
func (d *Dynamixel) write(id byte, inst byte, params ...byte) error {
	d.buf.Write(packet(id, inst, params...))
	if d.buffered {
		return nil
	}

	return d.flush()
}

func (d *Dynamixel) flush() error {
	defer d.buf.Reset()

	_, err := d.port.Write(d.buf.Bytes())
	if err != nil {
		return errors.Wrap(err, "while writing to bus")
	}

	return nil
}

// packet returns an instruction packet:
//
//	0xFF 0xFF ID LENGTH INSTRUCTION PARAM... CHECKSUM
func packet(id byte, inst byte, params ...byte) []byte {
	b := make([]byte, 0, len(params)+6)
	b = append(b, 0xFF, 0xFF, id, byte(len(params)+2), inst)
	b = append(b, params...)

	var sum byte
	for _, v := range b[2:] {
		sum += v
	}

	return append(b, ^sum)
}
