package servos

import (
	"errors"
	"testing"

	fake_serial "github.com/adammck/quadruped/fake/serial"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacket(t *testing.T) {
	type eg struct {
		id     byte
		inst   byte
		params []byte
		exp    []byte
	}

	examples := []eg{
		{1, 0x01, nil, []byte{0xFF, 0xFF, 0x01, 0x02, 0x01, 0xFB}},
		{1, 0x03, []byte{0x18, 0x01}, []byte{0xFF, 0xFF, 0x01, 0x04, 0x03, 0x18, 0x01, 0xDE}},
		{0xFE, 0x05, nil, []byte{0xFF, 0xFF, 0xFE, 0x02, 0x05, 0xFA}},
		{1, 0x03, []byte{0x1E, 0xF4, 0x01}, []byte{0xFF, 0xFF, 0x01, 0x05, 0x03, 0x1E, 0xF4, 0x01, 0xE3}},
	}

	for i, x := range examples {
		assert.Equal(t, x.exp, packet(x.id, x.inst, x.params...), "example %d", i+1)
	}
}

func TestAxPosition(t *testing.T) {
	type eg struct {
		angle float64
		exp   int
	}

	examples := []eg{
		{90, 512},
		{0, 205},
		{180, 818},
		{-60, 0},
		{240, 1023},
		{-200, 0},
		{400, 1023},
	}

	for i, x := range examples {
		assert.Equal(t, x.exp, axPosition(x.angle), "example %d", i+1)
	}
}

func TestNewDynamixel(t *testing.T) {
	p := &fake_serial.FakeSerial{}
	_, err := NewDynamixel(p, 1)
	require.NoError(t, err)

	// Return level, return delay, speed, torque.
	assert.Equal(t, 4, p.Writes)
	assert.Equal(t, packet(0xFE, instWrite, addrReturnLevel, 1), p.Bytes()[:8])
}

func TestNewDynamixelError(t *testing.T) {
	p := &fake_serial.FakeSerial{Err: errors.New("unplugged")}
	_, err := NewDynamixel(p, 1)
	assert.EqualError(t, err, "while setting return level: while writing to bus: unplugged")
}

func TestDynamixelSetAngle(t *testing.T) {
	p := &fake_serial.FakeSerial{}
	d, err := NewDynamixel(p, 1)
	require.NoError(t, err)
	p.Reset()

	require.NoError(t, d.SetAngle(2, 90))
	assert.Equal(t, packet(3, instWrite, addrGoalPosition, 0x00, 0x02), p.Bytes())

	assert.Error(t, d.SetAngle(-1, 90))
	assert.Error(t, d.SetAngle(300, 90))
}

func TestDynamixelBatch(t *testing.T) {
	p := &fake_serial.FakeSerial{}
	d, err := NewDynamixel(p, 1)
	require.NoError(t, err)
	p.Reset()

	err = d.Batch(func() {
		d.SetAngle(0, 90)
		d.SetAngle(15, 0)
	})
	require.NoError(t, err)

	// Everything goes out in one write, ending with the ACTION.
	assert.Equal(t, 1, p.Writes)

	var exp []byte
	exp = append(exp, packet(1, instRegWrite, addrGoalPosition, 0x00, 0x02)...)
	exp = append(exp, packet(16, instRegWrite, addrGoalPosition, 0xCD, 0x00)...)
	exp = append(exp, packet(broadcastID, instAction)...)
	assert.Equal(t, exp, p.Bytes())
}

func TestDynamixelClose(t *testing.T) {
	p := &fake_serial.FakeSerial{}
	d, err := NewDynamixel(p, 1)
	require.NoError(t, err)
	p.Reset()

	require.NoError(t, d.Close())
	assert.True(t, p.Closed)

	var exp []byte
	exp = append(exp, packet(broadcastID, instWrite, addrTorqueEnable, 0)...)
	exp = append(exp, packet(broadcastID, instWrite, addrLED, 0)...)
	assert.Equal(t, exp, p.Bytes())
}
