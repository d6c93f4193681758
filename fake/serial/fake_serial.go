package serial

import (
	"bytes"

	log "github.com/sirupsen/logrus"
)

var logger = log.WithFields(log.Fields{
	"pkg": "fake",
})

// FakeSerial is a serial port which records everything written to it. Nothing
// is ever read back.
type FakeSerial struct {
	Writes int
	Closed bool

	// Returned by every call to Write, if set.
	Err error

	buf bytes.Buffer
}

func (s *FakeSerial) Read(p []byte) (n int, err error) {
	logger.Debugf("read %d bytes", len(p))
	return 0, nil
}

func (s *FakeSerial) Write(p []byte) (n int, err error) {
	if s.Err != nil {
		return 0, s.Err
	}

	logger.Debugf("write: % X", p)
	s.Writes++
	return s.buf.Write(p)
}

func (s *FakeSerial) Close() error {
	logger.Debugf("close")
	s.Closed = true
	return nil
}

// Bytes returns everything written since the last Reset.
func (s *FakeSerial) Bytes() []byte {
	return s.buf.Bytes()
}

func (s *FakeSerial) Reset() {
	s.buf.Reset()
	s.Writes = 0
}
