package legs

// NumChannels is the number of servo channels on the board.
const NumChannels = 16

// Actuator is the servo driver. Angles are in degrees, 0-180.
type Actuator interface {
	SetAngle(channel int, angle float64) error
}

// batcher is implemented by drivers which can buffer writes and apply them all
// at once.
type batcher interface {
	Batch(f func()) error
}

// channelMap describes how the joints of one leg are wired to the board. The
// servos on the right side are mounted the other way around, so their femur
// and tibia angles are mirrored.
type channelMap struct {
	channels [3]int
	mirror   [3]bool
}

var channelTable = [numLegs]channelMap{
	{channels: [3]int{0, 1, 2}},                                        // Front Left
	{channels: [3]int{7, 6, 5}},                                        // Back Left
	{channels: [3]int{8, 9, 10}, mirror: [3]bool{false, true, true}},   // Back Right
	{channels: [3]int{15, 14, 13}, mirror: [3]bool{false, true, true}}, // Front Right
}

// Output writes joint angles to the servo driver.
type Output struct {
	driver Actuator
}

func NewOutput(driver Actuator) *Output {
	return &Output{driver: driver}
}

// channelAngles returns the channels and angles which should be written to
// move leg n to the given angles, including the offset.
func channelAngles(n int, a Angles, offset Angles) ([3]int, [3]float64) {
	cm := channelTable[n]
	joints := a.Add(offset)
	vals := [3]float64{joints.Coxa, joints.Femur, joints.Tibia}

	for i := range vals {
		if cm.mirror[i] {
			vals[i] = 180 - vals[i]
		}
	}

	return cm.channels, vals
}

// Write sends the angles of leg n to the servos. Errors are logged rather than
// returned; the next tick will try again.
func (o *Output) Write(n int, a Angles, offset Angles) {
	chans, vals := channelAngles(n, a, offset)
	for i, ch := range chans {
		o.Raw(ch, vals[i])
	}
}

// Raw sends an angle straight to a single channel.
func (o *Output) Raw(channel int, angle float64) {
	err := o.driver.SetAngle(channel, angle)
	if err != nil {
		log.Warnf("error while setting channel %d to %0.2f: %s", channel, angle, err)
	}
}

// Sync runs f, which should call Write, such that all of the writes are applied
// at once if the driver supports that.
func (o *Output) Sync(f func()) {
	b, ok := o.driver.(batcher)
	if !ok {
		f()
		return
	}

	err := b.Batch(f)
	if err != nil {
		log.Warnf("error while syncing servos: %s", err)
	}
}
