// Package board drives the PCA9685 PWM controller on the rover expansion
// board. The fan sits on an H-bridge pair and the camera mount servo on
// channel 1.
package board

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/devices/v3/pca9685"
	"periph.io/x/host/v3"
)

// DefaultAddr is where the expansion board straps the controller. Note
// this differs from the PCA9685 power-on default of 0x40.
const DefaultAddr uint16 = 0x41

const pwmFreq = 60 * physic.Hertz

const (
	servoChannel = 1
	fanChannelA  = 10
	fanChannelB  = 11
)

// Servo duty cycle range on the 16 bit scale. Center is the straight-ahead
// camera position.
const (
	servoMin    uint16 = 0x1000
	servoCenter uint16 = 0x1300
	servoMax    uint16 = 0x2000
	servoStep   uint16 = 0x5f
)

const servoStepDelay = 30 * time.Millisecond

// Board is an open connection to the PWM controller.
type Board struct {
	bus i2c.BusCloser
	dev *pca9685.Dev
}

// Open initializes the host drivers and connects to the controller at addr
// on the default I2C bus.
func Open(addr uint16) (*Board, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("host init: %v", err)
	}
	bus, err := i2creg.Open("")
	if err != nil {
		return nil, fmt.Errorf("i2c open: %v", err)
	}
	dev, err := pca9685.NewI2C(bus, addr)
	if err != nil {
		bus.Close()
		return nil, fmt.Errorf("pca9685 at 0x%02x: %v", addr, err)
	}
	if err := dev.SetPwmFreq(pwmFreq); err != nil {
		bus.Close()
		return nil, fmt.Errorf("pwm frequency: %v", err)
	}
	log.WithField("addr", fmt.Sprintf("0x%02x", addr)).Info("Expansion board connected")
	return &Board{bus: bus, dev: dev}, nil
}

// SetDuty sets a channel's duty cycle on the 16 bit scale shared with
// other PWM hardware. The controller resolves 12 bits; the low nibble is
// dropped.
func (b *Board) SetDuty(channel int, duty uint16) error {
	return b.dev.SetPwm(channel, 0, gpio.Duty(duty>>4))
}

// FanOn spins up the cooling fan.
func (b *Board) FanOn() error {
	if err := b.SetDuty(fanChannelA, 0x2000); err != nil {
		return err
	}
	return b.SetDuty(fanChannelB, 0x0000)
}

// FanOff stops the cooling fan.
func (b *Board) FanOff() error {
	if err := b.SetDuty(fanChannelA, 0); err != nil {
		return err
	}
	return b.SetDuty(fanChannelB, 0)
}

// ServoSweep drives the camera mount through its full range and back to
// center. Used to verify the linkage after assembly.
func (b *Board) ServoSweep() error {
	if err := b.SetDuty(servoChannel, servoCenter); err != nil {
		return err
	}
	time.Sleep(time.Second)

	for _, leg := range []struct{ from, to uint16 }{
		{servoCenter, servoMax},
		{servoMax, servoMin},
		{servoMin, servoCenter},
	} {
		if err := b.servoRamp(leg.from, leg.to); err != nil {
			return err
		}
	}
	return nil
}

func (b *Board) servoRamp(from, to uint16) error {
	step := int(servoStep)
	if to < from {
		step = -step
	}
	for d := int(from); (step > 0 && d < int(to)) || (step < 0 && d > int(to)); d += step {
		time.Sleep(servoStepDelay)
		log.Debugf("Servo duty 0x%04x", d)
		if err := b.SetDuty(servoChannel, uint16(d)); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the I2C bus. Channels keep their last duty cycle.
func (b *Board) Close() error {
	return b.bus.Close()
}
