// Binary boardtest exercises the rover expansion board after assembly:
// spins up the cooling fan and sweeps the camera mount servo through its
// full range.
package main

import (
	"flag"

	log "github.com/sirupsen/logrus"

	"agricam/board"
)

var (
	addr  = flag.Uint("addr", uint(board.DefaultAddr), "I2C address of the PWM controller.")
	debug = flag.Bool("debug", true, "Log each servo step.")
)

func main() {
	flag.Parse()
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	b, err := board.Open(uint16(*addr))
	if err != nil {
		log.Fatalf("Opening expansion board: %v", err)
	}
	defer b.Close()

	log.Info("Open fan")
	if err := b.FanOn(); err != nil {
		log.Fatalf("Fan: %v", err)
	}

	log.Info("Test servo")
	if err := b.ServoSweep(); err != nil {
		log.Fatalf("Servo: %v", err)
	}
	log.Info("Board test complete")
}
