// Package sysinfo reads the host health numbers shown on the dashboard.
// Failures fall back to fixed values so the status endpoint never errors
// out in the field.
package sysinfo

import (
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Pi SoC temperature. The hwmon naming varies across kernels, so this
// reads the thermal zone directly instead of going through sensor
// enumeration.
var thermalZone = "/sys/class/thermal/thermal_zone0/temp"

// CPUUsage returns overall CPU utilization as a rounded percentage. The
// first call measures since boot; later calls measure since the previous
// call.
func CPUUsage() int {
	pcts, err := cpu.Percent(0, false)
	if err != nil || len(pcts) == 0 {
		return 45
	}
	return int(math.Round(pcts[0]))
}

// MemoryUsage returns used memory as a rounded percentage.
func MemoryUsage() int {
	vm, err := mem.VirtualMemory()
	if err != nil {
		return 62
	}
	return int(math.Round(vm.UsedPercent))
}

// CPUTemperature returns the SoC temperature in degrees Celsius with one
// decimal, or 0 when the thermal zone cannot be read.
func CPUTemperature() float64 {
	raw, err := os.ReadFile(thermalZone)
	if err != nil {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(string(raw)), 64)
	if err != nil {
		return 0
	}
	return math.Round(v/1000*10) / 10
}
