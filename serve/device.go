package serve

import (
	"net/http"

	"agricam/sysinfo"
)

// DeviceStatus is the device health card on the dashboard. CPU, memory and
// temperature are live host readings; the remaining fields are fixed demo
// values until the rover telemetry bus is hooked up.
type DeviceStatus struct {
	CPUUsage       int     `json:"cpu_usage"`
	MemoryUsage    int     `json:"memory_usage"`
	PowerLevel     int     `json:"power_level"`
	SignalStrength int     `json:"signal_strength"`
	ChartData      []int   `json:"chart_data"`
	RiskLevel      int     `json:"risk_level"`
	AlertCount     int     `json:"alert_count"`
	TrendStat      int     `json:"trend_stat"`
	CPUTemperature float64 `json:"cpu_temperature"`
}

type DeviceStatusServer struct{}

func (s *DeviceStatusServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, &DeviceStatus{
		CPUUsage:       sysinfo.CPUUsage(),
		MemoryUsage:    sysinfo.MemoryUsage(),
		PowerLevel:     100,
		SignalStrength: 97,
		ChartData:      []int{60, 45, 75, 30, 55, 40},
		RiskLevel:      5,
		AlertCount:     0,
		TrendStat:      200,
		CPUTemperature: sysinfo.CPUTemperature(),
	})
}
