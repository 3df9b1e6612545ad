package health

import (
	"log"
	"time"

	"github.com/shirou/gopsutil/v3/host"
)

// Status is reported by the /health endpoint.
type Status struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Hostname   string `json:"hostname,omitempty"`
	HostUptime uint64 `json:"hostUptimeSeconds,omitempty"`
	Uptime     string `json:"uptime"`
}

// Checker reports process and host liveness.
type Checker struct {
	service string
	started time.Time
}

func NewChecker(service string) *Checker {
	return &Checker{service: service, started: time.Now()}
}

// Check never fails; host details are omitted when they cannot be read.
func (c *Checker) Check() Status {
	st := Status{
		Status:  "ok",
		Service: c.service,
		Uptime:  time.Since(c.started).Round(time.Second).String(),
	}

	info, err := host.Info()
	if err != nil {
		log.Printf("health: reading host info: %v", err)
		return st
	}
	st.Hostname = info.Hostname
	st.HostUptime = info.Uptime
	return st
}
