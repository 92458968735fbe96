package types

import "fmt"

// Watts is a power value.
type Watts float64

func (w Watts) String() string { return fmt.Sprintf("%.3f W", float64(w)) }

// Humanized returns a human-readable string, switching to kW above 1000 W.
func (w Watts) Humanized() string {
	if w >= 1000 {
		return fmt.Sprintf("%.2f kW", float64(w)/1000)
	}
	return fmt.Sprintf("%.2f W", float64(w))
}

// Gigabytes is a memory size in GB.
type Gigabytes float64

func (g Gigabytes) String() string { return fmt.Sprintf("%.2f GB", float64(g)) }

// Megabytes is a cache size in MB.
type Megabytes float64

func (m Megabytes) String() string { return fmt.Sprintf("%.2f MB", float64(m)) }

// GBPerSec is a memory bandwidth.
type GBPerSec float64

func (b GBPerSec) String() string { return fmt.Sprintf("%.1f GB/s", float64(b)) }

// PerWatt is throughput per Watt (an efficiency ratio).
type PerWatt float64

func (e PerWatt) String() string { return fmt.Sprintf("%.4f /W", float64(e)) }
