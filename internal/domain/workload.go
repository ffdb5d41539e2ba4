// Package domain holds the core types of boostd.
// Pure data and contracts — no infrastructure dependency.
package domain

// WorkloadType is a closed enumeration of workload categories produced by
// the (external) workload classifier. Fixed at build time.
type WorkloadType int

const (
	WorkloadAnimation WorkloadType = iota
	WorkloadScrolling
	WorkloadTapEvent
	WorkloadLoading
	WorkloadLaunch
	WorkloadGame
	WorkloadHeavyGame
	WorkloadLowPower
	WorkloadSustainedPerformance
	WorkloadFixedPerformance
	WorkloadVendorKill
	WorkloadVendorPackageInstall
	WorkloadVendorRotationLatency

	// WorkloadCount is the number of workload categories. Used by the
	// policy table to enforce totality at construction.
	WorkloadCount = iota
)

// String returns the canonical wire name of the workload.
func (w WorkloadType) String() string {
	switch w {
	case WorkloadAnimation:
		return "animation"
	case WorkloadScrolling:
		return "scrolling"
	case WorkloadTapEvent:
		return "tap_event"
	case WorkloadLoading:
		return "loading"
	case WorkloadLaunch:
		return "launch"
	case WorkloadGame:
		return "game"
	case WorkloadHeavyGame:
		return "heavy_game"
	case WorkloadLowPower:
		return "low_power"
	case WorkloadSustainedPerformance:
		return "sustained_performance"
	case WorkloadFixedPerformance:
		return "fixed_performance"
	case WorkloadVendorKill:
		return "vendor_kill"
	case WorkloadVendorPackageInstall:
		return "vendor_package_install"
	case WorkloadVendorRotationLatency:
		return "vendor_rotation_latency"
	default:
		return "unknown"
	}
}

// ParseWorkload maps a wire name back to its WorkloadType.
// Unknown names return ok=false — the caller is expected to drop the
// request silently, never to error.
func ParseWorkload(s string) (WorkloadType, bool) {
	for w := WorkloadType(0); w < WorkloadCount; w++ {
		if w.String() == s {
			return w, true
		}
	}
	return 0, false
}

// AllWorkloads returns every workload category in declaration order.
func AllWorkloads() []WorkloadType {
	all := make([]WorkloadType, WorkloadCount)
	for i := range all {
		all[i] = WorkloadType(i)
	}
	return all
}
