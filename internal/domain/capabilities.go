package domain

// Capability is a typed permission flag resolved once per session from the
// server payload. Keeping the set closed avoids silent typos in permission
// keys when pages decide what to render.
type Capability string

const (
	CapEmployeesView      Capability = "employees.view"
	CapEmployeesManage    Capability = "employees.manage"
	CapAttendanceView     Capability = "attendance.view"
	CapLeaveApprove       Capability = "leave.approve"
	CapPayrollView        Capability = "payroll.view"
	CapPayrollManage      Capability = "payroll.manage"
	CapRolesManage        Capability = "roles.manage"
	CapSubscriptionManage Capability = "subscription.manage"
)

// AllCapabilities lists every capability the console knows how to render.
var AllCapabilities = []Capability{
	CapEmployeesView,
	CapEmployeesManage,
	CapAttendanceView,
	CapLeaveApprove,
	CapPayrollView,
	CapPayrollManage,
	CapRolesManage,
	CapSubscriptionManage,
}

// ParseCapability maps a server-supplied permission key to a typed flag.
// Unknown keys are rejected rather than carried around as strings.
func ParseCapability(key string) (Capability, bool) {
	for _, c := range AllCapabilities {
		if string(c) == key {
			return c, true
		}
	}
	return "", false
}

// CapabilitySet holds the resolved flags for one session
type CapabilitySet map[Capability]bool

// NewCapabilitySet resolves server permission keys into a typed set,
// returning the keys it did not recognize.
func NewCapabilitySet(keys []string) (CapabilitySet, []string) {
	set := make(CapabilitySet, len(keys))
	var unknown []string
	for _, k := range keys {
		c, ok := ParseCapability(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		set[c] = true
	}
	return set, unknown
}

// Has reports whether the capability was granted
func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}
