package provider

// Info describes an injected provider object: which recognized wallet
// flags it carries and any nested providers it aggregates.
type Info struct {
	IsCore      bool
	IsAvalanche bool
	IsMetaMask  bool
	Providers   []Info
}

// recognized reports whether the provider carries a Core/Avalanche flag.
func (i Info) recognized() bool {
	return i.IsCore || i.IsAvalanche
}

// Detect reports whether a usable wallet is available. A nil info means no
// provider object exists at all. A recognized flag on the provider or on
// any nested entry counts; failing that, the mere presence of a provider
// object counts too — any injected wallet is accepted, not only the
// recognized ones. Narrowing that fallback would change behavior for
// users of other wallets.
func Detect(info *Info) bool {
	if info == nil {
		return false
	}
	if info.recognized() {
		return true
	}
	for _, p := range info.Providers {
		if p.recognized() {
			return true
		}
	}
	return true
}

// Event is an external notification that should trigger re-detection.
type Event int

const (
	EventProviderInitialized Event = iota
	EventAccountsChanged
)

// Detector caches the availability result and re-probes on provider
// lifecycle events.
type Detector struct {
	probe     func() *Info
	available bool
}

// NewDetector creates a detector around a probe function and runs the
// initial probe.
func NewDetector(probe func() *Info) *Detector {
	d := &Detector{probe: probe}
	d.refresh()
	return d
}

// Available returns the cached result of the last probe.
func (d *Detector) Available() bool {
	return d.available
}

// OnEvent re-probes in response to a provider lifecycle event.
func (d *Detector) OnEvent(Event) {
	d.refresh()
}

func (d *Detector) refresh() {
	d.available = Detect(d.probe())
}
