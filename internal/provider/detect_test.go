package provider

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectNoProviderObject(t *testing.T) {
	assert.False(t, Detect(nil))
}

func TestDetectCoreFlag(t *testing.T) {
	assert.True(t, Detect(&Info{IsCore: true}))
	assert.True(t, Detect(&Info{IsAvalanche: true}))
}

func TestDetectNestedRecognizedProvider(t *testing.T) {
	info := &Info{
		Providers: []Info{
			{IsMetaMask: true},
			{IsCore: true},
		},
	}
	assert.True(t, Detect(info))
}

func TestDetectPermissiveFallback(t *testing.T) {
	// Any provider object at all counts as available, even without
	// recognized flags.
	assert.True(t, Detect(&Info{}))
	assert.True(t, Detect(&Info{IsMetaMask: true}))
}

func TestDetectorRefreshesOnEvents(t *testing.T) {
	var current *Info
	d := NewDetector(func() *Info { return current })
	assert.False(t, d.Available())

	// Extension appears after page load.
	current = &Info{IsCore: true}
	assert.False(t, d.Available(), "cached until an event arrives")

	d.OnEvent(EventProviderInitialized)
	assert.True(t, d.Available())

	current = nil
	d.OnEvent(EventAccountsChanged)
	assert.False(t, d.Available())
}
