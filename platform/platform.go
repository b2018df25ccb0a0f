// Package platform describes the external capabilities that bindings
// observe: event sources, clocks, keyed stores, clipboard, and sensors.
// Capabilities are injected rather than probed ad hoc so bindings stay
// testable in environments where a capability is missing.
package platform

// Capabilities is the capability descriptor handed to bindings. A nil
// field means the capability is absent in this environment; adapters
// report that as an unsupported state, never as a panic.
type Capabilities struct {
	Events    EventTarget
	Clock     Clock
	Local     KV
	Session   KV
	Cookies   CookieJar
	Clipboard Clipboard
	Geo       Geolocator
	Battery   BatteryMeter
	Media     MediaQuerier
	Speech    Speaker
}

// Detect returns the baseline capability set for the current process:
// a system clock and nothing else. Providers (package terminal, package
// netstatus) fill in the capabilities they supply.
func Detect() Capabilities {
	return Capabilities{Clock: SystemClock()}
}
