// Package device derives an immutable device profile from the browser probe
// sent by the reader script, from client hints, or from the User-Agent.
//
//	p, err := device.ParseProbe("390x844@3t")
//	profile := device.FromProbe(p, device.DefaultThresholds())
//	profile.Class // device.ClassMobile
//
// Profiles are plain values. Every probe produces a fresh one and nothing is
// persisted besides the probe cookie the browser owns.
package device
