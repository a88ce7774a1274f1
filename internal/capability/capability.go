// Package capability describes the execution environment facts consumed by
// the gateway.
package capability

import (
	"fmt"
	"strings"
)

// Family is an engine family.
type Family string

// Engine families.
const (
	FamilyUnknown Family = ""
	FamilyIE      Family = "ie"
	FamilyOpera   Family = "opera"
	FamilyWebKit  Family = "webkit"
	FamilyGecko   Family = "gecko"
)

// Families lists the known families.
func Families() []Family {
	return []Family{FamilyIE, FamilyOpera, FamilyWebKit, FamilyGecko}
}

// ParseFamily parses a family name case-insensitively. The empty string
// parses as FamilyUnknown.
func ParseFamily(s string) (Family, error) {
	f := Family(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FamilyUnknown, FamilyIE, FamilyOpera, FamilyWebKit, FamilyGecko:
		return f, nil
	}
	return FamilyUnknown, fmt.Errorf("unknown engine family %q", s)
}

// String returns the family name or "unknown".
func (f Family) String() string {
	if f == FamilyUnknown {
		return "unknown"
	}
	return string(f)
}

// Probe reports static facts about the environment.
type Probe interface {
	EngineFamily() Family
	EngineVersion() float64
	BrowserVersion() float64
	SupportsNativeListeners() bool
}

// Static is a fixed Probe. The config package builds one from the
// [capability] section.
type Static struct {
	Family          Family
	Engine          float64
	Browser         float64
	NativeListeners bool
}

var _ Probe = Static{}

// EngineFamily implements Probe.
func (s Static) EngineFamily() Family { return s.Family }

// EngineVersion implements Probe.
func (s Static) EngineVersion() float64 { return s.Engine }

// BrowserVersion implements Probe.
func (s Static) BrowserVersion() float64 { return s.Browser }

// SupportsNativeListeners implements Probe.
func (s Static) SupportsNativeListeners() bool { return s.NativeListeners }

// Standard is a modern environment with the standard registration
// mechanism.
func Standard() Static {
	return Static{Family: FamilyGecko, Engine: 1.9, Browser: 3.5, NativeListeners: true}
}

// IsGecko reports whether p belongs to the Gecko family. A nil p is not.
func IsGecko(p Probe) bool {
	return p != nil && p.EngineFamily() == FamilyGecko
}

// SupportsContentLoaded reports whether the environment fires a native
// content-loaded notification: Gecko, WebKit engine 525.13 and later, Opera
// 9 and later.
func SupportsContentLoaded(p Probe) bool {
	if p == nil {
		return false
	}
	switch p.EngineFamily() {
	case FamilyGecko:
		return true
	case FamilyWebKit:
		return p.EngineVersion() >= 525.13
	case FamilyOpera:
		return p.BrowserVersion() >= 9
	}
	return false
}
