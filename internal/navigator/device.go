package navigator

import "time"

const (
	// DefaultMobileWidth matches the 768px breakpoint of the web layout.
	DefaultMobileWidth = 768
	// DefaultShortHeight marks landscape phones, where the indicator row is hidden.
	DefaultShortHeight = 500

	DefaultDesktopDuration = 1000 * time.Millisecond
	DefaultMobileDuration  = 800 * time.Millisecond
)

// Viewport is the size of the presenting surface, in whatever unit the renderer uses
// (pixels for a browser, cells for a terminal).
type Viewport struct {
	Width  int
	Height int
}

// Breakpoints classify a Viewport into a Device.
type Breakpoints struct {
	// MobileWidth: viewports narrower than this are mobile.
	MobileWidth int
	// ShortHeight: viewports shorter than this are landscape.
	ShortHeight int
}

func DefaultBreakpoints() Breakpoints {
	return Breakpoints{MobileWidth: DefaultMobileWidth, ShortHeight: DefaultShortHeight}
}

// Classify maps a viewport to its device class. Unknown (zero) dimensions never match.
func (b Breakpoints) Classify(v Viewport) Device {
	return Device{
		Mobile:    v.Width > 0 && v.Width < b.MobileWidth,
		Landscape: v.Height > 0 && v.Height < b.ShortHeight,
	}
}

// Device is the capability class derived from the viewport.
type Device struct {
	Mobile    bool
	Landscape bool
}

// ShowIndicators is false for short landscape phones.
func (d Device) ShowIndicators() bool {
	return !(d.Mobile && d.Landscape)
}

func (d Device) String() string {
	switch {
	case d.Mobile && d.Landscape:
		return "mobile-landscape"
	case d.Mobile:
		return "mobile"
	default:
		return "desktop"
	}
}

// Durations are the transition lengths per device class.
type Durations struct {
	Desktop time.Duration
	Mobile  time.Duration
}

func DefaultDurations() Durations {
	return Durations{Desktop: DefaultDesktopDuration, Mobile: DefaultMobileDuration}
}

// For picks the duration for dev, falling back to the defaults for unset values.
func (d Durations) For(dev Device) time.Duration {
	if dev.Mobile {
		if d.Mobile > 0 {
			return d.Mobile
		}
		return DefaultMobileDuration
	}
	if d.Desktop > 0 {
		return d.Desktop
	}
	return DefaultDesktopDuration
}
