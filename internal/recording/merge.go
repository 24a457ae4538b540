package recording

import (
	"strings"

	"github.com/eleven-am/insight-backend/internal/dto"
)

const (
	unknownURL     = "Unknown URL"
	unknownLocale  = "Unknown locale"
	unknownBrowser = "Unknown"
	defaultScreenW = 1440
	defaultScreenH = 900
)

type uaRule struct {
	match func(ua string) bool
	label string
}

func contains(subs ...string) func(string) bool {
	return func(ua string) bool {
		for _, s := range subs {
			if strings.Contains(ua, s) {
				return true
			}
		}
		return false
	}
}

// Rules are evaluated in order against the lower-cased user agent; first match wins.
var browserRules = []uaRule{
	{match: contains("firefox"), label: "Firefox"},
	{match: contains("edg"), label: "Edge"},
	{match: contains("chrome"), label: "Chrome"},
	{match: contains("safari"), label: "Safari"},
}

var deviceRules = []uaRule{
	{match: contains("mobile"), label: DeviceMobile},
	{match: contains("tablet", "ipad"), label: DeviceTablet},
}

func classify(rules []uaRule, userAgent, fallback string) string {
	ua := strings.ToLower(userAgent)
	for _, r := range rules {
		if r.match(ua) {
			return r.label
		}
	}
	return fallback
}

func DetectBrowser(userAgent string) string {
	return classify(browserRules, userAgent, unknownBrowser)
}

func DetectDevice(userAgent string) string {
	return classify(deviceRules, userAgent, DeviceDesktop)
}

// MergeMetadata merges incoming into existing field by field. A value present
// in the request wins, then the stored value, then a computed default.
func MergeMetadata(incoming *dto.MetadataPayload, existing Metadata, defaults Defaults) Metadata {
	if incoming == nil {
		return existing
	}

	merged := existing
	merged.URL = firstNonEmpty(incoming.URL, existing.URL, defaults.Origin, unknownURL)
	merged.UserAgent = firstNonEmpty(incoming.UserAgent, existing.UserAgent)
	merged.Language = firstNonEmpty(incoming.Language, existing.Language, defaults.AcceptLanguage, unknownLocale)
	merged.Referrer = firstNonEmpty(incoming.Referrer, existing.Referrer)
	merged.Timezone = firstNonEmpty(incoming.Timezone, existing.Timezone)

	if incoming.DevicePixelRatio > 0 {
		merged.DevicePixelRatio = incoming.DevicePixelRatio
	}

	merged.Device = firstNonEmpty(incoming.Device, existing.Device)
	if merged.Device == "" {
		merged.Device = DetectDevice(merged.UserAgent)
	}
	merged.Browser = firstNonEmpty(incoming.Browser, existing.Browser)
	if merged.Browser == "" {
		merged.Browser = DetectBrowser(merged.UserAgent)
	}

	switch {
	case incoming.Screen != nil && incoming.Screen.Width > 0 && incoming.Screen.Height > 0:
		merged.Screen = &Screen{Width: incoming.Screen.Width, Height: incoming.Screen.Height}
	case existing.Screen != nil:
		s := *existing.Screen
		merged.Screen = &s
	default:
		merged.Screen = &Screen{Width: defaultScreenW, Height: defaultScreenH}
	}

	if incoming.UserID != nil {
		id := *incoming.UserID
		merged.UserID = &id
	}

	return merged
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
