package recording

import (
	"testing"

	"github.com/eleven-am/insight-backend/internal/dto"
)

const (
	uaChromeMac    = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	uaFirefox      = "Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0"
	uaEdge         = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36 Edg/120.0.0.0"
	uaSafariIPhone = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Mobile/15E148 Safari/604.1"
	uaSafariIPad   = "Mozilla/5.0 (iPad; CPU OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.1 Safari/604.1"
)

func TestDetectBrowser(t *testing.T) {
	tests := []struct {
		ua       string
		expected string
	}{
		{uaChromeMac, "Chrome"},
		{uaFirefox, "Firefox"},
		{uaEdge, "Edge"},
		{uaSafariIPhone, "Safari"},
		{"curl/8.4.0", "Unknown"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := DetectBrowser(tt.ua); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDetectDevice(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected string
	}{
		{"desktop chrome", uaChromeMac, DeviceDesktop},
		{"iphone", uaSafariIPhone, DeviceMobile},
		{"ipad", uaSafariIPad, DeviceTablet},
		{"android tablet", "Mozilla/5.0 (Linux; Android 13; Tablet)", DeviceTablet},
		{"empty", "", DeviceDesktop},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectDevice(tt.ua); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestMergeMetadata_Defaults(t *testing.T) {
	merged := MergeMetadata(&dto.MetadataPayload{}, Metadata{}, Defaults{})

	if merged.URL != unknownURL {
		t.Errorf("expected url %q, got %q", unknownURL, merged.URL)
	}
	if merged.Language != unknownLocale {
		t.Errorf("expected language %q, got %q", unknownLocale, merged.Language)
	}
	if merged.Device != DeviceDesktop {
		t.Errorf("expected desktop device, got %q", merged.Device)
	}
	if merged.Browser != unknownBrowser {
		t.Errorf("expected unknown browser, got %q", merged.Browser)
	}
	if merged.Screen == nil || merged.Screen.Width != 1440 || merged.Screen.Height != 900 {
		t.Errorf("expected default screen 1440x900, got %+v", merged.Screen)
	}
	if merged.UserID != nil {
		t.Errorf("expected nil user id, got %v", *merged.UserID)
	}
}

func TestMergeMetadata_RequestDefaults(t *testing.T) {
	merged := MergeMetadata(&dto.MetadataPayload{}, Metadata{}, Defaults{
		Origin:         "https://shop.example.com",
		AcceptLanguage: "de-DE,de;q=0.9",
	})

	if merged.URL != "https://shop.example.com" {
		t.Errorf("expected origin as url, got %q", merged.URL)
	}
	if merged.Language != "de-DE,de;q=0.9" {
		t.Errorf("expected accept-language as language, got %q", merged.Language)
	}
}

func TestMergeMetadata_Precedence(t *testing.T) {
	userID := "user_42"
	existing := Metadata{
		URL:       "https://shop.example.com/",
		UserAgent: uaFirefox,
		Device:    DeviceDesktop,
		Browser:   "Firefox",
		Language:  "en-GB",
		Screen:    &Screen{Width: 1920, Height: 1080},
		UserID:    &userID,
	}

	t.Run("empty payload keeps stored values", func(t *testing.T) {
		merged := MergeMetadata(&dto.MetadataPayload{}, existing, Defaults{Origin: "https://other.example.com"})
		if merged.URL != existing.URL {
			t.Errorf("expected stored url, got %q", merged.URL)
		}
		if merged.Language != "en-GB" {
			t.Errorf("expected stored language, got %q", merged.Language)
		}
		if merged.Screen.Width != 1920 {
			t.Errorf("expected stored screen, got %+v", merged.Screen)
		}
		if merged.UserID == nil || *merged.UserID != userID {
			t.Error("expected stored user id")
		}
	})

	t.Run("request values win", func(t *testing.T) {
		other := "user_7"
		merged := MergeMetadata(&dto.MetadataPayload{
			URL:      "https://shop.example.com/cart",
			Language: "fr-FR",
			Screen:   &dto.ScreenPayload{Width: 390, Height: 844},
			UserID:   &other,
		}, existing, Defaults{})
		if merged.URL != "https://shop.example.com/cart" {
			t.Errorf("expected request url, got %q", merged.URL)
		}
		if merged.Language != "fr-FR" {
			t.Errorf("expected request language, got %q", merged.Language)
		}
		if merged.Screen.Width != 390 || merged.Screen.Height != 844 {
			t.Errorf("expected request screen, got %+v", merged.Screen)
		}
		if *merged.UserID != other {
			t.Errorf("expected request user id, got %s", *merged.UserID)
		}
	})

	t.Run("stored device is not re-derived", func(t *testing.T) {
		merged := MergeMetadata(&dto.MetadataPayload{UserAgent: uaSafariIPhone}, existing, Defaults{})
		if merged.Device != DeviceDesktop {
			t.Errorf("expected stored device, got %q", merged.Device)
		}
		if merged.UserAgent != uaSafariIPhone {
			t.Errorf("expected request user agent, got %q", merged.UserAgent)
		}
	})

	t.Run("nil payload returns existing", func(t *testing.T) {
		merged := MergeMetadata(nil, existing, Defaults{})
		if merged.URL != existing.URL || merged.Browser != existing.Browser {
			t.Errorf("expected existing metadata, got %+v", merged)
		}
	})
}

func TestMergeMetadata_DerivesFromUserAgent(t *testing.T) {
	merged := MergeMetadata(&dto.MetadataPayload{UserAgent: uaSafariIPhone}, Metadata{}, Defaults{})
	if merged.Device != DeviceMobile {
		t.Errorf("expected mobile, got %q", merged.Device)
	}
	if merged.Browser != "Safari" {
		t.Errorf("expected Safari, got %q", merged.Browser)
	}
}
