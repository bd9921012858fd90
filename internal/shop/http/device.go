package http

import (
	"net/http"
	"strings"

	"github.com/mssola/useragent"

	"github.com/chocomax/shop/internal/shop/domain"
	"github.com/chocomax/shop/pkg/httpx"
)

// clientInfo fingerprints the caller from its User-Agent and address.
func clientInfo(r *http.Request) domain.ClientInfo {
	return domain.ClientInfo{
		Device:    parseDevice(r.UserAgent()),
		IPAddress: httpx.ClientIP(r),
	}
}

func parseDevice(raw string) domain.DeviceInfo {
	if strings.TrimSpace(raw) == "" {
		return domain.DeviceInfo{OS: "Other", Browser: "Other", Device: "Other"}
	}

	ua := useragent.New(raw)
	os := ua.OSInfo()
	browser, browserVersion := ua.Browser()

	tablet := strings.Contains(raw, "iPad") || strings.Contains(raw, "Tablet") ||
		(strings.Contains(raw, "Android") && !strings.Contains(raw, "Mobile"))
	mobile := ua.Mobile() && !tablet
	bot := ua.Bot()

	device := ua.Model()
	if device == "" {
		device = ua.Platform()
	}
	if device == "" {
		device = "Other"
	}

	return domain.DeviceInfo{
		OS:             nonEmpty(os.Name),
		OSVersion:      os.Version,
		Browser:        nonEmpty(browser),
		BrowserVersion: browserVersion,
		Device:         device,
		IsMobile:       mobile,
		IsTablet:       tablet,
		IsPC:           !mobile && !tablet && !bot,
		IsBot:          bot,
	}
}

func nonEmpty(s string) string {
	if s == "" {
		return "Other"
	}
	return s
}
