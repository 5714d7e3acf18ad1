// Package request classifies incoming clients so handlers can decide
// between cookie-based and bearer-token delivery of credentials.
package request

import "strings"

type ClientType string

const (
	ClientTypeWeb    ClientType = "web"
	ClientTypeMobile ClientType = "mobile"
)

// ResolveClientType trusts an explicit X-Client-Type header first and falls
// back to a User-Agent sniff. Unknown clients are treated as web so browsers
// keep getting HttpOnly cookies.
func ResolveClientType(header, userAgent string) ClientType {
	switch strings.ToLower(strings.TrimSpace(header)) {
	case "web":
		return ClientTypeWeb
	case "mobile":
		return ClientTypeMobile
	}

	ua := strings.ToLower(userAgent)
	if strings.Contains(ua, "okhttp") || strings.Contains(ua, "dart") || strings.Contains(ua, "android") || strings.Contains(ua, "iphone") {
		return ClientTypeMobile
	}
	return ClientTypeWeb
}

func IsWebClient(t ClientType) bool {
	return t == ClientTypeWeb
}
