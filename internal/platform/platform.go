// Package platform classifies video URLs by hosting platform.
package platform

import (
	"net/url"
	"strings"
)

// YouTube is the only platform the pipeline can fetch from.
const YouTube = "youtube"

// Hosts we recognize but do not support, mapped to the reason shown
// to the user.
var unsupportedHosts = map[string]string{
	"vimeo.com":       "Vimeo videos are not supported yet",
	"dailymotion.com": "Dailymotion videos are not supported yet",
	"tiktok.com":      "TikTok videos are not supported yet",
	"twitch.tv":       "Twitch streams are not supported yet",
	"facebook.com":    "Facebook videos are not supported yet",
	"fb.watch":        "Facebook videos are not supported yet",
	"instagram.com":   "Instagram videos are not supported yet",
}

var youtubeHosts = map[string]bool{
	"youtube.com":          true,
	"m.youtube.com":        true,
	"music.youtube.com":    true,
	"youtu.be":             true,
	"youtube-nocookie.com": true,
}

// Classify decides whether a URL points at a supported video platform.
// It returns (true, platform name) for supported URLs and
// (false, human-readable reason) for everything else. No network call
// is made.
func Classify(rawURL string) (bool, string) {
	trimmed := strings.TrimSpace(rawURL)
	if trimmed == "" {
		return false, "URL is empty"
	}

	u, err := url.Parse(trimmed)
	if err != nil || u.Host == "" {
		// Tolerate bare "youtube.com/watch?v=..." style input.
		u, err = url.Parse("https://" + trimmed)
		if err != nil || u.Host == "" {
			return false, "not a valid URL"
		}
	}

	if u.Scheme != "" && u.Scheme != "http" && u.Scheme != "https" {
		return false, "unsupported URL scheme: " + u.Scheme
	}

	host := strings.ToLower(u.Hostname())
	host = strings.TrimPrefix(host, "www.")

	if youtubeHosts[host] {
		return true, YouTube
	}

	if reason, ok := unsupportedHosts[host]; ok {
		return false, reason
	}
	// Subdomains of recognized platforms get the same reason.
	for h, reason := range unsupportedHosts {
		if strings.HasSuffix(host, "."+h) {
			return false, reason
		}
	}

	return false, "unrecognized video platform: " + host
}
