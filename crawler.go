package sitekit

import "strings"

// Fetcher labels for /og/ requests.
const (
	fetcherBrowser  = "browser"
	fetcherOtherBot = "other-bot"
)

// fetchers maps User-Agent substrings of link-preview and search crawlers to
// a metrics label. Order matters: the first match wins.
var fetchers = []struct {
	pattern string
	name    string
}{
	{"facebookexternalhit", "facebook"},
	{"twitterbot", "twitter"},
	{"linkedinbot", "linkedin"},
	{"slackbot", "slack"},
	{"discordbot", "discord"},
	{"telegrambot", "telegram"},
	{"whatsapp", "whatsapp"},
	{"googlebot", "google"},
	{"bingbot", "bing"},
	{"duckduckbot", "duckduckgo"},
	{"yandex", "yandex"},
	{"baidu", "baidu"},
}

// Fetcher names the client that requested an image from its User-Agent.
// Unknown crawlers collapse into "other-bot" and everything else is
// "browser", so the label set stays bounded.
func Fetcher(ua string) string {
	ua = strings.ToLower(ua)
	for _, f := range fetchers {
		if strings.Contains(ua, f.pattern) {
			return f.name
		}
	}
	for _, generic := range []string{"bot", "crawler", "spider", "crawl", "slurp", "scrape"} {
		if strings.Contains(ua, generic) {
			return fetcherOtherBot
		}
	}
	return fetcherBrowser
}
