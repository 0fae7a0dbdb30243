package probe

import "strings"

// freeProviders maps a free-mail domain to the provider name surfaced in
// FreeProviderCheck, generalizing the teacher's AliasDetector provider
// registry (gmail.com/googlemail.com/yahoo.com/outlook.com/hotmail.com/
// live.com) into a plain lookup table for the simpler free/not-free check.
var freeProviders = map[string]string{
	"gmail.com":      "Gmail",
	"googlemail.com": "Gmail",
	"yahoo.com":      "Yahoo",
	"yahoo.co.uk":    "Yahoo",
	"ymail.com":      "Yahoo",
	"outlook.com":    "Outlook",
	"hotmail.com":    "Outlook",
	"hotmail.co.uk":  "Outlook",
	"live.com":       "Outlook",
	"icloud.com":     "iCloud",
	"me.com":         "iCloud",
	"mac.com":        "iCloud",
	"aol.com":        "AOL",
	"protonmail.com": "ProtonMail",
	"proton.me":      "ProtonMail",
	"zoho.com":       "Zoho",
	"gmx.com":        "GMX",
	"gmx.net":        "GMX",
	"mail.com":       "Mail.com",
	"yandex.com":     "Yandex",
	"yandex.ru":      "Yandex",
	"fastmail.com":   "Fastmail",
}

// FreeProvider reports whether domain belongs to a known free email
// provider and, if so, which one.
func FreeProvider(domain string) (isFree bool, provider string) {
	name, ok := freeProviders[strings.ToLower(domain)]
	return ok, name
}
