// Package consent owns the cookie-consent schema shared with the web
// client. Preferences live client-side only; the server never persists
// them, it just reads the cookie to decide which third-party config to
// hand out.
package consent

import (
	"encoding/json"
	"time"

	"github.com/gin-gonic/gin"
)

// CookieName is the browser cookie holding the serialized preferences.
const CookieName = "kk_consent"

const cookieMaxAge = int(365 * 24 * time.Hour / time.Second)

// Preferences are the three consent flags. Necessary is always true.
type Preferences struct {
	Necessary bool `json:"necessary"`
	Analytics bool `json:"analytics"`
	Marketing bool `json:"marketing"`
}

// Default is the state before the user has interacted with the banner:
// only strictly necessary cookies.
func Default() Preferences {
	return Preferences{Necessary: true}
}

// Parse decodes a cookie value. Malformed input yields the default
// preferences and an error; Necessary can never be opted out of.
func Parse(raw string) (Preferences, error) {
	var p Preferences
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return Default(), err
	}
	p.Necessary = true
	return p, nil
}

// Encode serializes preferences for storage in the cookie.
func (p Preferences) Encode() string {
	p.Necessary = true
	data, _ := json.Marshal(p)
	return string(data)
}

// FromRequest reads the consent cookie from the request; a missing or
// malformed cookie means no consent beyond necessary.
func FromRequest(c *gin.Context) Preferences {
	raw, err := c.Cookie(CookieName)
	if err != nil {
		return Default()
	}
	p, err := Parse(raw)
	if err != nil {
		return Default()
	}
	return p
}

// Write stores the preferences cookie for a year.
func Write(c *gin.Context, p Preferences) {
	c.SetCookie(CookieName, p.Encode(), cookieMaxAge, "/", "", false, false)
}
