package basket

import (
	"net/http"
	"time"

	"github.com/MarcGrol/storefront/lib/myuuid"
)

const (
	ownerCookieName     = "buyerId"
	ownerCookieLifetime = 30 * 24 * time.Hour
)

// resolveOwnerToken never touches storage; a stale token simply finds no basket.
// A malformed cookie value counts as absent.
func resolveOwnerToken(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(ownerCookieName)
	if err != nil {
		return "", false
	}
	if !myuuid.IsValid(cookie.Value) {
		return "", false
	}
	return cookie.Value, true
}

func attachOwnerToken(w http.ResponseWriter, ownerToken string, now time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     ownerCookieName,
		Value:    ownerToken,
		Path:     "/",
		Expires:  now.Add(ownerCookieLifetime),
		MaxAge:   int(ownerCookieLifetime.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
