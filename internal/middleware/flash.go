package middleware

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie  = "rutas_flash"
	flashPending = "pendingFlashes"
)

// Flash is a one-shot notice shown on the next rendered page.
type Flash struct {
	Category string // "success", "error", "info"
	Message  string
}

// SetFlash queues a notice for the next page render. Notices accumulate
// within a request, so several handlers can flash without clobbering
// each other.
func SetFlash(c *gin.Context, category, message string) {
	var pending []Flash
	if v, exists := c.Get(flashPending); exists {
		pending, _ = v.([]Flash)
	}
	pending = append(pending, Flash{Category: category, Message: message})
	c.Set(flashPending, pending)

	encoded := make([]string, len(pending))
	for i, f := range pending {
		encoded[i] = url.QueryEscape(f.Category) + "|" + url.QueryEscape(f.Message)
	}
	c.SetCookie(flashCookie, strings.Join(encoded, ","), 60, "/", "", false, true)
}

// TakeFlashes consumes and clears any pending notices, oldest first.
func TakeFlashes(c *gin.Context) []Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil || raw == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	var flashes []Flash
	for _, part := range strings.Split(raw, ",") {
		if part == "" {
			continue
		}
		cat, msg, found := strings.Cut(part, "|")
		if !found {
			cat, msg = "info", part
		}
		category, err := url.QueryUnescape(cat)
		if err != nil {
			continue
		}
		message, err := url.QueryUnescape(msg)
		if err != nil {
			continue
		}
		flashes = append(flashes, Flash{Category: category, Message: message})
	}
	return flashes
}
