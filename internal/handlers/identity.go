package handlers

import (
	"strings"
	"unicode"

	"github.com/gofiber/fiber/v2"
)

// The authenticating front layer forwards the verified actor identity
// in this header; the API itself performs no authentication.
const actorHeader = "X-User-Email"

func actorEmail(c *fiber.Ctx) string {
	return strings.TrimSpace(c.Get(actorHeader))
}

// displayName derives a readable name from an email's local part, the
// same way the upload flow labels profiles.
func displayName(email string) string {
	local, _, _ := strings.Cut(email, "@")
	if local == "" {
		return email
	}

	runes := []rune(local)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
