package twindle

import (
	"strings"

	"github.com/lisanmuaddib/twindle/pkg/tweets"
)

const (
	fallbackUsername  = "twindle"
	fallbackCreatedAt = "thread"
)

// DeriveFilename computes the output name without extension.
// An explicit name is used verbatim; otherwise the name is built from the
// author handle and creation time, with literal fallbacks for missing
// metadata. A non-empty suffix is appended as "-suffix" in both cases.
func DeriveFilename(c *tweets.Collection, explicit, suffix string) string {
	name := explicit
	if name == "" {
		username := strings.TrimPrefix(c.Username(), "@")
		if username == "" {
			username = fallbackUsername
		}

		createdAt := strings.ReplaceAll(c.CreatedAt(), ",", "")
		createdAt = strings.ReplaceAll(createdAt, " ", "-")
		if createdAt == "" {
			createdAt = fallbackCreatedAt
		}

		name = username + "-" + createdAt
	}

	if suffix != "" {
		name += "-" + suffix
	}
	return name
}
