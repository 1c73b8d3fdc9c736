package domain

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// State is the publication state of a catalog. Transitions run one way:
// Draft -> Persisted -> Published. Publishing again while Published simply
// re-derives the link; nothing ever regresses a catalog to Draft.
type State string

const (
	StateDraft     State = "draft"
	StatePersisted State = "persisted"
	StatePublished State = "published"
)

// State derives the publication state from the identifier and link, which
// together are the whole state machine: a catalog without an ID was never
// persisted, one without a link was never published.
func (c *Catalog) State() State {
	if c == nil || c.ID == 0 {
		return StateDraft
	}
	if strings.TrimSpace(c.ShareableLink) == "" {
		return StatePersisted
	}
	return StatePublished
}

// DeriveShareableLink builds the public catalog URL from the origin the
// console was loaded from, the store handle at publication time, and the
// catalog ID.
func DeriveShareableLink(origin, handle string, id snowflake.ID) string {
	origin = strings.TrimRight(strings.TrimSpace(origin), "/")
	handle = strings.Trim(strings.TrimSpace(handle), "/")
	return fmt.Sprintf("%s/%s/catalog/%s", origin, handle, id.String())
}
