package cache

import "fmt"

type Prefix string

const (
	// SentMessages stores sent timestamps keyed by gateway reference.
	SentMessages Prefix = "sent_messages"
	// Balance stores provider balance snapshots keyed by date ("now" for current).
	Balance Prefix = "balance"
	// Stats stores provider traffic stats keyed by date ("today" for current).
	Stats Prefix = "stats"
)

func (p Prefix) Key(id string) string {
	return fmt.Sprintf("%s:%s", p, id)
}
