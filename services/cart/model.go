package cart

import (
	"time"

	"github.com/artaltay/miniapp/services/eventapi"
)

// Cart is everything a shopper keeps between visits: the lines in the
// cart plus the set of favorite experiences. One record per user.
type Cart struct {
	UserUID      string
	Lines        []eventapi.CartLine
	Favorites    []string
	LastModified *time.Time
}

func (crt Cart) findLine(eventUID string) (int, bool) {
	for i, line := range crt.Lines {
		if line.EventUID == eventUID {
			return i, true
		}
	}

	return 0, false
}

func (crt Cart) isFavorite(eventUID string) bool {
	for _, uid := range crt.Favorites {
		if uid == eventUID {
			return true
		}
	}

	return false
}

func (crt Cart) IsEmpty() bool {
	return len(crt.Lines) == 0
}
