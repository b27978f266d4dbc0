package commands

import (
	"net/url"
	"path"
	"strings"

	apierrors "github.com/diogo/kioskfeed/internal/errors"
	"github.com/diogo/kioskfeed/internal/models"
)

// PageTarget is what a kiosk page URL carries: the server serving the feed
// and the query parameters selecting the channel and classroom.
type PageTarget struct {
	ServerURL string
	Chat      string
	Classroom string
}

// ParsePageURL splits a page URL such as
// https://bacheca.example.org/display/index.html?chat=-100123&classroom=3A.
// A trailing file name is dropped so the feed resolves next to the page.
func ParsePageURL(raw string) (PageTarget, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return PageTarget{}, apierrors.NewConfigError("page_url", err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return PageTarget{}, apierrors.NewConfigError("page_url", "scheme must be http or https")
	}
	if u.Host == "" {
		return PageTarget{}, apierrors.NewConfigError("page_url", "missing host")
	}

	prefix := u.Path
	if strings.Contains(path.Base(prefix), ".") {
		prefix = path.Dir(prefix)
	}
	prefix = strings.TrimRight(prefix, "/")

	query := u.Query()
	return PageTarget{
		ServerURL: u.Scheme + "://" + u.Host + prefix,
		Chat:      strings.TrimSpace(query.Get(models.ChatParam)),
		Classroom: strings.TrimSpace(query.Get(models.ClassroomParam)),
	}, nil
}
