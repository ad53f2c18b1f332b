package tvmaze

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tidwall/gjson"

	"github.com/javiermolinar/showcal/internal/show"
)

// ErrInvalidPayload is returned when the body is not a TVmaze show object.
var ErrInvalidPayload = errors.New("invalid tvmaze payload")

// ParseShow decodes a /shows/{id}?embed=episodes response.
// Episodes without an airstamp (not yet scheduled) are skipped.
func ParseShow(body []byte) (*show.Show, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidPayload
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() || !root.Get("id").Exists() {
		return nil, ErrInvalidPayload
	}

	sh := &show.Show{
		ID:             root.Get("id").String(),
		Name:           root.Get("name").String(),
		Network:        networkName(root),
		EpisodesLoaded: true,
		Episodes:       []show.Episode{},
	}

	var parseErr error
	root.Get("_embedded.episodes").ForEach(func(_, ep gjson.Result) bool {
		raw := ep.Get("airstamp").String()
		if raw == "" {
			return true
		}
		airstamp, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			parseErr = fmt.Errorf("episode %s airstamp %q: %w", ep.Get("id").String(), raw, err)
			return false
		}
		sh.Episodes = append(sh.Episodes, show.Episode{
			ID:       strconv.FormatInt(ep.Get("id").Int(), 10),
			Season:   int(ep.Get("season").Int()),
			Number:   int(ep.Get("number").Int()),
			Name:     ep.Get("name").String(),
			Airstamp: airstamp,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return sh, nil
}

// networkName prefers the broadcast network and falls back to the web channel.
func networkName(root gjson.Result) string {
	if name := root.Get("network.name").String(); name != "" {
		return name
	}
	return root.Get("webChannel.name").String()
}
