// Package youtube is a minimal REST client for the timedtext caption feed.
package youtube

import (
	"context"
	"encoding/xml"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"time"

	"quicktube/internal/transcript"
)

const defaultBaseURL = "https://video.google.com/timedtext"

// Client lists a video's caption tracks and downloads one of them.
type Client struct {
	baseURL string
	client  *http.Client
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{baseURL: base, client: &http.Client{Timeout: timeout}}
}

type trackList struct {
	XMLName xml.Name `xml:"transcript_list"`
	Tracks  []track  `xml:"track"`
}

type track struct {
	LangCode string `xml:"lang_code,attr"`
	Name     string `xml:"name,attr"`
}

type captionFeed struct {
	XMLName xml.Name      `xml:"transcript"`
	Lines   []captionLine `xml:"text"`
}

type captionLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Body  string  `xml:",chardata"`
}

// FetchLanguage downloads the caption track for one language. An empty track
// list means captions are disabled for the video; a non-empty list without
// the requested language means not found (which lets the caller fall back).
func (c *Client) FetchLanguage(ctx context.Context, videoID, language string) (transcript.Transcript, error) {
	tracks, err := c.listTracks(ctx, videoID)
	if err != nil {
		return transcript.Transcript{}, err
	}
	if len(tracks.Tracks) == 0 {
		return transcript.Transcript{}, transcript.ErrDisabled
	}
	lang := ""
	for _, t := range tracks.Tracks {
		if t.LangCode == language {
			lang = t.LangCode
			break
		}
	}
	if lang == "" {
		return transcript.Transcript{}, fmt.Errorf("%w: %q", transcript.ErrNotFound, language)
	}

	var feed captionFeed
	if err := c.getXML(ctx, url.Values{"v": {videoID}, "lang": {lang}}, &feed); err != nil {
		return transcript.Transcript{}, err
	}
	if len(feed.Lines) == 0 {
		return transcript.Transcript{}, fmt.Errorf("%w: empty track %q", transcript.ErrNotFound, lang)
	}
	segments := make([]transcript.Segment, 0, len(feed.Lines))
	for _, line := range feed.Lines {
		text := html.UnescapeString(line.Body)
		if text == "" {
			continue
		}
		segments = append(segments, transcript.Segment{Text: text, Start: line.Start, Duration: line.Dur})
	}
	return transcript.Join(segments), nil
}

func (c *Client) listTracks(ctx context.Context, videoID string) (trackList, error) {
	var tracks trackList
	err := c.getXML(ctx, url.Values{"type": {"list"}, "v": {videoID}}, &tracks)
	return tracks, err
}

func (c *Client) getXML(ctx context.Context, params url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("timedtext request failed: %s", resp.Status)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("timedtext read failed: %w", err)
	}
	if len(data) == 0 {
		// The feed answers 200 with an empty body for unknown videos;
		// leave out zero-valued so the caller sees an empty track list.
		return nil
	}
	return xml.Unmarshal(data, out)
}
