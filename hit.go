package enrich

import (
	"bytes"
	"encoding/json"
)

// SearchHit is one URL discovered by an upstream search step.
type SearchHit struct {
	URL        string
	Title      string
	Snippet    string
	ImageURL   string
	ImageTitle string
	FaviconURL string

	// Extra holds fields this package does not interpret, including known
	// keys whose value is not a non-empty string. They are written back
	// unchanged on the record.
	Extra map[string]json.RawMessage
}

// hitKeys maps the JSON keys of a search hit to their typed fields.
func (h *SearchHit) hitKeys() map[string]*string {
	return map[string]*string{
		"url":         &h.URL,
		"title":       &h.Title,
		"snippet":     &h.Snippet,
		"image_url":   &h.ImageURL,
		"image_title": &h.ImageTitle,
		"favicon_url": &h.FaviconURL,
	}
}

// requiredHitKeys are always present on an encoded hit.
var requiredHitKeys = map[string]bool{"url": true, "title": true, "snippet": true}

// UnmarshalJSON decodes a hit object. Known keys whose value is not a
// non-empty JSON string are kept verbatim in Extra.
func (h *SearchHit) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	if fields == nil {
		return Errorf(EINVALID, "search hit must be a JSON object")
	}

	*h = SearchHit{}
	for key, dst := range h.hitKeys() {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var v string
		if err := json.Unmarshal(raw, &v); err != nil || v == "" {
			continue
		}
		*dst = v
		delete(fields, key)
	}
	if len(fields) > 0 {
		h.Extra = fields
	}
	return nil
}

// MarshalJSON encodes the hit with its extra fields merged in.
func (h SearchHit) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.fields())
}

// fields merges the typed fields over Extra. An empty typed field never
// replaces a value kept in Extra, and optional keys are omitted when empty.
func (h *SearchHit) fields() map[string]any {
	m := make(map[string]any, len(h.Extra)+6)
	for k, v := range h.Extra {
		m[k] = v
	}
	for key, v := range h.hitKeys() {
		if *v != "" {
			m[key] = *v
			continue
		}
		if _, ok := m[key]; !ok && requiredHitKeys[key] {
			m[key] = ""
		}
	}
	return m
}

// Status classifies how much of a record came from the page itself.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFallback Status = "fallback"
	StatusError    Status = "error"
)

// Source names the path that produced a record's content.
// The values are consumed downstream and must not change.
type Source string

const (
	SourceExtracted     Source = "bs4"
	SourceSnippet       Source = "google_fallback"
	SourceErrorFallback Source = "error_fallback"
	SourceInvalidURL    Source = "invalid_url"
)

// ImageSource is the HTML signal an image candidate was discovered from.
type ImageSource string

// Image sources in precedence order.
const (
	ImageSourceMeta    ImageSource = "meta"
	ImageSourceLink    ImageSource = "link"
	ImageSourceContent ImageSource = "content"
	ImageSourcePicture ImageSource = "picture"
	ImageSourceFigure  ImageSource = "figure"
)

// ImageCandidate is an image URL discovered on a page. Alt is empty when
// the page provides no alternative text.
type ImageCandidate struct {
	URL    string
	Alt    string
	Source ImageSource
}

type imageJSON struct {
	URL    string      `json:"url"`
	Alt    *string     `json:"alt"`
	Source ImageSource `json:"source"`
}

// MarshalJSON encodes an empty Alt as null.
func (c ImageCandidate) MarshalJSON() ([]byte, error) {
	v := imageJSON{URL: c.URL, Source: c.Source}
	if c.Alt != "" {
		v.Alt = &c.Alt
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes an image object.
func (c *ImageCandidate) UnmarshalJSON(data []byte) error {
	var v imageJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	c.URL, c.Source = v.URL, v.Source
	c.Alt = ""
	if v.Alt != nil {
		c.Alt = *v.Alt
	}
	return nil
}

// Record is the enriched form of a SearchHit. It carries every field of
// the hit plus the extracted content.
type Record struct {
	SearchHit

	Content     string
	ContentHash string
	Image       *ImageCandidate
	Status      Status
	Error       string
	Source      Source
}

// recordKeys are the JSON keys written by the pipeline on top of the hit.
var recordKeys = []string{"content", "content_hash", "image", "status", "error", "source"}

// MarshalJSON encodes the record as a superset of its search hit.
func (r Record) MarshalJSON() ([]byte, error) {
	m := r.SearchHit.fields()
	m["favicon_url"] = r.FaviconURL
	m["content"] = r.Content
	m["image"] = r.Image
	m["status"] = r.Status
	m["error"] = r.Error
	m["source"] = r.Source
	if r.ContentHash != "" {
		m["content_hash"] = r.ContentHash
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes a record previously written by MarshalJSON.
func (r *Record) UnmarshalJSON(data []byte) error {
	var v struct {
		Content     string          `json:"content"`
		ContentHash string          `json:"content_hash"`
		Image       *ImageCandidate `json:"image"`
		Status      Status          `json:"status"`
		Error       string          `json:"error"`
		Source      Source          `json:"source"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}

	var hit SearchHit
	if err := json.Unmarshal(data, &hit); err != nil {
		return err
	}
	for _, key := range recordKeys {
		delete(hit.Extra, key)
	}
	if len(hit.Extra) == 0 {
		hit.Extra = nil
	}

	*r = Record{
		SearchHit:   hit,
		Content:     v.Content,
		ContentHash: v.ContentHash,
		Image:       v.Image,
		Status:      v.Status,
		Error:       v.Error,
		Source:      v.Source,
	}
	return nil
}

// DecodeHits decodes either a single hit object or an array of hits.
// single reports which shape was given so the caller can answer in kind.
func DecodeHits(data []byte) (hits []*SearchHit, single bool, err error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, false, Errorf(EINVALID, "empty input")
	}

	switch trimmed[0] {
	case '{':
		var hit SearchHit
		if err := json.Unmarshal(trimmed, &hit); err != nil {
			return nil, false, Errorf(EINVALID, "invalid search hit: %v", err)
		}
		return []*SearchHit{&hit}, true, nil
	case '[':
		if err := json.Unmarshal(trimmed, &hits); err != nil {
			return nil, false, Errorf(EINVALID, "invalid search hits: %v", err)
		}
		for i, hit := range hits {
			if hit == nil {
				return nil, false, Errorf(EINVALID, "search hit %d is null", i)
			}
		}
		return hits, false, nil
	default:
		return nil, false, Errorf(EINVALID, "input must be a JSON object or array")
	}
}

// EncodeRecords encodes records as an array, or as a single object when
// single is set and exactly one record is given.
func EncodeRecords(records []*Record, single bool) ([]byte, error) {
	if single {
		if len(records) != 1 {
			return nil, Errorf(EINVALID, "single output requires exactly one record, got %d", len(records))
		}
		return json.MarshalIndent(records[0], "", "  ")
	}
	if records == nil {
		records = []*Record{}
	}
	return json.MarshalIndent(records, "", "  ")
}
