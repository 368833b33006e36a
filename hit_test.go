package enrich_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/enrich"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchHit_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("decodes known fields and keeps the rest", func(t *testing.T) {
		t.Parallel()

		var hit enrich.SearchHit
		err := json.Unmarshal([]byte(`{
			"url": "https://example.com/a",
			"title": "A",
			"snippet": "snip",
			"image_url": "https://example.com/i.jpg",
			"position": 3,
			"tags": ["x", "y"]
		}`), &hit)

		require.NoError(t, err)
		assert.Equal(t, "https://example.com/a", hit.URL)
		assert.Equal(t, "A", hit.Title)
		assert.Equal(t, "snip", hit.Snippet)
		assert.Equal(t, "https://example.com/i.jpg", hit.ImageURL)
		require.Len(t, hit.Extra, 2)
		assert.JSONEq(t, `3`, string(hit.Extra["position"]))
		assert.JSONEq(t, `["x","y"]`, string(hit.Extra["tags"]))
	})

	t.Run("keeps known keys with non-string values verbatim", func(t *testing.T) {
		t.Parallel()

		var hit enrich.SearchHit
		err := json.Unmarshal([]byte(`{"url": "https://example.com", "title": null, "snippet": 42}`), &hit)

		require.NoError(t, err)
		assert.Empty(t, hit.Title)
		assert.JSONEq(t, `null`, string(hit.Extra["title"]))
		assert.JSONEq(t, `42`, string(hit.Extra["snippet"]))
	})

	t.Run("keeps empty known keys verbatim", func(t *testing.T) {
		t.Parallel()

		var hit enrich.SearchHit
		err := json.Unmarshal([]byte(`{"url": "https://example.com", "image_url": ""}`), &hit)

		require.NoError(t, err)
		assert.Empty(t, hit.ImageURL)
		assert.JSONEq(t, `""`, string(hit.Extra["image_url"]))
	})

	t.Run("rejects non-object input", func(t *testing.T) {
		t.Parallel()

		var hit enrich.SearchHit
		err := json.Unmarshal([]byte(`"https://example.com"`), &hit)

		require.Error(t, err)
	})
}

func TestRecord_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes a superset of the hit", func(t *testing.T) {
		t.Parallel()

		rec := enrich.Record{
			SearchHit: enrich.SearchHit{
				URL:        "https://example.com/a",
				Title:      "A",
				Snippet:    "snip",
				FaviconURL: "https://www.google.com/s2/favicons?domain=example.com",
				Extra:      map[string]json.RawMessage{"position": json.RawMessage(`3`)},
			},
			Content: "body",
			Image:   &enrich.ImageCandidate{URL: "https://example.com/i.jpg", Alt: "Featured image", Source: enrich.ImageSourceMeta},
			Status:  enrich.StatusSuccess,
			Source:  enrich.SourceExtracted,
		}

		data, err := json.Marshal(rec)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"url": "https://example.com/a",
			"title": "A",
			"snippet": "snip",
			"position": 3,
			"favicon_url": "https://www.google.com/s2/favicons?domain=example.com",
			"content": "body",
			"image": {"url": "https://example.com/i.jpg", "alt": "Featured image", "source": "meta"},
			"status": "success",
			"error": "",
			"source": "bs4"
		}`, string(data))
	})

	t.Run("carries every decoded input field through", func(t *testing.T) {
		t.Parallel()

		var hit enrich.SearchHit
		require.NoError(t, json.Unmarshal([]byte(`{
			"url": "https://example.com/a",
			"title": 42,
			"snippet": ["a", "b"],
			"image_url": "",
			"image_title": "",
			"rank": 3
		}`), &hit))

		data, err := json.Marshal(enrich.Record{SearchHit: hit, Status: enrich.StatusFallback})
		require.NoError(t, err)

		var got map[string]json.RawMessage
		require.NoError(t, json.Unmarshal(data, &got))
		assert.JSONEq(t, `"https://example.com/a"`, string(got["url"]))
		assert.JSONEq(t, `42`, string(got["title"]))
		assert.JSONEq(t, `["a","b"]`, string(got["snippet"]))
		assert.JSONEq(t, `""`, string(got["image_url"]))
		assert.JSONEq(t, `""`, string(got["image_title"]))
		assert.JSONEq(t, `3`, string(got["rank"]))
	})

	t.Run("omits empty optional fields the input did not have", func(t *testing.T) {
		t.Parallel()

		data, err := json.Marshal(enrich.SearchHit{URL: "https://example.com"})
		require.NoError(t, err)

		assert.JSONEq(t, `{"url": "https://example.com", "title": "", "snippet": ""}`, string(data))
	})

	t.Run("writes null for missing image and alt", func(t *testing.T) {
		t.Parallel()

		rec := enrich.Record{
			SearchHit: enrich.SearchHit{URL: "https://example.com"},
			Status:    enrich.StatusFallback,
			Source:    enrich.SourceSnippet,
			Error:     "Using Google snippet",
		}
		img := enrich.ImageCandidate{URL: "https://example.com/p.jpg", Source: enrich.ImageSourcePicture}

		recData, err := json.Marshal(rec)
		require.NoError(t, err)
		imgData, err := json.Marshal(img)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(recData, &decoded))
		assert.Contains(t, decoded, "image")
		assert.Nil(t, decoded["image"])
		assert.JSONEq(t, `{"url": "https://example.com/p.jpg", "alt": null, "source": "picture"}`, string(imgData))
	})
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	data := []byte(`{
		"url": "https://example.com/a",
		"title": "A",
		"snippet": "snip",
		"rank": 1,
		"favicon_url": "https://www.google.com/s2/favicons?domain=example.com",
		"content": "body",
		"content_hash": "abc",
		"image": {"url": "https://example.com/i.jpg", "alt": null, "source": "content"},
		"status": "success",
		"error": "",
		"source": "bs4"
	}`)

	var rec enrich.Record
	err := json.Unmarshal(data, &rec)

	require.NoError(t, err)
	assert.Equal(t, "https://example.com/a", rec.URL)
	assert.Equal(t, "body", rec.Content)
	assert.Equal(t, "abc", rec.ContentHash)
	assert.Equal(t, enrich.StatusSuccess, rec.Status)
	assert.Equal(t, enrich.SourceExtracted, rec.Source)
	require.NotNil(t, rec.Image)
	assert.Equal(t, enrich.ImageSourceContent, rec.Image.Source)
	assert.Empty(t, rec.Image.Alt)
	assert.Equal(t, map[string]json.RawMessage{"rank": json.RawMessage(`1`)}, rec.Extra)
}

func TestDecodeHits(t *testing.T) {
	t.Parallel()

	t.Run("decodes a single object", func(t *testing.T) {
		t.Parallel()

		hits, single, err := enrich.DecodeHits([]byte(` {"url": "https://example.com"} `))

		require.NoError(t, err)
		assert.True(t, single)
		require.Len(t, hits, 1)
		assert.Equal(t, "https://example.com", hits[0].URL)
	})

	t.Run("decodes an array", func(t *testing.T) {
		t.Parallel()

		hits, single, err := enrich.DecodeHits([]byte(`[{"url": "https://a.example"}, {"url": "https://b.example"}]`))

		require.NoError(t, err)
		assert.False(t, single)
		require.Len(t, hits, 2)
		assert.Equal(t, "https://b.example", hits[1].URL)
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		t.Parallel()

		for _, input := range []string{``, `42`, `"x"`, `[null]`, `[1]`, `{`} {
			_, _, err := enrich.DecodeHits([]byte(input))
			assert.Equal(t, enrich.EINVALID, enrich.ErrorCode(err), "input %q", input)
		}
	})
}

func TestEncodeRecords(t *testing.T) {
	t.Parallel()

	t.Run("answers an object with an object", func(t *testing.T) {
		t.Parallel()

		data, err := enrich.EncodeRecords([]*enrich.Record{{SearchHit: enrich.SearchHit{URL: "https://example.com"}}}, true)

		require.NoError(t, err)
		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "https://example.com", decoded["url"])
	})

	t.Run("answers an empty array with an empty array", func(t *testing.T) {
		t.Parallel()

		data, err := enrich.EncodeRecords(nil, false)

		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(data))
	})

	t.Run("rejects single output with several records", func(t *testing.T) {
		t.Parallel()

		_, err := enrich.EncodeRecords([]*enrich.Record{{}, {}}, true)

		assert.Equal(t, enrich.EINVALID, enrich.ErrorCode(err))
	})
}
