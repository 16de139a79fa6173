package model

import "time"

// Report is the outcome of extracting facts from one source
type Report struct {
	Subject    string         `json:"subject"`              // Human-readable name of the source
	Source     string         `json:"source"`               // URL or file path
	FetchedAt  time.Time      `json:"fetched_at"`           // When extraction ran
	FetchMeta  *FetchMeta     `json:"fetch_meta,omitempty"` // HTTP metadata, nil for local files
	Finder     string         `json:"finder,omitempty"`     // Which attribute source read the page
	Attributes []Attribute    `json:"attributes"`           // Attributes fed into the engine
	Fields     map[string]any `json:"fields"`               // Resolved key -> value mapping
}

// FetchMeta contains HTTP metadata from fetching the source
type FetchMeta struct {
	StatusCode   int               `json:"status_code"`
	ContentType  string            `json:"content_type,omitempty"`
	LastModified string            `json:"last_modified,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Headers      map[string]string `json:"headers,omitempty"`
	FromCache    bool              `json:"from_cache,omitempty"`
}
