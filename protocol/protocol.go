// Package protocol defines the JSON wire contract spoken by a CBIR server:
// the message type vocabulary, the request and response body shapes, and the
// decoding of search results into per-match records.
package protocol

import "encoding/json"

// Message types sent by the client.
const (
	TypePing      = "PING"
	TypeLoad      = "LOAD"
	TypeWrite     = "WRITE"
	TypeLoadTags  = "LOAD_TAGS"
	TypeWriteTags = "WRITE_TAGS"
	TypeClear     = "CLEAR"
)

// Message types returned by the server on success.
const (
	TypePong             = "PONG"
	TypeImageAdded       = "IMAGE_ADDED"
	TypeImageRemoved     = "IMAGE_REMOVED"
	TypeImageTagAdded    = "IMAGE_TAG_ADDED"
	TypeImageTagRemoved  = "IMAGE_TAG_REMOVED"
	TypeIndexLoaded      = "INDEX_LOADED"
	TypeIndexWritten     = "INDEX_WRITTEN"
	TypeIndexTagsLoaded  = "INDEX_TAGS_LOADED"
	TypeIndexTagsWritten = "INDEX_TAGS_WRITTEN"
	TypeIndexCleared     = "INDEX_CLEARED"
	TypeIndexImageIDs    = "INDEX_IMAGE_IDS"
	TypeSearchResults    = "SEARCH_RESULTS"
)

// PingRequest is the body of a ping message.
type PingRequest struct {
	Type string `json:"type"`
}

// IndexURLRequest asks the server to download and index an image itself.
type IndexURLRequest struct {
	URL string `json:"url"`
}

// IndexIORequest drives the index persistence operations on /index/io.
// IndexPath is set for LOAD/WRITE, IndexTagsPath for LOAD_TAGS/WRITE_TAGS,
// and neither for CLEAR.
type IndexIORequest struct {
	Type          string `json:"type"`
	IndexPath     string `json:"index_path,omitempty"`
	IndexTagsPath string `json:"index_tags_path,omitempty"`
}

// Envelope carries the mandatory discriminant present on every server reply.
type Envelope struct {
	Type string `json:"type"`
}

// DecodeEnvelope parses a response body far enough to classify it. A body
// that is not valid JSON, or whose type field is absent or empty, is a
// decode failure rather than a domain one.
func DecodeEnvelope(body []byte) (Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return Envelope{}, &DecodeError{Reason: "response body is not valid JSON", Err: err}
	}
	if env.Type == "" {
		return Envelope{}, &DecodeError{Reason: `response is missing the "type" field`}
	}
	return env, nil
}

// ImageIDResponse is the payload of IMAGE_ADDED and IMAGE_REMOVED replies.
// ImageID is a pointer so an absent field is distinguishable from id 0.
type ImageIDResponse struct {
	Type    string `json:"type"`
	ImageID *int64 `json:"image_id"`
}

// DecodeImageID extracts the echoed image id from a verified reply.
func DecodeImageID(body []byte) (int64, error) {
	var resp ImageIDResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0, &DecodeError{Reason: "malformed image id response", Err: err}
	}
	if resp.ImageID == nil {
		return 0, &DecodeError{Reason: `response is missing the "image_id" field`}
	}
	return *resp.ImageID, nil
}

// ImageIDsResponse is the payload of an INDEX_IMAGE_IDS reply.
type ImageIDsResponse struct {
	Type     string  `json:"type"`
	ImageIDs []int64 `json:"image_ids"`
}

// DecodeImageIDs extracts the listed ids in server order. An absent
// image_ids field means an empty index, not an error.
func DecodeImageIDs(body []byte) ([]int64, error) {
	var resp ImageIDsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Reason: "malformed image ids response", Err: err}
	}
	if resp.ImageIDs == nil {
		return []int64{}, nil
	}
	return resp.ImageIDs, nil
}

// Rect is the bounding region of a search match within the query image.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SearchMatch is one candidate result from a similarity query. Tag, Score
// and Bounds hold their zero values when the server omitted them.
type SearchMatch struct {
	ImageID int64
	Tag     string
	Score   float64
	Bounds  Rect
}

// SearchResponse is the payload of a SEARCH_RESULTS reply. The four arrays
// are parallel and independently optional; image_ids alone determines the
// match count.
type SearchResponse struct {
	Type          string    `json:"type"`
	ImageIDs      []int64   `json:"image_ids"`
	Tags          []string  `json:"tags"`
	Scores        []float64 `json:"scores"`
	BoundingRects []Rect    `json:"bounding_rects"`
}

// DecodeSearchMatches zips the parallel result arrays into one record per
// match. Companion arrays shorter than image_ids degrade to zero values for
// the trailing indices; they never cause an error. An absent image_ids
// field yields an empty result set.
func DecodeSearchMatches(body []byte) ([]SearchMatch, error) {
	var resp SearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &DecodeError{Reason: "malformed search response", Err: err}
	}

	matches := make([]SearchMatch, len(resp.ImageIDs))
	for i, id := range resp.ImageIDs {
		matches[i].ImageID = id
		if i < len(resp.Tags) {
			matches[i].Tag = resp.Tags[i]
		}
		if i < len(resp.Scores) {
			matches[i].Score = resp.Scores[i]
		}
		if i < len(resp.BoundingRects) {
			matches[i].Bounds = resp.BoundingRects[i]
		}
	}
	return matches, nil
}
