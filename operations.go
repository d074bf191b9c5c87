package cbir

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/example/cbir-client/internal/logging"
	"github.com/example/cbir-client/protocol"
)

// Ping checks that the server is reachable and answering.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.callJSON(ctx, "cbir.ping", http.MethodPost, "/",
		protocol.PingRequest{Type: protocol.TypePing}, protocol.TypePong)
	return err
}

// IndexImage adds a JPEG image to the server index under the given id and
// returns the id the server echoed back.
func (c *Client) IndexImage(ctx context.Context, imageID int64, jpegData []byte) (int64, error) {
	body, err := c.call(ctx, "cbir.index_image", http.MethodPut, imagePath(imageID),
		jpegData, contentTypeJPEG, protocol.TypeImageAdded)
	if err != nil {
		return 0, err
	}
	return protocol.DecodeImageID(body)
}

// IndexImageFile reads a JPEG file from disk and indexes its contents.
// Read failures surface as I/O errors, not server failures.
func (c *Client) IndexImageFile(ctx context.Context, imageID int64, path string) (int64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, logging.NewOperationError("cbir.index_image_file", "", err)
	}
	return c.IndexImage(ctx, imageID, data)
}

// IndexImageURL asks the server to download the image at url and index it
// under the given id.
func (c *Client) IndexImageURL(ctx context.Context, imageID int64, url string) (int64, error) {
	body, err := c.callJSON(ctx, "cbir.index_image_url", http.MethodPut, imagePath(imageID),
		protocol.IndexURLRequest{URL: url}, protocol.TypeImageAdded)
	if err != nil {
		return 0, err
	}
	return protocol.DecodeImageID(body)
}

// RemoveImage deletes an image from the index and returns the id the server
// echoed back.
func (c *Client) RemoveImage(ctx context.Context, imageID int64) (int64, error) {
	body, err := c.call(ctx, "cbir.remove_image", http.MethodDelete, imagePath(imageID),
		nil, "", protocol.TypeImageRemoved)
	if err != nil {
		return 0, err
	}
	return protocol.DecodeImageID(body)
}

// AddTag attaches a tag to an indexed image.
func (c *Client) AddTag(ctx context.Context, imageID int64, tag string) error {
	_, err := c.call(ctx, "cbir.add_tag", http.MethodPut, imagePath(imageID)+"/tag",
		[]byte(tag), contentTypeText, protocol.TypeImageTagAdded)
	return err
}

// RemoveTag removes the tag of an indexed image.
func (c *Client) RemoveTag(ctx context.Context, imageID int64) error {
	_, err := c.call(ctx, "cbir.remove_tag", http.MethodDelete, imagePath(imageID)+"/tag",
		nil, "", protocol.TypeImageTagRemoved)
	return err
}

// LoadIndex makes the server load its index from a path on the server's
// own filesystem.
func (c *Client) LoadIndex(ctx context.Context, indexPath string) error {
	_, err := c.callJSON(ctx, "cbir.load_index", http.MethodPost, "/index/io",
		protocol.IndexIORequest{Type: protocol.TypeLoad, IndexPath: indexPath},
		protocol.TypeIndexLoaded)
	return err
}

// WriteIndex makes the server persist its index to a path on the server's
// own filesystem.
func (c *Client) WriteIndex(ctx context.Context, indexPath string) error {
	_, err := c.callJSON(ctx, "cbir.write_index", http.MethodPost, "/index/io",
		protocol.IndexIORequest{Type: protocol.TypeWrite, IndexPath: indexPath},
		protocol.TypeIndexWritten)
	return err
}

// LoadTagIndex makes the server load its tag index.
func (c *Client) LoadTagIndex(ctx context.Context, indexTagsPath string) error {
	_, err := c.callJSON(ctx, "cbir.load_tag_index", http.MethodPost, "/index/io",
		protocol.IndexIORequest{Type: protocol.TypeLoadTags, IndexTagsPath: indexTagsPath},
		protocol.TypeIndexTagsLoaded)
	return err
}

// WriteTagIndex makes the server persist its tag index.
func (c *Client) WriteTagIndex(ctx context.Context, indexTagsPath string) error {
	_, err := c.callJSON(ctx, "cbir.write_tag_index", http.MethodPost, "/index/io",
		protocol.IndexIORequest{Type: protocol.TypeWriteTags, IndexTagsPath: indexTagsPath},
		protocol.TypeIndexTagsWritten)
	return err
}

// ClearIndex removes every image from the server index.
func (c *Client) ClearIndex(ctx context.Context) error {
	_, err := c.callJSON(ctx, "cbir.clear_index", http.MethodPost, "/index/io",
		protocol.IndexIORequest{Type: protocol.TypeClear}, protocol.TypeIndexCleared)
	return err
}

// ImageIDs lists the ids of all indexed images in server order.
func (c *Client) ImageIDs(ctx context.Context) ([]int64, error) {
	body, err := c.call(ctx, "cbir.image_ids", http.MethodGet, "/index/imageIds",
		nil, "", protocol.TypeIndexImageIDs)
	if err != nil {
		return nil, err
	}
	return protocol.DecodeImageIDs(body)
}

// Search runs a similarity query with a JPEG image and returns the matches
// in server ranking order.
func (c *Client) Search(ctx context.Context, jpegData []byte) ([]protocol.SearchMatch, error) {
	body, err := c.call(ctx, "cbir.search", http.MethodPost, "/index/searcher",
		jpegData, contentTypeJPEG, protocol.TypeSearchResults)
	if err != nil {
		return nil, err
	}
	return protocol.DecodeSearchMatches(body)
}

// SearchFile reads a JPEG file from disk and runs a similarity query with
// its contents.
func (c *Client) SearchFile(ctx context.Context, path string) ([]protocol.SearchMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, logging.NewOperationError("cbir.search_file", "", err)
	}
	return c.Search(ctx, data)
}

func imagePath(imageID int64) string {
	return fmt.Sprintf("/index/images/%d", imageID)
}
