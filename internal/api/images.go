package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/guesswho-dev/guesswho/internal/models"
)

// ImageList is a room's image inventory plus the counters the lobby needs
// to decide whether a match can start.
type ImageList struct {
	Images             []models.RoomImage `json:"images"`
	ActiveCount        int                `json:"activeCount"`
	MinRequiredToStart int                `json:"minRequiredToStart"`
}

// ListImages fetches a room's images.
func (c *Client) ListImages(ctx context.Context, roomID string) (*ImageList, error) {
	var resp ImageList
	err := c.doJSON(ctx, "/rooms/"+roomID+"/images", RequestOptions{
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// UploadImage uploads a board image as multipart form data. The multipart
// content type is set explicitly so the pipeline's JSON defaulting never
// touches binary payloads.
func (c *Client) UploadImage(ctx context.Context, roomID, filename string, file io.Reader) (*models.RoomImage, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload: %w", err)
	}

	header := http.Header{}
	header.Set("Content-Type", writer.FormDataContentType())

	var resp struct {
		Image models.RoomImage `json:"image"`
	}
	err = c.doJSON(ctx, "/rooms/"+roomID+"/images", RequestOptions{
		Method: http.MethodPost,
		Body:   buf.Bytes(),
		Header: header,
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.Image, nil
}

// RemoveImage deletes a single image.
func (c *Client) RemoveImage(ctx context.Context, roomID, imageID string) error {
	_, err := c.do(ctx, fmt.Sprintf("/rooms/%s/images/%s", roomID, imageID), RequestOptions{
		Method: http.MethodDelete,
		Auth:   AuthPlayer,
		RoomID: roomID,
	})
	return err
}

// BulkRemoveImages deletes several images at once and returns the ids the
// server actually removed.
func (c *Client) BulkRemoveImages(ctx context.Context, roomID string, imageIDs []string) ([]string, error) {
	body, err := jsonBody(map[string][]string{"imageIds": imageIDs})
	if err != nil {
		return nil, err
	}

	var resp struct {
		RemovedImageIDs []string `json:"removedImageIds"`
	}
	err = c.doJSON(ctx, "/rooms/"+roomID+"/images/bulk-remove", RequestOptions{
		Method: http.MethodPost,
		Body:   body,
		Auth:   AuthPlayer,
		RoomID: roomID,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return resp.RemovedImageIDs, nil
}
