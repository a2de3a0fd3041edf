package apisvc

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Sky-walkerX/Examcell/core/upload"
)

var _ upload.Repository = (*Client)(nil)

// QueryRecentUploads lists the latest uploads; a non-positive limit falls back to upload.DefaultRecentLimit.
func (c *Client) QueryRecentUploads(ctx context.Context, limit int) ([]upload.Upload, error) {
	if limit <= 0 {
		limit = upload.DefaultRecentLimit
	}
	q := make(url.Values)
	q.Set("limit", strconv.Itoa(limit))

	uploads := make([]upload.Upload, 0)
	if err := c.get(ctx, "/uploads?"+q.Encode(), &uploads); err != nil {
		return nil, err
	}
	return uploads, nil
}

// UploadResultsCSV sends the file as multipart form data along with its semester and type.
func (c *Client) UploadResultsCSV(ctx context.Context, cu upload.CSVUpload) (upload.Response, error) {
	body := MultipartBody{
		Fields: []FormField{
			{Name: "semester", Value: cu.Semester},
			{Name: "type", Value: cu.Type},
		},
		Files: []FilePart{{Field: "file", Filename: cu.Filename, Content: cu.Content}},
	}

	var resp upload.Response
	err := c.post(ctx, "/uploads/results/csv", body, &resp)
	return resp, err
}
