package apisvc

import (
	"context"
	"net/url"
	"strconv"

	"github.com/Sky-walkerX/Examcell/core/result"
)

var _ result.Repository = (*Client)(nil)

func resultPath(id int64) string {
	return "/results/" + strconv.FormatInt(id, 10)
}

func (c *Client) queryResults(ctx context.Context, endpoint string) ([]result.Result, error) {
	results := make([]result.Result, 0)
	if err := c.get(ctx, endpoint, &results); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Client) QueryAllResults(ctx context.Context) ([]result.Result, error) {
	return c.queryResults(ctx, "/results")
}

func (c *Client) QueryResultsByStudent(ctx context.Context, studentID string) ([]result.Result, error) {
	return c.queryResults(ctx, "/results/student/"+url.PathEscape(studentID))
}

func (c *Client) QueryResultsBySemester(ctx context.Context, semester string) ([]result.Result, error) {
	return c.queryResults(ctx, "/results/semester/"+url.PathEscape(semester))
}

func (c *Client) CreateResult(ctx context.Context, nr result.NewResult) (result.Result, error) {
	var res result.Result
	err := c.post(ctx, "/results", JSONBody{Value: nr}, &res)
	return res, err
}

func (c *Client) UpdateResult(ctx context.Context, id int64, ur result.UpdateResult) (result.Result, error) {
	var res result.Result
	err := c.put(ctx, resultPath(id), JSONBody{Value: ur}, &res)
	return res, err
}

func (c *Client) DeleteResult(ctx context.Context, id int64) error {
	return c.delete(ctx, resultPath(id))
}
