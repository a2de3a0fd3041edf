package apisvc

import (
	"context"
	"net/url"

	"github.com/Sky-walkerX/Examcell/core/subject"
)

var _ subject.Repository = (*Client)(nil)

func subjectPath(code string) string {
	return "/subjects/" + url.PathEscape(code)
}

func (c *Client) QueryAllSubjects(ctx context.Context) ([]subject.Subject, error) {
	subjects := make([]subject.Subject, 0)
	if err := c.get(ctx, "/subjects", &subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (c *Client) GetSubjectByCode(ctx context.Context, code string) (subject.Subject, error) {
	var sub subject.Subject
	err := c.get(ctx, subjectPath(code), &sub)
	return sub, err
}

func (c *Client) CreateSubject(ctx context.Context, ns subject.NewSubject) (subject.Subject, error) {
	var sub subject.Subject
	err := c.post(ctx, "/subjects", JSONBody{Value: ns}, &sub)
	return sub, err
}

func (c *Client) UpdateSubject(ctx context.Context, code string, us subject.UpdateSubject) (subject.Subject, error) {
	var sub subject.Subject
	err := c.put(ctx, subjectPath(code), JSONBody{Value: us}, &sub)
	return sub, err
}

func (c *Client) DeleteSubject(ctx context.Context, code string) error {
	return c.delete(ctx, subjectPath(code))
}
