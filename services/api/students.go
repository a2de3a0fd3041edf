package apisvc

import (
	"context"
	"net/url"

	"github.com/Sky-walkerX/Examcell/core/student"
)

var _ student.Repository = (*Client)(nil)

func studentPath(id string) string {
	return "/students/" + url.PathEscape(id)
}

func (c *Client) QueryAllStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	if err := c.get(ctx, "/students", &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) GetStudentByID(ctx context.Context, id string) (student.Student, error) {
	var stu student.Student
	err := c.get(ctx, studentPath(id), &stu)
	return stu, err
}

func (c *Client) CreateStudent(ctx context.Context, ns student.NewStudent) (student.Student, error) {
	var stu student.Student
	err := c.post(ctx, "/students", JSONBody{Value: ns}, &stu)
	return stu, err
}

func (c *Client) UpdateStudent(ctx context.Context, id string, us student.UpdateStudent) (student.Student, error) {
	var stu student.Student
	err := c.put(ctx, studentPath(id), JSONBody{Value: us}, &stu)
	return stu, err
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.delete(ctx, studentPath(id))
}
