package apiclient

import (
	"context"
	"net/http"
)

// ListCourses returns the acting lecturer's courses.
func (c *Client) ListCourses(ctx context.Context, credential string) ([]Course, error) {
	var out []Course
	if err := c.do(ctx, http.MethodGet, "/api/courses", credential, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCourse creates a course and returns the stored record.
func (c *Client) CreateCourse(ctx context.Context, credential string, input CourseInput) (*Course, error) {
	var out Course
	if err := c.do(ctx, http.MethodPost, "/api/courses", credential, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateCourse replaces the course identified by id.
func (c *Client) UpdateCourse(ctx context.Context, credential, id string, input CourseInput) (*Course, error) {
	var out Course
	if err := c.do(ctx, http.MethodPut, "/api/courses/"+id, credential, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteCourse removes the course identified by id.
func (c *Client) DeleteCourse(ctx context.Context, credential, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/courses/"+id, credential, nil, nil)
}
