package apiclient

import (
	"context"
	"net/http"
)

// ListEnrollments returns the enrollments visible to the acting lecturer.
func (c *Client) ListEnrollments(ctx context.Context, credential string) ([]Enrollment, error) {
	var out []Enrollment
	if err := c.do(ctx, http.MethodGet, "/api/enrollments", credential, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateEnrollment enrolls a student into a course.
func (c *Client) CreateEnrollment(ctx context.Context, credential string, input EnrollmentInput) (*Enrollment, error) {
	var out Enrollment
	if err := c.do(ctx, http.MethodPost, "/api/enrollments", credential, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateEnrollment moves an enrollment to a different student or course.
func (c *Client) UpdateEnrollment(ctx context.Context, credential, id string, input EnrollmentInput) (*Enrollment, error) {
	var out Enrollment
	if err := c.do(ctx, http.MethodPut, "/api/enrollments/"+id, credential, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteEnrollment removes the enrollment identified by id.
func (c *Client) DeleteEnrollment(ctx context.Context, credential, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/enrollments/"+id, credential, nil, nil)
}
