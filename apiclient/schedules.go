package apiclient

import (
	"context"
	"net/http"
)

// ListSchedules returns every schedule. The endpoint is public; credential
// may be empty.
func (c *Client) ListSchedules(ctx context.Context, credential string) ([]Schedule, error) {
	var out []Schedule
	if err := c.do(ctx, http.MethodGet, "/api/schedules", credential, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListLecturerSchedules returns the schedules owned by one lecturer.
func (c *Client) ListLecturerSchedules(ctx context.Context, credential, lecturerID string) ([]Schedule, error) {
	var out []Schedule
	if err := c.do(ctx, http.MethodGet, "/api/schedules/lecturer/"+lecturerID, credential, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSchedule creates a schedule and returns the stored record.
func (c *Client) CreateSchedule(ctx context.Context, credential string, input ScheduleInput) (*Schedule, error) {
	var out Schedule
	if err := c.do(ctx, http.MethodPost, "/api/schedules", credential, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSchedule replaces the schedule identified by id.
func (c *Client) UpdateSchedule(ctx context.Context, credential, id string, input ScheduleInput) (*Schedule, error) {
	var out Schedule
	if err := c.do(ctx, http.MethodPut, "/api/schedules/"+id, credential, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteSchedule removes the schedule identified by id.
func (c *Client) DeleteSchedule(ctx context.Context, credential, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/schedules/"+id, credential, nil, nil)
}
