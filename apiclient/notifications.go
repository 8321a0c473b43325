package apiclient

import (
	"context"
	"net/http"
)

// GetNotificationSettings returns the acting user's reminder configuration,
// or nil when none has been saved yet (API 404).
func (c *Client) GetNotificationSettings(ctx context.Context, credential string) (*NotificationSettings, error) {
	var out NotificationSettings
	err := c.do(ctx, http.MethodGet, "/api/settings/notifications", credential, nil, &out)
	if err != nil {
		if apiErr, ok := IsAPIError(err); ok && apiErr.Status == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

// SaveNotificationSettings persists the full reminder configuration.
func (c *Client) SaveNotificationSettings(ctx context.Context, credential string, settings NotificationSettings) (*NotificationSettings, error) {
	var out NotificationSettings
	if err := c.do(ctx, http.MethodPut, "/api/settings/notifications", credential, settings, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestNotificationChannel asks the API to exercise one delivery channel
// against the saved configuration.
func (c *Client) TestNotificationChannel(ctx context.Context, credential string, req NotificationTestRequest) (*NotificationTestResult, error) {
	var out NotificationTestResult
	if err := c.do(ctx, http.MethodPost, "/api/settings/notifications/test", credential, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
