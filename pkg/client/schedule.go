package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"clinicbook/pkg/model"
)

type ScheduleClient struct {
	httpClient *HttpClient
}

func NewScheduleClient(baseURL string) *ScheduleClient {
	return &ScheduleClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ScheduleClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/schedules/id/"+url.PathEscape(id))
}

func (c *ScheduleClient) GetByLocation(ctx context.Context, locationID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/schedules/location/"+url.PathEscape(locationID))
}

func (c *ScheduleClient) DecodeSchedule(resp *Response) (*model.Schedule, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode schedule wrapper: %s: %w", resp.ToString(), err)
	}

	var schedule model.Schedule
	if err := json.Unmarshal(wrapper.Data, &schedule); err != nil {
		return nil, fmt.Errorf("could not decode schedule json: %s: %w", resp.ToString(), err)
	}
	return &schedule, nil
}
