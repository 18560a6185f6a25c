package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"clinicbook/pkg/model"
)

type LocationClient struct {
	httpClient *HttpClient
}

func NewLocationClient(baseURL string) *LocationClient {
	return &LocationClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *LocationClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/locations/id/"+url.PathEscape(id))
}

func (c *LocationClient) Search(ctx context.Context, city, label string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	if city != "" {
		q.Set("city", city)
	}
	if label != "" {
		q.Set("label", label)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return c.httpClient.GET(ctx, "/api/v1/locations/search?"+q.Encode())
}

func (c *LocationClient) DecodeLocation(resp *Response) (*model.Location, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode location wrapper: %s: %w", resp.ToString(), err)
	}

	var location model.Location
	if err := json.Unmarshal(wrapper.Data, &location); err != nil {
		return nil, fmt.Errorf("could not decode location json: %s: %w", resp.ToString(), err)
	}
	return &location, nil
}

func (c *LocationClient) DecodeLocations(resp *Response) ([]*model.Location, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated response: %s: %w", resp.ToString(), err)
	}

	var locations []*model.Location
	if err := json.Unmarshal(wrapper.Data, &locations); err != nil {
		return nil, nil, fmt.Errorf("could not decode location list: %s: %w", resp.ToString(), err)
	}

	return locations, &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}, nil
}
