package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"clinicbook/pkg/model"
)

type AppointmentClient struct {
	httpClient *HttpClient
}

func NewAppointmentClient(baseURL string) *AppointmentClient {
	return &AppointmentClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *AppointmentClient) Create(ctx context.Context, body any, headers map[string]string) (*Response, error) {
	return c.httpClient.POSTWithHeaders(ctx, "/api/v1/appointments", body, headers)
}

func (c *AppointmentClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/appointments/id/"+url.PathEscape(id))
}

// Search returns appointments for a location between the from and to day
// keys, inclusive. Pass an empty phone to skip patient filtering.
func (c *AppointmentClient) Search(ctx context.Context, locationID, from, to, phone string, limit int, offset int64) (*Response, error) {
	q := url.Values{}
	q.Set("location_id", locationID)
	if from != "" {
		q.Set("from", from)
	}
	if to != "" {
		q.Set("to", to)
	}
	if phone != "" {
		q.Set("phone", phone)
	}
	q.Set("limit", fmt.Sprintf("%d", limit))
	q.Set("offset", fmt.Sprintf("%d", offset))
	return c.httpClient.GET(ctx, "/api/v1/appointments/search?"+q.Encode())
}

func (c *AppointmentClient) Cancel(ctx context.Context, id string, body any) (*Response, error) {
	return c.httpClient.PATCH(ctx, "/api/v1/appointments/id/"+url.PathEscape(id)+"/cancel", body)
}

func (c *AppointmentClient) DecodeAppointment(resp *Response) (*model.Appointment, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode appointment wrapper: %s: %w", resp.ToString(), err)
	}

	var appointment model.Appointment
	if err := json.Unmarshal(wrapper.Data, &appointment); err != nil {
		return nil, fmt.Errorf("could not decode appointment json: %s: %w", resp.ToString(), err)
	}
	return &appointment, nil
}

func (c *AppointmentClient) DecodeAppointments(resp *Response) ([]*model.Appointment, *Metadata, error) {
	var wrapper struct {
		Data       json.RawMessage `json:"data"`
		TotalCount int64           `json:"total_count"`
		Limit      int             `json:"limit"`
		Offset     int64           `json:"offset"`
	}
	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, nil, fmt.Errorf("could not decode paginated response: %s: %w", resp.ToString(), err)
	}

	var appointments []*model.Appointment
	if err := json.Unmarshal(wrapper.Data, &appointments); err != nil {
		return nil, nil, fmt.Errorf("could not decode appointment list: %s: %w", resp.ToString(), err)
	}

	return appointments, &Metadata{
		TotalCount: wrapper.TotalCount,
		Limit:      wrapper.Limit,
		Offset:     wrapper.Offset,
	}, nil
}
