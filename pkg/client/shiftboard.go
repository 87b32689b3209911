package client

import (
	"context"
	"fmt"
	"net/url"
	"shiftboard/pkg/model"
)

// ShiftboardClient is a typed client for the shiftboard HTTP API.
type ShiftboardClient struct {
	httpClient *HttpClient
}

func NewShiftboardClient(baseURL, token string) *ShiftboardClient {
	return &ShiftboardClient{
		httpClient: NewHttpClient(baseURL).WithToken(token),
	}
}

func (c *ShiftboardClient) Me(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/me")
}

func (c *ShiftboardClient) GetLock(ctx context.Context, monthStart string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/locks/"+url.PathEscape(monthStart))
}

func (c *ShiftboardClient) GetLocksForYear(ctx context.Context, year int, fill bool) (*Response, error) {
	q := url.Values{}
	q.Set("year", fmt.Sprintf("%d", year))
	if fill {
		q.Set("fill", "true")
	}
	return c.httpClient.GET(ctx, "/api/v1/locks?"+q.Encode())
}

func (c *ShiftboardClient) SetLock(ctx context.Context, monthStart string, isLocked bool) (*Response, error) {
	return c.httpClient.PUT(ctx, "/api/v1/locks/"+url.PathEscape(monthStart), model.LockUpdate{IsLocked: &isLocked})
}

func (c *ShiftboardClient) GetAvailability(ctx context.Context, doctorID, start, end string) (*Response, error) {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	return c.httpClient.GET(ctx, fmt.Sprintf("/api/v1/doctors/%s/availability?%s", url.PathEscape(doctorID), q.Encode()))
}

// SetAvailability sends a status change; model.StatusAvailable is sent as null.
func (c *ShiftboardClient) SetAvailability(ctx context.Context, doctorID, date string, status model.AvailabilityStatus) (*Response, error) {
	body := model.AvailabilityUpdate{}
	if !status.IsAvailable() {
		body.Status = &status
	}
	return c.httpClient.PUT(ctx, availabilityPath(doctorID, date), body)
}

func (c *ShiftboardClient) CycleAvailability(ctx context.Context, doctorID, date string) (*Response, error) {
	return c.httpClient.POST(ctx, availabilityPath(doctorID, date)+"/cycle", struct{}{})
}

func (c *ShiftboardClient) GetShifts(ctx context.Context, start, end string) (*Response, error) {
	q := url.Values{}
	q.Set("start", start)
	q.Set("end", end)
	return c.httpClient.GET(ctx, "/api/v1/shifts?"+q.Encode())
}

func availabilityPath(doctorID, date string) string {
	return fmt.Sprintf("/api/v1/doctors/%s/availability/%s", url.PathEscape(doctorID), url.PathEscape(date))
}
