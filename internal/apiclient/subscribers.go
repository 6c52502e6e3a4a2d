package apiclient

import (
	"context"
	"net/http"
	"net/url"
)

// Subscriber is a newsletter subscriber.
type Subscriber struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	SubscribedAt string `json:"subscribedAt"`
}

// Subscribe adds an email to the newsletter. Public endpoint.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.doJSON(ctx, http.MethodPost, "/api/subscribers/subscribe", nil, body, nil)
}

// Subscribers lists newsletter subscribers. Admin only.
func (c *Client) Subscribers(ctx context.Context, ts TokenSource) ([]Subscriber, error) {
	var subscribers []Subscriber
	if err := c.doJSON(ctx, http.MethodGet, "/api/subscribers", ts, nil, &subscribers); err != nil {
		return nil, err
	}
	return subscribers, nil
}

// DeleteSubscriber removes a subscriber. Admin only.
func (c *Client) DeleteSubscriber(ctx context.Context, ts TokenSource, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/api/subscribers/"+url.PathEscape(id), ts, nil, nil)
}
