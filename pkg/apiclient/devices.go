package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// DeviceState is the last ephemeral state a device reported via heartbeat.
type DeviceState struct {
	DeviceID      string    `json:"device_id"`
	LastSeenAt    time.Time `json:"last_seen_at"`
	PlayerVersion string    `json:"player_version,omitempty"`
	PlaylistID    string    `json:"playlist_id,omitempty"`
	LayoutID      string    `json:"layout_id,omitempty"`
	IPAddress     string    `json:"ip_address,omitempty"`
}

// Device represents a registered player device.
type Device struct {
	ID          string       `json:"id"`
	TenantID    string       `json:"tenant_id"`
	Name        string       `json:"name"`
	PairingCode string       `json:"pairing_code"`
	PlaylistID  *string      `json:"playlist_id,omitempty"`
	LayoutID    *string      `json:"layout_id,omitempty"`
	Location    string       `json:"location,omitempty"`
	Active      bool         `json:"active"`
	LastSeenAt  *time.Time   `json:"last_seen_at,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	State       *DeviceState `json:"state,omitempty"`
}

// RegisterDeviceRequest is the request body for registering a device.
type RegisterDeviceRequest struct {
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
}

// UpdateDeviceRequest is the request body for updating a device.
// Nil fields are left unchanged.
type UpdateDeviceRequest struct {
	Name       *string `json:"name,omitempty"`
	Location   *string `json:"location,omitempty"`
	Active     *bool   `json:"active,omitempty"`
	PlaylistID *string `json:"playlist_id,omitempty"`
	LayoutID   *string `json:"layout_id,omitempty"`
}

// HeartbeatRequest is the body of a device heartbeat.
type HeartbeatRequest struct {
	PlayerVersion string `json:"player_version,omitempty"`
	PlaylistID    string `json:"playlist_id,omitempty"`
	LayoutID      string `json:"layout_id,omitempty"`
}

// ListDevices returns the tenant's registered devices.
func (c *Client) ListDevices(tenantID string) ([]Device, error) {
	return listResources[Device](c, tenantQuery("/api/devices", tenantID))
}

// GetDevice returns a device by ID, with its last reported state if any.
func (c *Client) GetDevice(id string) (*Device, error) {
	return getResource[Device](c, resourcePath("/api/devices/%s", id))
}

// RegisterDevice registers a new player device for the tenant.
// Fails with 409 once the tenant's package device limit is reached.
func (c *Client) RegisterDevice(tenantID, name, location string) (*Device, error) {
	req := RegisterDeviceRequest{Name: name, Location: location}
	return createResource[Device](c, tenantQuery("/api/devices", tenantID), req)
}

// UpdateDevice updates a device's mutable fields.
func (c *Client) UpdateDevice(id string, req UpdateDeviceRequest) (*Device, error) {
	return updateResource[Device](c, resourcePath("/api/devices/%s", id), req)
}

// DeleteDevice removes a device registration.
func (c *Client) DeleteDevice(id string) error {
	return deleteResource(c, resourcePath("/api/devices/%s", id))
}

// Heartbeat reports a device as alive. It authenticates with the device's
// pairing code rather than a user token, matching what player firmware sends.
func (c *Client) Heartbeat(deviceID, pairingCode string, hb HeartbeatRequest) error {
	body, err := json.Marshal(hb)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+resourcePath("/api/devices/%s/heartbeat", deviceID), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Pairing-Code", pairingCode)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		respBody := new(bytes.Buffer)
		_, _ = respBody.ReadFrom(resp.Body)
		return decodeError(resp.StatusCode, respBody.Bytes())
	}
	return nil
}
