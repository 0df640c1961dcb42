package tier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fleet-tracker/core/fleet"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// maxBodySize caps how much of a vendor response is read.
const maxBodySize = 64 << 20

// Archiver stores raw vendor payloads.
type Archiver interface {
	Archive(ctx context.Context, kind, key string, payload []byte) error
}

// Client talks to the vendor's vehicle platform.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	validate   *validator.Validate
	archiver   Archiver
	logger     *zap.Logger
}

// NewClient creates a vendor client. Every request carries the configured timeout.
func NewClient(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 10
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:     cfg.ApiKey,
		httpClient: &http.Client{Timeout: time.Duration(timeout) * time.Second},
		validate:   validator.New(),
		logger:     logger,
	}
}

// SetArchiver enables archiving of every successfully read response body.
func (c *Client) SetArchiver(a Archiver) {
	c.archiver = a
}

// ListZones returns the ids of all root zones.
func (c *Client) ListZones(ctx context.Context) ([]string, error) {
	body, err := c.get(ctx, "/v1/zone", url.Values{"type": {"root"}})
	if err != nil {
		return nil, err
	}
	c.archive(ctx, "zones", "root", body)

	var payload zoneList
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: zone list: %w", fleet.ErrParse, err)
	}
	if payload.Data == nil {
		return nil, fmt.Errorf("%w: zone list: expected data array", fleet.ErrParse)
	}
	if err := c.validate.Struct(payload); err != nil {
		return nil, fmt.Errorf("%w: zone list: %w", fleet.ErrParse, err)
	}

	zones := make([]string, 0, len(payload.Data))
	for _, z := range payload.Data {
		zones = append(zones, z.ID)
	}
	return zones, nil
}

// FetchZone returns every vehicle currently reported in the zone together with its latest log.
// The two slices are index aligned.
func (c *Client) FetchZone(ctx context.Context, zone string) ([]fleet.Vehicle, []fleet.Log, error) {
	body, err := c.get(ctx, "/v2/vehicle", url.Values{"zoneId": {zone}})
	if err != nil {
		return nil, nil, err
	}
	c.archive(ctx, "vehicles", zone, body)

	var payload vehicleList
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, nil, fmt.Errorf("%w: vehicles of %s: %w", fleet.ErrParse, zone, err)
	}
	if payload.Data == nil {
		return nil, nil, fmt.Errorf("%w: vehicles of %s: expected data array", fleet.ErrParse, zone)
	}

	vehicles := make([]fleet.Vehicle, 0, len(payload.Data))
	logs := make([]fleet.Log, 0, len(payload.Data))
	for i, item := range payload.Data {
		v, l, err := c.decodeVehicle(item)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: vehicles of %s: item %d: %w", fleet.ErrParse, zone, i, err)
		}
		vehicles = append(vehicles, v)
		logs = append(logs, l)
	}
	return vehicles, logs, nil
}

// FetchVehicle returns one vehicle and its latest log.
// It returns fleet.ErrVehicleNotFound when the vendor answers 404.
func (c *Client) FetchVehicle(ctx context.Context, vehicleUUID string) (fleet.Vehicle, fleet.Log, error) {
	body, err := c.get(ctx, "/v1/vehicle/"+url.PathEscape(vehicleUUID), nil)
	if err != nil {
		return fleet.Vehicle{}, fleet.Log{}, err
	}
	c.archive(ctx, "vehicle", vehicleUUID, body)

	var payload vehicleEnvelope
	if err := json.Unmarshal(body, &payload); err != nil {
		return fleet.Vehicle{}, fleet.Log{}, fmt.Errorf("%w: vehicle %s: %w", fleet.ErrParse, vehicleUUID, err)
	}
	if payload.Data == nil {
		return fleet.Vehicle{}, fleet.Log{}, fmt.Errorf("%w: vehicle %s: expected data object", fleet.ErrParse, vehicleUUID)
	}

	v, l, err := c.decodeVehicle(*payload.Data)
	if err != nil {
		return fleet.Vehicle{}, fleet.Log{}, fmt.Errorf("%w: vehicle %s: %w", fleet.ErrParse, vehicleUUID, err)
	}
	return v, l, nil
}

func (c *Client) decodeVehicle(item vehicleItem) (fleet.Vehicle, fleet.Log, error) {
	id, err := uuid.Parse(item.ID)
	if err != nil {
		return fleet.Vehicle{}, fleet.Log{}, fmt.Errorf("vehicle id %q: %w", item.ID, err)
	}
	if len(item.Attributes) == 0 {
		return fleet.Vehicle{}, fleet.Log{}, errors.New("missing attributes")
	}

	var attr attributes
	if err := json.Unmarshal(item.Attributes, &attr); err != nil {
		return fleet.Vehicle{}, fleet.Log{}, err
	}
	if err := c.validate.Struct(attr); err != nil {
		return fleet.Vehicle{}, fleet.Log{}, err
	}

	observed, err := time.Parse(time.RFC3339, attr.LastLocationUpdate)
	if err != nil {
		return fleet.Vehicle{}, fleet.Log{}, fmt.Errorf("lastLocationUpdate: %w", err)
	}

	vehicleUUID := id.String()
	vehicle := fleet.Vehicle{
		UUID:         vehicleUUID,
		Code:         attr.Code,
		MaxSpeed:     attr.MaxSpeed,
		HasBox:       attr.HasHelmetBox,
		HasHelmet:    attr.HasHelmet,
		Zone:         attr.ZoneID,
		Kind:         attr.VehicleType,
		Vendor:       attr.IotVendor,
		LicensePlate: attr.LicencePlate,
	}
	log := fleet.Log{
		VehicleUUID: vehicleUUID,
		Time:        observed.UTC(),
		Lat:         *attr.Lat,
		Lng:         *attr.Lng,
		Battery:     attr.BatteryLevel,
		Rentable:    attr.IsRentable,
		State:       attr.State,
	}
	return vehicle, log, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request %s: %w", fleet.ErrTransport, path, err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: GET %s: %w", fleet.ErrTransport, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound && strings.HasPrefix(path, "/v1/vehicle/") {
		return nil, fmt.Errorf("%w: GET %s", fleet.ErrVehicleNotFound, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: GET %s: HTTP %d: %s", fleet.ErrTransport, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", fleet.ErrTransport, path, err)
	}
	return body, nil
}

// archive is best effort; a failing archive never fails the request.
func (c *Client) archive(ctx context.Context, kind, key string, body []byte) {
	if c.archiver == nil {
		return
	}
	if err := c.archiver.Archive(ctx, kind, key, body); err != nil {
		c.logger.Warn("Failed to archive vendor payload",
			zap.String("kind", kind),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}
