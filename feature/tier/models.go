package tier

import "encoding/json"

// zoneList is the body of GET /v1/zone.
type zoneList struct {
	Data []struct {
		ID string `json:"id" validate:"required"`
	} `json:"data" validate:"dive"`
}

// vehicleList is the body of GET /v2/vehicle.
type vehicleList struct {
	Data []vehicleItem `json:"data"`
}

// vehicleEnvelope is the body of GET /v1/vehicle/{uuid}.
type vehicleEnvelope struct {
	Data *vehicleItem `json:"data"`
}

type vehicleItem struct {
	ID         string          `json:"id"`
	Attributes json.RawMessage `json:"attributes"`
}

// attributes are the vendor fields of a vehicle. Pointers mark the fields
// a log cannot be built without.
type attributes struct {
	BatteryLevel       int      `json:"batteryLevel"`
	Code               int      `json:"code"`
	HasHelmet          bool     `json:"hasHelmet"`
	HasHelmetBox       bool     `json:"hasHelmetBox"`
	IotVendor          string   `json:"iotVendor"`
	IsRentable         bool     `json:"isRentable"`
	LastLocationUpdate string   `json:"lastLocationUpdate" validate:"required"`
	LastStateChange    string   `json:"lastStateChange"`
	Lat                *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng                *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
	LicencePlate       string   `json:"licencePlate"`
	MaxSpeed           int      `json:"maxSpeed"`
	State              string   `json:"state"`
	VehicleType        string   `json:"vehicleType"`
	ZoneID             string   `json:"zoneId" validate:"required"`
}
