package domain

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cast"

	"github.com/together-as-one/internal/pkg/utils"
)

// WaterPointType - kind of water source
type WaterPointType string

const (
	WaterPointBorehole  WaterPointType = "borehole"
	WaterPointTank      WaterPointType = "tank"
	WaterPointCommunity WaterPointType = "community"
)

// Coordinates - WGS84 point
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both values are finite and within WGS84 range.
func (c Coordinates) Valid() bool {
	return utils.ValidateCoordinates(c.Latitude, c.Longitude)
}

// AvailabilityWindow - recurring weekly window [StartHour, EndHour) on Day (0 = Sunday)
type AvailabilityWindow struct {
	Day       int `json:"day"`
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
}

// Valid checks day in [0,6] and 0 <= start < end <= 24.
func (w AvailabilityWindow) Valid() bool {
	return w.Day >= 0 && w.Day <= 6 &&
		w.StartHour >= 0 && w.EndHour <= 24 &&
		w.StartHour < w.EndHour
}

// Contains reports whether hour falls inside the window on the given day.
func (w AvailabilityWindow) Contains(day, hour int) bool {
	return w.Valid() && w.Day == day && hour >= w.StartHour && hour < w.EndHour
}

// Overlaps reports whether the window shares at least one hour with [from, to].
func (w AvailabilityWindow) Overlaps(from, to int) bool {
	return w.Valid() && w.StartHour <= to && w.EndHour > from
}

// WaterPoint - place offering water during an outage
type WaterPoint struct {
	ID             string               `json:"id" db:"id"`
	Name           string               `json:"name" db:"name"`
	Type           WaterPointType       `json:"type,omitempty" db:"type"`
	Area           string               `json:"area" db:"area"`
	SubArea        string               `json:"subArea" db:"sub_area"`
	Address        string               `json:"address" db:"address"`
	Description    string               `json:"description" db:"description"`
	Location       *Coordinates         `json:"location,omitempty"`
	Availability   []AvailabilityWindow `json:"availability"`
	AvailableTimes []string             `json:"availableTimes,omitempty"`
}

// HasLocation reports whether the record carries usable coordinates.
func (p *WaterPoint) HasLocation() bool {
	return p.Location != nil && p.Location.Valid()
}

// UnmarshalJSON decodes loosely shaped records. Numeric ids, numeric-string
// coordinates, a missing or malformed location and a non-array availability
// are all accepted; unusable parts become "unknown" instead of an error.
func (p *WaterPoint) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID             interface{}     `json:"id"`
		Name           string          `json:"name"`
		Type           string          `json:"type"`
		Area           string          `json:"area"`
		SubArea        string          `json:"subArea"`
		Address        string          `json:"address"`
		Description    string          `json:"description"`
		Location       json.RawMessage `json:"location"`
		Availability   json.RawMessage `json:"availability"`
		AvailableTimes json.RawMessage `json:"availableTimes"`
	}

	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	*p = WaterPoint{
		ID:          idString(raw.ID),
		Name:        raw.Name,
		Type:        WaterPointType(raw.Type),
		Area:        raw.Area,
		SubArea:     raw.SubArea,
		Address:     raw.Address,
		Description: raw.Description,
	}
	p.Location = decodeLocation(raw.Location)
	p.Availability = decodeAvailability(raw.Availability)

	var times []string
	if json.Unmarshal(raw.AvailableTimes, &times) == nil {
		p.AvailableTimes = times
	}

	return nil
}

func idString(v interface{}) string {
	if n, ok := v.(json.Number); ok {
		return n.String()
	}
	return cast.ToString(v)
}

func decodeLocation(data json.RawMessage) *Coordinates {
	if len(data) == 0 {
		return nil
	}

	var fields map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil || fields == nil {
		return nil
	}

	lat, ok := pickCoordinate(fields, "latitude", "lat")
	if !ok {
		return nil
	}
	lng, ok := pickCoordinate(fields, "longitude", "lng", "lon")
	if !ok {
		return nil
	}

	c := &Coordinates{Latitude: lat, Longitude: lng}
	if !c.Valid() {
		return nil
	}
	return c
}

func pickCoordinate(fields map[string]interface{}, keys ...string) (float64, bool) {
	for _, k := range keys {
		if v, present := fields[k]; present {
			return utils.CoerceFloat(v)
		}
	}
	return 0, false
}

func decodeAvailability(data json.RawMessage) []AvailabilityWindow {
	if len(data) == 0 {
		return nil
	}

	var items []map[string]interface{}
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&items); err != nil {
		return nil
	}

	windows := make([]AvailabilityWindow, 0, len(items))
	for _, item := range items {
		day, ok1 := utils.CoerceFloat(item["day"])
		start, ok2 := utils.CoerceFloat(item["startHour"])
		end, ok3 := utils.CoerceFloat(item["endHour"])
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		windows = append(windows, AvailabilityWindow{
			Day:       int(day),
			StartHour: int(start),
			EndHour:   int(end),
		})
	}
	return windows
}
