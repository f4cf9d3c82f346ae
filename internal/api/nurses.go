package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/HamdySalah/carelink/internal/model"
)

// NearbyNurses returns approved nurses within radiusKm of the given point,
// nearest first.
func (c *Client) NearbyNurses(ctx context.Context, lat, lng, radiusKm float64) ([]model.NurseProfile, error) {
	v := url.Values{}
	v.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	v.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	v.Set("radius", strconv.FormatFloat(radiusKm, 'f', -1, 64))

	var out []model.NurseProfile
	if err := c.get(ctx, "/nurses/nearby"+query(v), &out); err != nil {
		return nil, err
	}
	return out, nil
}
