// Package profile fetches and saves the user's contact info. Backend
// versions expose the profile under different routes and envelope shapes,
// so fetching walks a fallback chain and extraction tolerates all the
// shapes seen in the wild. A user without a profile is a valid state,
// shown as such, never an error.
package profile

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"yagomarket/internal/types"
)

// source is the slice of the API client the service needs.
type source interface {
	CurrentProfile(ctx context.Context) (json.RawMessage, error)
	ProfileByUser(ctx context.Context, userID int) (json.RawMessage, error)
	Profiles(ctx context.Context) (json.RawMessage, error)
	SaveProfile(ctx context.Context, p types.Profile) error
}

type Service struct {
	api    source
	logger *zap.Logger
}

func NewService(api source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger}
}

// Fetch looks up the contact profile for userID, trying the scoped route
// first, then the per-user route, then the full listing. The first route
// that answers with a usable profile wins; a fully exhausted chain means
// "no profile yet".
func (s *Service) Fetch(ctx context.Context, userID int) (types.Profile, bool) {
	attempts := []struct {
		name string
		get  func() (json.RawMessage, error)
	}{
		{"profile/current", func() (json.RawMessage, error) { return s.api.CurrentProfile(ctx) }},
		{"profiles/user", func() (json.RawMessage, error) { return s.api.ProfileByUser(ctx, userID) }},
		{"profiles", func() (json.RawMessage, error) { return s.api.Profiles(ctx) }},
	}

	for _, attempt := range attempts {
		raw, err := attempt.get()
		if err != nil {
			s.logger.Debug("profile route failed",
				zap.String("route", attempt.name),
				zap.Error(err))
			continue
		}
		if p, ok := Extract(raw, userID); ok {
			return p, true
		}
	}
	return types.Profile{}, false
}

// Save creates or updates the contact profile, stamping the owning user.
func (s *Service) Save(ctx context.Context, userID int, p types.Profile) error {
	p.UserID = userID
	return s.api.SaveProfile(ctx, p)
}

// Extract pulls the profile belonging to userID out of any of the
// envelope shapes the backend has used:
//
//	{"profile": {...}}   {"data": [...]}   {"data": {...}}   [...]   {...}
func Extract(raw json.RawMessage, userID int) (types.Profile, bool) {
	// {"profile": {...}}
	var wrapped struct {
		Profile *types.Profile `json:"profile"`
	}
	if err := json.Unmarshal(raw, &wrapped); err == nil && wrapped.Profile != nil {
		return *wrapped.Profile, true
	}

	// {"data": ...} with either an array or a single object
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		if p, ok := extractFlat(envelope.Data, userID); ok {
			return p, true
		}
	}

	return extractFlat(raw, userID)
}

// extractFlat handles a bare array or a bare object, matched by user_id.
func extractFlat(raw json.RawMessage, userID int) (types.Profile, bool) {
	var list []types.Profile
	if err := json.Unmarshal(raw, &list); err == nil {
		for _, p := range list {
			if p.UserID == userID {
				return p, true
			}
		}
		return types.Profile{}, false
	}

	var single types.Profile
	if err := json.Unmarshal(raw, &single); err == nil && single.UserID == userID {
		return single, true
	}
	return types.Profile{}, false
}
