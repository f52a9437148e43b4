package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yagomarket/internal/types"
)

type fakeSource struct {
	current     json.RawMessage
	currentErr  error
	byUser      json.RawMessage
	byUserErr   error
	all         json.RawMessage
	allErr      error
	saved       *types.Profile
	routesTried []string
}

func (f *fakeSource) CurrentProfile(ctx context.Context) (json.RawMessage, error) {
	f.routesTried = append(f.routesTried, "current")
	return f.current, f.currentErr
}

func (f *fakeSource) ProfileByUser(ctx context.Context, userID int) (json.RawMessage, error) {
	f.routesTried = append(f.routesTried, "byUser")
	return f.byUser, f.byUserErr
}

func (f *fakeSource) Profiles(ctx context.Context) (json.RawMessage, error) {
	f.routesTried = append(f.routesTried, "all")
	return f.all, f.allErr
}

func (f *fakeSource) SaveProfile(ctx context.Context, p types.Profile) error {
	f.saved = &p
	return nil
}

func TestExtract_AllEnvelopeShapes(t *testing.T) {
	want := types.Profile{UserID: 7, Phone: "(11) 99999-0000", City: "São Paulo"}

	cases := []struct {
		name string
		raw  string
	}{
		{"wrapped", `{"profile":{"user_id":7,"phone":"(11) 99999-0000","city":"São Paulo"}}`},
		{"data array", `{"data":[{"user_id":3,"phone":"x"},{"user_id":7,"phone":"(11) 99999-0000","city":"São Paulo"}]}`},
		{"data object", `{"data":{"user_id":7,"phone":"(11) 99999-0000","city":"São Paulo"}}`},
		{"bare array", `[{"user_id":7,"phone":"(11) 99999-0000","city":"São Paulo"}]`},
		{"bare object", `{"user_id":7,"phone":"(11) 99999-0000","city":"São Paulo"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := Extract(json.RawMessage(tc.raw), 7)
			require.True(t, ok)
			assert.Equal(t, want.Phone, got.Phone)
			assert.Equal(t, want.City, got.City)
		})
	}
}

func TestExtract_WrongUserIsNotFound(t *testing.T) {
	_, ok := Extract(json.RawMessage(`{"data":[{"user_id":3,"phone":"x"}]}`), 7)
	assert.False(t, ok)

	_, ok = Extract(json.RawMessage(`{"user_id":3,"phone":"x"}`), 7)
	assert.False(t, ok)
}

func TestService_FetchWalksFallbackChain(t *testing.T) {
	src := &fakeSource{
		currentErr: errors.New("404 route missing"),
		byUserErr:  errors.New("404 route missing"),
		all:        json.RawMessage(`{"data":[{"user_id":7,"phone":"(11) 98888-7777"}]}`),
	}
	svc := NewService(src, nil)

	p, ok := svc.Fetch(context.Background(), 7)
	require.True(t, ok)
	assert.Equal(t, "(11) 98888-7777", p.Phone)
	assert.Equal(t, []string{"current", "byUser", "all"}, src.routesTried)
}

func TestService_FetchStopsAtFirstUsableRoute(t *testing.T) {
	src := &fakeSource{
		current: json.RawMessage(`{"profile":{"user_id":7,"phone":"(11) 90000-0000"}}`),
	}
	svc := NewService(src, nil)

	_, ok := svc.Fetch(context.Background(), 7)
	require.True(t, ok)
	assert.Equal(t, []string{"current"}, src.routesTried)
}

func TestService_NoProfileIsAValidState(t *testing.T) {
	src := &fakeSource{
		currentErr: errors.New("down"),
		byUserErr:  errors.New("down"),
		allErr:     errors.New("down"),
	}
	svc := NewService(src, nil)

	_, ok := svc.Fetch(context.Background(), 7)
	assert.False(t, ok, "exhausted chain means no profile yet, not a crash")
}

func TestService_SaveStampsOwningUser(t *testing.T) {
	src := &fakeSource{}
	svc := NewService(src, nil)

	err := svc.Save(context.Background(), 7, types.Profile{Phone: "(11) 91111-2222", City: "Campinas"})
	require.NoError(t, err)
	require.NotNil(t, src.saved)
	assert.Equal(t, 7, src.saved.UserID)
	assert.Equal(t, "Campinas", src.saved.City)
}
