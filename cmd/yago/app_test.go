package main

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"

	"yagomarket/cmd/yago/ui"
	"yagomarket/internal/config"
	"yagomarket/internal/session"
	"yagomarket/internal/types"
)

func testAppDeps(t *testing.T) ui.Deps {
	t.Helper()
	sessions, err := session.NewAt(filepath.Join(t.TempDir(), "session.json"))
	if err != nil {
		t.Fatalf("session store: %v", err)
	}
	cfg := &config.Config{}
	cfg.Catalog.PageSize = 15
	cfg.Catalog.CategoryPerPage = 21
	cfg.Catalog.ImageConcurrency = 8
	return ui.Deps{
		Sessions: sessions,
		Cfg:      cfg,
		Logger:   zap.NewNop(),
		Styles:   ui.DefaultStyles(),
	}
}

func TestExpiredSessionDowngradesToAuth(t *testing.T) {
	deps := testAppDeps(t)
	if err := deps.Sessions.SetSession("stale-tok", types.User{ID: 1, Name: "Ana"}); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	m := newAppModel(deps)
	updated, _ := m.Update(ui.SessionExpiredMsg{})
	am, ok := updated.(appModel)
	if !ok {
		t.Fatalf("unexpected model type %T", updated)
	}

	if deps.Sessions.Authenticated() {
		t.Error("session must be cleared after a rejected token")
	}
	if am.route != ui.RouteAuth {
		t.Errorf("expected auth page, got route %d", am.route)
	}
	if len(am.back) != 0 {
		t.Error("back stack must be dropped on downgrade")
	}
}

func TestProtectedRoutesRedirectAnonymousUsers(t *testing.T) {
	m := newAppModel(testAppDeps(t))

	for _, to := range []ui.Route{ui.RouteCart, ui.RouteProfile, ui.RoutePublish} {
		updated, _ := m.Update(ui.NavigateMsg{To: to})
		am := updated.(appModel)
		if am.route != ui.RouteAuth {
			t.Errorf("route %d should redirect anonymous users to auth, got %d", to, am.route)
		}
	}
}
