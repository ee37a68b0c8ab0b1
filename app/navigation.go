package app

import (
	"log/slog"
	"sync"
)

type Route string

const (
	RouteLoading   Route = "loading"
	RouteLogin     Route = "/login"
	RouteDashboard Route = "/dashboard"
)

// Navigation tracks the current route and tells the host about changes.
type Navigation struct {
	mu       sync.Mutex
	current  Route
	onChange func(Route)
}

func NewNavigation(onChange func(Route)) *Navigation {
	return &Navigation{current: RouteLoading, onChange: onChange}
}

func (n *Navigation) Current() Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Navigation) Navigate(to Route) {
	n.mu.Lock()
	changed := n.current != to
	n.current = to
	onChange := n.onChange
	n.mu.Unlock()

	if !changed {
		return
	}
	slog.Info("navigate", "route", to)
	if onChange != nil {
		onChange(to)
	}
}
