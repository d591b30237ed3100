package authclient

import "testing"

func TestGuardDecision(t *testing.T) {
	host := &User{ID: "u1", Role: "host"}
	guest := &User{ID: "u2", Role: "guest"}

	cases := []struct {
		name  string
		state State
		roles []string
		want  Decision
	}{
		{"loading", State{IsLoading: true}, nil, DecisionLoading},
		{"loading outranks authenticated", State{IsLoading: true, IsAuthenticated: true, User: host}, nil, DecisionLoading},
		{"unauthenticated", State{}, nil, DecisionRedirectLogin},
		{"unauthenticated host route", State{}, []string{"host"}, DecisionRedirectLogin},
		{"authenticated, no role requirement", State{IsAuthenticated: true, User: guest}, nil, DecisionAllow},
		{"host on host route", State{IsAuthenticated: true, User: host}, []string{"host", "admin"}, DecisionAllow},
		{"admin on host route", State{IsAuthenticated: true, User: &User{Role: "admin"}}, []string{"host", "admin"}, DecisionAllow},
		{"guest on host route", State{IsAuthenticated: true, User: guest}, []string{"host", "admin"}, DecisionRedirectHome},
		{"role required but user not loaded yet", State{IsAuthenticated: true}, []string{"host"}, DecisionLoading},
	}

	for _, tc := range cases {
		if got := GuardDecision(tc.state, tc.roles...); got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}
