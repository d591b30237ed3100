package authclient

// User is the public profile projection returned by the API.
type User struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
	Phone     string `json:"phone,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
}

// State is the observable session view. IsAuthenticated may be true before
// Hydrated: bootstrap trusts locally stored credentials first and confirms
// them against the server in the background. If confirmation fails the
// client logs out, which is how an expired session becomes visible.
type State struct {
	User            *User
	Token           string
	IsAuthenticated bool
	IsLoading       bool
	Hydrated        bool
	Err             error
}

// Decision is the outcome of evaluating a guarded route against the session
// state.
type Decision int

const (
	// DecisionLoading means authentication is still being established.
	DecisionLoading Decision = iota
	// DecisionRedirectLogin means the session is unauthenticated.
	DecisionRedirectLogin
	// DecisionRedirectHome means the user's role is not in the allowed set.
	DecisionRedirectHome
	// DecisionAllow means the guarded content may be shown.
	DecisionAllow
)

// GuardDecision decides whether a route guarded by allowedRoles may render.
// An empty allowedRoles set only requires authentication. Pure function of
// the state snapshot.
func GuardDecision(st State, allowedRoles ...string) Decision {
	if st.IsLoading {
		return DecisionLoading
	}
	if !st.IsAuthenticated {
		return DecisionRedirectLogin
	}
	if len(allowedRoles) == 0 {
		return DecisionAllow
	}
	if st.User == nil {
		return DecisionLoading
	}
	for _, role := range allowedRoles {
		if st.User.Role == role {
			return DecisionAllow
		}
	}
	return DecisionRedirectHome
}
