package lrs

// GuardState is the route guard's state for one mounted protected view.
type GuardState string

const (
	// GuardPending renders a neutral loading indicator; no redirect, no children
	GuardPending GuardState = "pending"
	// GuardRedirecting unmounts the guarded subtree and navigates to the target
	GuardRedirecting GuardState = "redirecting"
	// GuardAuthorized renders the protected children
	GuardAuthorized GuardState = "authorized"
)

// Default redirect targets for guard decisions.
const (
	DefaultLoginPath        = "/login"
	DefaultUnauthorizedPath = "/unauthorized"
)

// GuardConfig configures a route guard. An empty AllowedRoles list means any
// authenticated role is sufficient.
type GuardConfig struct {
	AllowedRoles     []Role
	LoginPath        string
	UnauthorizedPath string
}

func (c GuardConfig) loginPath() string {
	if c.LoginPath == "" {
		return DefaultLoginPath
	}
	return c.LoginPath
}

func (c GuardConfig) unauthorizedPath() string {
	if c.UnauthorizedPath == "" {
		return DefaultUnauthorizedPath
	}
	return c.UnauthorizedPath
}

// GuardDecision is the outcome of evaluating a session against a guard
// configuration. Target and Reason are set only when redirecting.
type GuardDecision struct {
	State  GuardState
	Target string
	Reason error
}

// Authorized reports whether the guarded children should render
func (d GuardDecision) Authorized() bool {
	return d.State == GuardAuthorized
}

// Evaluate is the pure transition rule of the guard state machine. It decides,
// it does not navigate; performing the redirect is the caller's effect.
//
//  1. While the session is loading, remain Pending.
//  2. Once loaded, no credential means Redirecting to the login view.
//  3. A role outside a non empty allow list means Redirecting to the
//     unauthorized view.
//  4. Otherwise Authorized.
func Evaluate(snap Snapshot, cfg GuardConfig) GuardDecision {
	if snap.Loading {
		return GuardDecision{State: GuardPending}
	}

	if !snap.Authenticated() {
		return GuardDecision{
			State:  GuardRedirecting,
			Target: cfg.loginPath(),
			Reason: ErrUnauthenticated,
		}
	}

	if len(cfg.AllowedRoles) > 0 && !snap.Identity.Role.OneOf(cfg.AllowedRoles...) {
		return GuardDecision{
			State:  GuardRedirecting,
			Target: cfg.unauthorizedPath(),
			Reason: ErrUnauthorized,
		}
	}

	return GuardDecision{State: GuardAuthorized}
}

// Guard binds the transition rule to a session store for the lifetime of one
// mounted protected view. The decision is re-evaluated on every session
// change, so a session that ends while the view is mounted (for example a
// logout triggered elsewhere) retroactively moves an Authorized guard to
// Redirecting. Redirecting is terminal: once reached, later session changes
// are ignored because the guarded subtree is gone.
type Guard struct {
	cfg         GuardConfig
	onChange    func(GuardDecision)
	unsubscribe func()

	// decision access is serialized by the store's notification path plus
	// the store mutex held while subscribing
	decision GuardDecision
}

// NewGuard evaluates the store's current session and subscribes for changes.
// onChange fires on every transition to a new state, including the initial
// evaluation; it may be nil. Call Close when the protected view unmounts.
func NewGuard(store *Store, cfg GuardConfig, onChange func(GuardDecision)) *Guard {
	g := &Guard{
		cfg:      cfg,
		onChange: onChange,
		decision: GuardDecision{State: GuardPending},
	}

	g.unsubscribe = store.Subscribe(func(snap Snapshot) {
		g.apply(Evaluate(snap, cfg))
	})

	g.apply(Evaluate(store.Current(), cfg))

	return g
}

// Decision returns the guard's current decision
func (g *Guard) Decision() GuardDecision {
	return g.decision
}

// Close detaches the guard from the store; the mounted view is gone.
func (g *Guard) Close() {
	if g.unsubscribe != nil {
		g.unsubscribe()
		g.unsubscribe = nil
	}
}

func (g *Guard) apply(next GuardDecision) {
	if g.decision.State == GuardRedirecting {
		return
	}

	if g.decision.State == next.State && g.decision.Target == next.Target {
		return
	}

	g.decision = next
	if g.onChange != nil {
		g.onChange(next)
	}
}
