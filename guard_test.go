package lrs_test

import (
	"testing"

	lrs "github.com/goliatone/lrs-client"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate_PendingWhileLoading(t *testing.T) {
	decision := lrs.Evaluate(lrs.Snapshot{Loading: true}, lrs.GuardConfig{})

	assert.Equal(t, lrs.GuardPending, decision.State)
	assert.Empty(t, decision.Target)
	assert.False(t, decision.Authorized())
}

func TestEvaluate_RedirectsWithoutCredential(t *testing.T) {
	// regardless of the allow list, no credential means the login view
	allowLists := [][]lrs.Role{
		nil,
		{lrs.RoleStudent},
		{lrs.RoleLecturer, lrs.RoleSuperAdmin},
	}

	for _, allowed := range allowLists {
		decision := lrs.Evaluate(lrs.Snapshot{}, lrs.GuardConfig{AllowedRoles: allowed})

		assert.Equal(t, lrs.GuardRedirecting, decision.State)
		assert.Equal(t, lrs.DefaultLoginPath, decision.Target)
		assert.True(t, lrs.IsUnauthenticatedError(decision.Reason))
	}
}

func TestEvaluate_RoleAllowList(t *testing.T) {
	snapshotFor := func(role lrs.Role) lrs.Snapshot {
		return lrs.Snapshot{
			Identity:   &lrs.Identity{ID: "u1", Email: "u@uni.test", Role: role},
			Credential: "header.payload.sig",
		}
	}

	tests := []struct {
		name       string
		role       lrs.Role
		allowed    []lrs.Role
		authorized bool
	}{
		{name: "empty allow list admits student", role: lrs.RoleStudent, authorized: true},
		{name: "empty allow list admits lecturer", role: lrs.RoleLecturer, authorized: true},
		{name: "member of allow list", role: lrs.RoleLecturer, allowed: []lrs.Role{lrs.RoleLecturer}, authorized: true},
		{name: "member of larger allow list", role: lrs.RoleSuperAdmin, allowed: []lrs.Role{lrs.RoleLecturer, lrs.RoleSuperAdmin}, authorized: true},
		{name: "not a member", role: lrs.RoleLecturer, allowed: []lrs.Role{lrs.RoleSuperAdmin}, authorized: false},
		{name: "student kept out of lecturer pages", role: lrs.RoleStudent, allowed: []lrs.Role{lrs.RoleLecturer}, authorized: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			decision := lrs.Evaluate(snapshotFor(tc.role), lrs.GuardConfig{AllowedRoles: tc.allowed})

			if tc.authorized {
				assert.Equal(t, lrs.GuardAuthorized, decision.State)
				assert.True(t, decision.Authorized())
				return
			}

			assert.Equal(t, lrs.GuardRedirecting, decision.State)
			assert.Equal(t, lrs.DefaultUnauthorizedPath, decision.Target)
			assert.True(t, lrs.IsUnauthorizedError(decision.Reason))
		})
	}
}

func TestEvaluate_CustomTargets(t *testing.T) {
	cfg := lrs.GuardConfig{
		AllowedRoles:     []lrs.Role{lrs.RoleSuperAdmin},
		LoginPath:        "/signin",
		UnauthorizedPath: "/forbidden",
	}

	decision := lrs.Evaluate(lrs.Snapshot{}, cfg)
	assert.Equal(t, "/signin", decision.Target)

	decision = lrs.Evaluate(lrs.Snapshot{
		Identity:   &lrs.Identity{ID: "u1", Email: "u@uni.test", Role: lrs.RoleStudent},
		Credential: "header.payload.sig",
	}, cfg)
	assert.Equal(t, "/forbidden", decision.Target)
}

func TestGuard_ScenarioInitializeEmptyThenRedirect(t *testing.T) {
	// Scenario A: empty credential store, initialize, guard with no allow list
	store := lrs.NewStore(lrs.NewMemoryCredentialStore())
	store.Initialize()

	guard := lrs.NewGuard(store, lrs.GuardConfig{}, nil)
	defer guard.Close()

	decision := guard.Decision()
	assert.Equal(t, lrs.GuardRedirecting, decision.State)
	assert.Equal(t, lrs.DefaultLoginPath, decision.Target)
}

func TestGuard_ScenarioLecturerAllowLists(t *testing.T) {
	// Scenario B: stored lecturer token, guard outcomes depend on allow list
	creds := lrs.NewMemoryCredentialStore()
	require.NoError(t, creds.Set(lecturerCredential(t)))

	store := lrs.NewStore(creds)
	store.Initialize()

	allowed := lrs.NewGuard(store, lrs.GuardConfig{AllowedRoles: []lrs.Role{lrs.RoleLecturer}}, nil)
	defer allowed.Close()
	assert.Equal(t, lrs.GuardAuthorized, allowed.Decision().State)

	denied := lrs.NewGuard(store, lrs.GuardConfig{AllowedRoles: []lrs.Role{lrs.RoleSuperAdmin}}, nil)
	defer denied.Close()
	assert.Equal(t, lrs.GuardRedirecting, denied.Decision().State)
	assert.Equal(t, lrs.DefaultUnauthorizedPath, denied.Decision().Target)
}

func TestGuard_LogoutWhileMounted(t *testing.T) {
	// Scenario D: an authorized guard re-evaluates when the session ends,
	// without any external remount
	credential := studentCredential(t)
	creds := lrs.NewMemoryCredentialStore()
	require.NoError(t, creds.Set(credential))

	store := lrs.NewStore(creds)
	store.Initialize()

	var transitions []lrs.GuardDecision
	guard := lrs.NewGuard(store, lrs.GuardConfig{AllowedRoles: []lrs.Role{lrs.RoleStudent}}, func(d lrs.GuardDecision) {
		transitions = append(transitions, d)
	})
	defer guard.Close()

	require.Equal(t, lrs.GuardAuthorized, guard.Decision().State)

	store.Logout()

	decision := guard.Decision()
	assert.Equal(t, lrs.GuardRedirecting, decision.State)
	assert.Equal(t, lrs.DefaultLoginPath, decision.Target)

	require.Len(t, transitions, 2)
	assert.Equal(t, lrs.GuardAuthorized, transitions[0].State)
	assert.Equal(t, lrs.GuardRedirecting, transitions[1].State)
}

func TestGuard_RedirectingIsTerminal(t *testing.T) {
	store := lrs.NewStore(lrs.NewMemoryCredentialStore())
	store.Initialize()

	calls := 0
	guard := lrs.NewGuard(store, lrs.GuardConfig{}, func(lrs.GuardDecision) { calls++ })
	defer guard.Close()

	require.Equal(t, lrs.GuardRedirecting, guard.Decision().State)
	require.Equal(t, 1, calls)

	// a login after the guard decided to redirect does not resurrect it
	require.NoError(t, store.Login(studentCredential(t)))

	assert.Equal(t, lrs.GuardRedirecting, guard.Decision().State)
	assert.Equal(t, 1, calls)
}

func TestGuard_CloseStopsUpdates(t *testing.T) {
	creds := lrs.NewMemoryCredentialStore()
	require.NoError(t, creds.Set(studentCredential(t)))

	store := lrs.NewStore(creds)
	store.Initialize()

	guard := lrs.NewGuard(store, lrs.GuardConfig{}, nil)
	require.Equal(t, lrs.GuardAuthorized, guard.Decision().State)

	guard.Close()
	store.Logout()

	assert.Equal(t, lrs.GuardAuthorized, guard.Decision().State)
}
