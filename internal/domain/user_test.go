package domain

import "testing"

func TestAuthorize(t *testing.T) {
	cases := []struct {
		name    string
		role    Role
		allowed []Role
		want    bool
	}{
		{name: "admin in admin-only", role: RoleAdmin, allowed: []Role{RoleAdmin}, want: true},
		{name: "donor in admin-only", role: RoleDonor, allowed: []Role{RoleAdmin}, want: false},
		{name: "volunteer in triage set", role: RoleVolunteer, allowed: []Role{RoleAdmin, RoleVolunteer}, want: true},
		{name: "donor in triage set", role: RoleDonor, allowed: []Role{RoleAdmin, RoleVolunteer}, want: false},
		{name: "empty allowed set", role: RoleAdmin, allowed: nil, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Authorize(tc.role, tc.allowed...); got != tc.want {
				t.Fatalf("Authorize(%s, %v) = %v, want %v", tc.role, tc.allowed, got, tc.want)
			}
		})
	}
}

func TestValidRole(t *testing.T) {
	for raw, want := range map[string]bool{
		"donor":     true,
		"volunteer": true,
		"admin":     true,
		"":          false,
		"superuser": false,
	} {
		if got := ValidRole(raw); got != want {
			t.Errorf("ValidRole(%q) = %v, want %v", raw, got, want)
		}
	}
}
