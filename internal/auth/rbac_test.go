package auth

import "testing"

func TestNormalizeRole(t *testing.T) {
	cases := map[string]Role{
		"admin":       RoleAdmin,
		" SuperAdmin": RoleSuperAdmin,
		"user":        RoleUser,
		"":            RoleUser,
		"root":        RoleUser,
	}
	for in, want := range cases {
		if got := NormalizeRole(in); got != want {
			t.Fatalf("NormalizeRole(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsAdmin(t *testing.T) {
	if !IsAdmin("admin") || !IsAdmin("superadmin") {
		t.Fatal("expected organizer roles to be admin")
	}
	if IsAdmin("user") {
		t.Fatal("user must not be admin")
	}
	if HasRole("admin") {
		t.Fatal("HasRole without allowed roles must be false")
	}
}
