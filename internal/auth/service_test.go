package auth

import "testing"

func TestPasswordIsHashedBeforeSaving(t *testing.T) {
	repo := NewInMemoryStaffRepository()
	service := NewService(repo)

	password := "Password@123"

	_, err := service.Register("Test Captain", "captain@example.com", password, RoleCaptain, "rest1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	staff := repo.staff["captain@example.com"]
	if staff == nil {
		t.Fatalf("staff not found")
	}

	if staff.Password == password {
		t.Fatalf("password was stored in plain text")
	}
}

func TestRegisterDefaultsToCaptain(t *testing.T) {
	service := NewService(NewInMemoryStaffRepository())

	staff, err := service.Register("Test", "t@example.com", "Password@123", "", "rest1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staff.Role != RoleCaptain {
		t.Fatalf("role = %q, want %q", staff.Role, RoleCaptain)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	service := NewService(NewInMemoryStaffRepository())

	if _, err := service.Register("Test", "t@example.com", "Password@123", "CHEF", "rest1"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLogin(t *testing.T) {
	service := NewService(NewInMemoryStaffRepository())

	if _, err := service.Register("Test", "t@example.com", "Password@123", RoleAdmin, "rest1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	staff, err := service.Login("t@example.com", "Password@123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if staff.Role != RoleAdmin {
		t.Fatalf("role = %q", staff.Role)
	}

	if _, err := service.Login("t@example.com", "wrong"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := service.Login("nobody@example.com", "Password@123"); err != ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
