package validate

import (
	"strings"
	"testing"
)

func TestRulesReturnAndAccumulate(t *testing.T) {
	v := New()
	if v.Required("  ", "Name") {
		t.Fatalf("whitespace must fail Required")
	}
	if !v.Required("x", "Name") {
		t.Fatalf("non-empty must pass Required")
	}
	if v.Email("not-an-email") {
		t.Fatalf("expected invalid email")
	}
	if !v.Email("a@example.com") {
		t.Fatalf("expected valid email")
	}
	if v.Password("12345", 0) || !v.Password("123456", 0) {
		t.Fatalf("default password minimum is 6")
	}
	if v.Username("ab", 0) || !v.Username("abc", 0) {
		t.Fatalf("default username minimum is 3")
	}
	if v.PasswordsMatch("a", "b") {
		t.Fatalf("expected mismatch")
	}
	if got := len(v.Errors()); got != 5 {
		t.Fatalf("expected 5 accumulated errors, got %d: %v", got, v.Errors())
	}
	if v.FirstError() != "Name is required" {
		t.Fatalf("unexpected first error %q", v.FirstError())
	}
}

func TestValidateRegistrationCollectsEverything(t *testing.T) {
	v := New()
	if v.ValidateRegistration("ab", "bad", "123", "456") {
		t.Fatalf("expected failure")
	}
	errs := v.Errors()
	if len(errs) != 4 {
		t.Fatalf("expected every rule to report, got %v", errs)
	}

	if !v.ValidateRegistration("alice", "alice@example.com", "secret1", "secret1") {
		t.Fatalf("expected success, got %v", v.Errors())
	}
	if v.HasErrors() {
		t.Fatalf("composite validation must reset previous errors")
	}
}

func TestValidateRegistrationRequiredMessages(t *testing.T) {
	v := New()
	v.ValidateRegistration("", "", "", "")
	got := v.ErrorsAsString("|")
	for _, want := range []string{"Username is required", "Email is required", "Password is required"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestPasswordMaximumCountsBytes(t *testing.T) {
	v := New()
	if !v.Password(strings.Repeat("a", MaxPasswordBytes), 0) {
		t.Fatalf("72 bytes must pass, got %v", v.Errors())
	}
	if v.Password(strings.Repeat("a", MaxPasswordBytes+1), 0) {
		t.Fatalf("73 bytes must fail")
	}
	// 25 runes of three bytes each: few characters, too many bytes.
	if v.Password(strings.Repeat("€", 25), 0) {
		t.Fatalf("multi-byte password over 72 bytes must fail")
	}
	if !strings.Contains(v.FirstError(), "at most 72 bytes") {
		t.Fatalf("unexpected message %q", v.FirstError())
	}

	long := strings.Repeat("a", MaxPasswordBytes+1)
	if v.ValidateRegistration("alice", "alice@example.com", long, long) {
		t.Fatalf("registration must reject an over-long password")
	}
}

func TestValidateLogin(t *testing.T) {
	v := New()
	if v.ValidateLogin("", "") {
		t.Fatalf("expected failure")
	}
	if len(v.Errors()) != 2 {
		t.Fatalf("expected two errors, got %v", v.Errors())
	}
	if !v.ValidateLogin("alice", "pw") {
		t.Fatalf("expected success")
	}
}

func TestValidateProfile(t *testing.T) {
	cases := []struct {
		name string
		in   ProfileInput
		want string
	}{
		{"age too high", ProfileInput{Email: "a@example.com", Age: "200"}, "valid age"},
		{"age zero", ProfileInput{Email: "a@example.com", Age: "0"}, "valid age"},
		{"age not numeric", ProfileInput{Email: "a@example.com", Age: "old"}, "valid age"},
		{"fullname too long", ProfileInput{Email: "a@example.com", Fullname: strings.Repeat("x", 101)}, "Full name"},
		{"bad email", ProfileInput{Email: "nope"}, "valid email"},
		{"bad linkedin", ProfileInput{Email: "a@example.com", LinkedIn: "linkedin"}, "LinkedIn"},
		{"bad github", ProfileInput{Email: "a@example.com", GitHub: "github dot com"}, "GitHub"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := New()
			if v.ValidateProfile(tc.in) {
				t.Fatalf("expected failure")
			}
			if !strings.Contains(v.ErrorsAsString("; "), tc.want) {
				t.Fatalf("expected %q in %q", tc.want, v.ErrorsAsString("; "))
			}
		})
	}

	v := New()
	ok := v.ValidateProfile(ProfileInput{
		Fullname: strings.Repeat("x", 100),
		Email:    "a@example.com",
		Age:      "150",
		LinkedIn: "https://linkedin.com/in/alice",
		GitHub:   "https://github.com/alice",
	})
	if !ok {
		t.Fatalf("expected valid profile, got %v", v.Errors())
	}
}

func TestErrorsReturnsCopy(t *testing.T) {
	v := New()
	v.Required("", "A")
	errs := v.Errors()
	errs[0] = "changed"
	if v.FirstError() != "A is required" {
		t.Fatalf("Errors must not expose internal slice")
	}
}
