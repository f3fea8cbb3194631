package domain

import (
	"testing"
	"time"
)

func TestPhone_FullAndEqual(t *testing.T) {
	a := Phone{ICC: "+1", NSN: "5551234"}
	b := Phone{ICC: "+1", NSN: "5551234"}
	c := Phone{ICC: "+44", NSN: "5551234"}

	if a.Full() != "+15551234" {
		t.Errorf("Full() = %q, want +15551234", a.Full())
	}
	if !a.Equal(b) {
		t.Error("identical phones not equal")
	}
	if a.Equal(c) {
		t.Error("different ICCs compare equal")
	}
}

func TestNormalizePurpose(t *testing.T) {
	tests := []struct {
		in   string
		want Purpose
	}{
		{"email", PurposeEmail},
		{"phone", PurposePhone},
		{"password", PurposePassword},
		{" Phone ", PurposePhone},
		{"PASSWORD", PurposePassword},
		{"", PurposeEmail},
		{"something-else", PurposeEmail},
	}
	for _, tt := range tests {
		if got := NormalizePurpose(tt.in); got != tt.want {
			t.Errorf("NormalizePurpose(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRoles(t *testing.T) {
	if DefaultRole() != RoleUser {
		t.Errorf("DefaultRole() = %q, want user", DefaultRole())
	}
	for _, r := range SupportedRoles {
		if !ValidRole(r) {
			t.Errorf("supported role %q reported invalid", r)
		}
	}
	if ValidRole(Role("owner")) {
		t.Error("unknown role reported valid")
	}
	if ValidRole(Role("")) {
		t.Error("empty role reported valid")
	}
}

func TestVerificationSlot_Armed(t *testing.T) {
	if (VerificationSlot{}).Armed() {
		t.Error("zero slot reports armed")
	}
	if !(VerificationSlot{Code: "1234"}).Armed() {
		t.Error("slot with a code reports unarmed")
	}
}

func TestAccount_Slots(t *testing.T) {
	a := &Account{}

	// Reading from a nil map is defined and returns the zero slot.
	if a.Slot(PurposeEmail).Armed() {
		t.Error("zero account has an armed slot")
	}

	slot := VerificationSlot{Code: "1234", ExpiresAt: time.Now()}
	a.SetSlot(PurposeEmail, slot)
	if a.Slot(PurposeEmail) != slot {
		t.Error("slot did not round-trip")
	}
	if a.Slot(PurposePhone).Armed() {
		t.Error("setting one slot armed another")
	}
}

func TestAccount_VerifiedFlags(t *testing.T) {
	a := &Account{}

	a.SetVerified(PurposeEmail, true)
	if !a.Verified(PurposeEmail) || a.Verified(PurposePhone) {
		t.Error("email flag did not flip independently")
	}

	a.SetVerified(PurposePhone, true)
	if !a.Verified(PurposePhone) {
		t.Error("phone flag did not flip")
	}

	// The password purpose has no flag.
	a.SetVerified(PurposePassword, true)
	if a.Verified(PurposePassword) {
		t.Error("password purpose reports a verified flag")
	}
}
