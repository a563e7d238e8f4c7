package model

import (
	"errors"
	"testing"
)

func TestUpdateStatusDataValidate(t *testing.T) {
	cases := []struct {
		name string
		data UpdateStatusData
		want error
	}{
		{"reject without reason", UpdateStatusData{Status: StatusRejected}, ErrRejectionReasonRequired},
		{"reject with blank reason", UpdateStatusData{Status: StatusRejected, RejectionReason: "   "}, ErrRejectionReasonRequired},
		{"reject with reason", UpdateStatusData{Status: StatusRejected, RejectionReason: "incomplete documents"}, nil},
		{"approve without amount", UpdateStatusData{Status: StatusApproved}, ErrApprovedAmountRequired},
		{"approve with negative amount", UpdateStatusData{Status: StatusApproved, ApprovedAmount: -100}, ErrApprovedAmountRequired},
		{"approve with amount", UpdateStatusData{Status: StatusApproved, ApprovedAmount: 450000}, nil},
		{"reviewing needs neither", UpdateStatusData{Status: StatusReviewing}, nil},
		{"completed needs neither", UpdateStatusData{Status: StatusCompleted}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.data.Validate()
			if !errors.Is(err, tc.want) {
				t.Fatalf("Validate() = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestUserIsAdmin(t *testing.T) {
	if (User{Role: RoleUser}).IsAdmin() {
		t.Fatalf("user role reported as admin")
	}
	if !(User{Role: RoleAdmin}).IsAdmin() {
		t.Fatalf("admin role not reported as admin")
	}
}
