package services

import "context"

// MemberGate answers whether a member may book at all. Identity and
// eligibility live in a collaborating system; this service only consumes
// the verdict.
type MemberGate interface {
	CanBook(ctx context.Context, userID uint) (bool, string)
}

// AllowAllGate admits every member. It is the default until a real
// eligibility backend is wired in.
type AllowAllGate struct{}

func (AllowAllGate) CanBook(ctx context.Context, userID uint) (bool, string) {
	return true, ""
}
