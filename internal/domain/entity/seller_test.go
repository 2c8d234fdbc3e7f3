package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApprovalStatus_IsValid(t *testing.T) {
	assert.True(t, ApprovalPending.IsValid())
	assert.True(t, ApprovalApproved.IsValid())
	assert.True(t, ApprovalRejected.IsValid())
	assert.False(t, ApprovalStatus("bogus").IsValid())
	assert.False(t, ApprovalStatus("").IsValid())
}

func TestSellerProfile_ApprovalStateMachine(t *testing.T) {
	pending := &SellerProfile{ApprovalStatus: ApprovalPending}
	assert.False(t, pending.IsApproved())
	assert.True(t, pending.CanDecide())
	assert.False(t, pending.CanResubmit())
	assert.False(t, pending.CanDemote())

	approved := &SellerProfile{ApprovalStatus: ApprovalApproved}
	assert.True(t, approved.IsApproved())
	assert.False(t, approved.CanDecide())
	assert.False(t, approved.CanResubmit())
	assert.True(t, approved.CanDemote())

	rejected := &SellerProfile{ApprovalStatus: ApprovalRejected}
	assert.False(t, rejected.IsApproved())
	assert.False(t, rejected.CanDecide())
	assert.True(t, rejected.CanResubmit())
	assert.False(t, rejected.CanDemote())
}
