package errors

import "fmt"

var (
	ErrUserNotFound  = fmt.Errorf("user not found")
	ErrGroupNotFound = fmt.Errorf("group not found")
	ErrCallNotFound  = fmt.Errorf("call not found")

	ErrNotGroupMember     = fmt.Errorf("forbidden: not a group member")
	ErrNotCallRecipient   = fmt.Errorf("forbidden: not the call recipient")
	ErrNotCallParticipant = fmt.Errorf("forbidden: not a call participant")
	ErrNotCallInitiator   = fmt.Errorf("forbidden: not the call initiator")
)
