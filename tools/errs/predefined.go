package errs

// Error codes grouped by class: 1xxx auth, 2xxx request, 3xxx resource,
// 5xxx internal. Code 0 is reserved for success envelopes.
var (
	ErrTokenInvalid   = NewCodeError(1001, "invalid token")
	ErrTokenExpired   = NewCodeError(1002, "token expired")
	ErrPasswordWrong  = NewCodeError(1003, "wrong account or password")
	ErrPermissionDeny = NewCodeError(1004, "permission denied")
	ErrNotRoomMember  = NewCodeError(1005, "not a member of this room")
	ErrArgs           = NewCodeError(2001, "invalid argument")
	ErrDuplicateUser  = NewCodeError(2002, "username already taken")
	ErrRecordNotFound = NewCodeError(3001, "record not found")
	ErrRoomNotFound   = NewCodeError(3002, "room not found")
	ErrStreamNotLive  = NewCodeError(3003, "stream is not live")
	ErrInternalServer = NewCodeError(5001, "internal server error")
	ErrDatabase       = NewCodeError(5002, "database error")
)
