package proto

// ErrorCode is the u32 result code carried in every TaskReply and
// auth reply envelope. The wider catalog belongs to individual
// service handlers; this package fixes only the subset the core
// itself ever produces.
type ErrorCode uint32

const (
	NoError              ErrorCode = 0
	AccessDenied         ErrorCode = 1
	AuthIllegalOperation ErrorCode = 2
	ServiceNotAvailable  ErrorCode = 3
	PermissionDenied     ErrorCode = 4
	AuthNoError          ErrorCode = 100
)
