package apierrors

// Message keys used by the transport layer itself. Service errors carry
// their own keys.
const (
	MsgInternal         = "internalError"
	MsgEndpointNotFound = "endpointNotFound"
	MsgTokenMissing     = "tokenMissing"
	MsgInvalidBody      = "invalidBody"
	MsgInvalidID        = "invalidID"
)
