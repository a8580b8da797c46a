package consts

const (
	TokenRevokedKey = "auth:revoked:"
)
