package consts

const (
	MimePrefixImage    = "image/"
	DefaultContentType = "image/jpeg"
	MimeSVG            = "image/svg+xml"
)

// 鉴权角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// gin.Context 中的 Key
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
	CtxRoles  = "roles"
	CtxToken  = "token"
)

// 内容长度上限 (按字符计)
const (
	PostTitleMax     = 200
	PostContentMax   = 2000
	PostAuthorMax    = 100
	CommentMax       = 1000
	MaxImageBytes    = 10 << 20
	ProfilePostLimit = 20
	UserListLimit    = 50
)

// 公开动态分页
const (
	DefaultPage      = 1
	DefaultPageLimit = 5
	MaxPageLimit     = 50
)
