package handler

type ContextKey string

var (
	RoleCtxKey  ContextKey = "role"
	SubCtxKey   ContextKey = "sub"
	MyInfoCtx   ContextKey = "myInfo"
	UserInfoCtx ContextKey = "userInfo"
	GuardCtx    ContextKey = "guard"
	PropertyCtx ContextKey = "property"
	ServiceCtx  ContextKey = "service"
	ShiftCtx    ContextKey = "shift"
	NoteCtx     ContextKey = "note"
)
