package usecase

import "app/internal/domain/model"

// Actor は「いま誰が呼んでいるか」。
// ambientなセッション状態を持たず、全Usecase呼び出しに明示的に渡す。
type Actor struct {
	UserID   int64
	Username string
	Role     model.Role
}

func (a Actor) IsOwner() bool {
	return a.Role == model.RoleOwner
}

func (a Actor) IsAdmin() bool {
	return a.Role.CanManageUsers()
}

// viewerは読み取り専用
func (a Actor) CanWrite() bool {
	return a.IsAdmin()
}
