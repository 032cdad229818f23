package service

// OwnedResource 可被所有者修改/删除的资源：频道（所有者）、视频（上传者）、评论（作者）
type OwnedResource interface {
	ResourceOwner() string
}

// CanMutate 只有资源所有者本人可以修改或删除
func CanMutate(actorID string, res OwnedResource) bool {
	return actorID != "" && actorID == res.ResourceOwner()
}

func ensureCanMutate(actorID string, res OwnedResource) error {
	if !CanMutate(actorID, res) {
		return ErrNotOwner
	}
	return nil
}
