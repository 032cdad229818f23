package repository

import (
	"vtube-go/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockChannel 在事务内对频道行加排他锁（SELECT ... FOR UPDATE），
// 同一频道上的切换操作因此串行执行；频道不存在时返回 gorm.ErrRecordNotFound
func lockChannel(tx *gorm.DB, id string) error {
	var channel model.Channel
	return tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id").Where("id = ?", id).Take(&channel).Error
}

// lockVideo 同 lockChannel，作用于视频行
func lockVideo(tx *gorm.DB, id string) (*model.Video, error) {
	var video model.Video
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "channel_id").Where("id = ?", id).Take(&video).Error
	if err != nil {
		return nil, err
	}
	return &video, nil
}
