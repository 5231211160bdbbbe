package service

import (
	"taskloop_backend/internal/model"
)

// LessonStatus 课时的派生状态，解锁与否从不落库，每次读取时计算
type LessonStatus struct {
	model.Lesson
	IsCompleted bool `json:"isCompleted"`
	IsUnlocked  bool `json:"isUnlocked"`
}

// ComputeLessonStatus 顺序解锁计算。
// 入参 lessons 必须已按 (章节顺序, 课时顺序) 展平排序。
// 第一个课时永远解锁；第 i 个课时解锁当且仅当前面所有课时都已完成（完整前缀，
// 不是只看前一个）。纯函数，空课时列表返回空结果。
func ComputeLessonStatus(lessons []model.Lesson, completedIDs []uint) []LessonStatus {
	completed := make(map[uint]bool, len(completedIDs))
	for _, id := range completedIDs {
		completed[id] = true
	}

	statuses := make([]LessonStatus, 0, len(lessons))
	prefixComplete := true
	for i, lesson := range lessons {
		unlocked := i == 0 || prefixComplete
		done := completed[lesson.ID]
		statuses = append(statuses, LessonStatus{
			Lesson:      lesson,
			IsCompleted: done,
			IsUnlocked:  unlocked,
		})
		if !done {
			prefixComplete = false
		}
	}
	return statuses
}
