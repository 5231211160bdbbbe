package repository

import (
	"taskloop_backend/internal/model"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

func (r *CommentRepository) Create(comment *model.Comment) error {
	return r.DB.Create(comment).Error
}

func (r *CommentRepository) FindByCourse(courseID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.DB.Preload("User").
		Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}
