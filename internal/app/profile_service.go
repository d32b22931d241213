package app

import (
	"context"

	"studentgigs/internal/common"
	"studentgigs/internal/domain/profile"
)

type ProfileService struct {
	students profile.StudentRepository
}

func NewProfileService(students profile.StudentRepository) *ProfileService {
	return &ProfileService{students: students}
}

func (s *ProfileService) GetStudent(ctx context.Context, userID common.UUID) (*profile.StudentProfile, error) {
	return s.students.GetByUserID(ctx, userID)
}

func (s *ProfileService) UpsertStudent(ctx context.Context, p profile.StudentProfile) (*profile.StudentProfile, error) {
	p.Normalize()
	return s.students.Upsert(ctx, p)
}
