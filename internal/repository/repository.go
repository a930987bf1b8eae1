package repository

import "go.uber.org/zap"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	Planner PlannerRepository
}

// NewRepository 基于存储后端创建 Repository 聚合
func NewRepository(backend Backend, logger *zap.Logger) *Repository {
	return &Repository{
		Planner: NewPlannerRepo(backend, logger),
	}
}
