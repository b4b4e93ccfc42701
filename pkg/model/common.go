// Package model 定义排班引擎的核心数据模型
package model

import (
	"time"

	"github.com/google/uuid"
)

// JSONMap 用于存储 JSONB 数据
type JSONMap map[string]interface{}

// BaseModel 基础模型（包含通用字段），用于需要持久化的实体
type BaseModel struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// NewBaseModel 创建新的基础模型
func NewBaseModel() BaseModel {
	now := time.Now()
	return BaseModel{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Mode 排班运行模式
type Mode string

const (
	ModeIndividual Mode = "individual"
	ModeTeam       Mode = "team"
)

// Valid 校验模式取值是否合法
func (m Mode) Valid() bool {
	return m == ModeIndividual || m == ModeTeam
}
