package services

import (
	"pmp/internal/models"

	"gorm.io/gorm"
)

// Scope 数据可见范围
// All 为 true 表示不过滤（管理员）；否则只能看到 PropertyIDs 内的物业数据，
// 空列表表示什么都看不到（未分配物业的经理）
type Scope struct {
	All         bool
	PropertyIDs []uint
}

// AdminScope 全量范围
func AdminScope() *Scope {
	return &Scope{All: true}
}

// Allows 指定物业是否在范围内
func (s *Scope) Allows(propertyID uint) bool {
	if s.All {
		return true
	}
	for _, id := range s.PropertyIDs {
		if id == propertyID {
			return true
		}
	}
	return false
}

// ScopeProperties 对物业查询应用范围过滤
func ScopeProperties(db *gorm.DB, scope *Scope) *gorm.DB {
	if scope.All {
		return db
	}
	return db.Where("id IN ?", idsOrNone(scope.PropertyIDs))
}

// ScopeRooms 对房间查询应用范围过滤
func ScopeRooms(db *gorm.DB, scope *Scope) *gorm.DB {
	if scope.All {
		return db
	}
	return db.Where("property_id IN ?", idsOrNone(scope.PropertyIDs))
}

// ScopeResidents 对住户查询应用范围过滤（经房间关联到物业）
func ScopeResidents(db *gorm.DB, scope *Scope) *gorm.DB {
	if scope.All {
		return db
	}
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Room{}).Select("id").
		Where("property_id IN ?", idsOrNone(scope.PropertyIDs))
	return db.Where("room_id IN (?)", sub)
}

// ScopeContracts 对合同查询应用范围过滤（经住户、房间关联到物业）
func ScopeContracts(db *gorm.DB, scope *Scope) *gorm.DB {
	if scope.All {
		return db
	}
	rooms := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Room{}).Select("id").
		Where("property_id IN ?", idsOrNone(scope.PropertyIDs))
	residents := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Resident{}).Select("id").
		Where("room_id IN (?)", rooms)
	return db.Where("resident_id IN (?)", residents)
}

// ScopeRepairs 对维修查询应用范围过滤
// 未关联房间的维修记录只对管理员可见
func ScopeRepairs(db *gorm.DB, scope *Scope) *gorm.DB {
	if scope.All {
		return db
	}
	sub := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Room{}).Select("id").
		Where("property_id IN ?", idsOrNone(scope.PropertyIDs))
	return db.Where("room_id IN (?)", sub)
}

// ScopeRequests 对住户申请查询应用范围过滤
func ScopeRequests(db *gorm.DB, scope *Scope) *gorm.DB {
	if scope.All {
		return db
	}
	rooms := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Room{}).Select("id").
		Where("property_id IN ?", idsOrNone(scope.PropertyIDs))
	residents := db.Session(&gorm.Session{NewDB: true}).
		Model(&models.Resident{}).Select("id").
		Where("room_id IN (?)", rooms)
	return db.Where("resident_id IN (?)", residents)
}

// idsOrNone 保证 IN 列表非空，空范围用不存在的ID兜底
func idsOrNone(ids []uint) []uint {
	if len(ids) == 0 {
		return []uint{0}
	}
	return ids
}
