package services

import (
	"encoding/json"
	"fmt"

	"pmp/internal/database"
	"pmp/internal/models"
	"pmp/pkg/textutil"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoomService struct {
	db *gorm.DB
}

func NewRoomService() *RoomService {
	return &RoomService{
		db: database.GetDB(),
	}
}

// NewRoomServiceWithDB 指定数据库实例创建（测试用）
func NewRoomServiceWithDB(db *gorm.DB) *RoomService {
	return &RoomService{db: db}
}

// RoomInput 房间写入参数
type RoomInput struct {
	PropertyID     uint
	RoomNumber     string
	Layout         string
	SizeSqm        float64
	Floor          int
	MonthlyRent    int64
	MaintenanceFee int64
	IsOccupied     bool
	Photos         []string
}

// validate 房间参数校验
func (s *RoomService) validate(in *RoomInput) error {
	if in.PropertyID == 0 {
		return fmt.Errorf("必须选择所属物业")
	}
	if in.RoomNumber == "" {
		return fmt.Errorf("房间号不能为空")
	}
	if in.SizeSqm <= 0 {
		return fmt.Errorf("面积必须大于0")
	}
	if in.MonthlyRent < 0 || in.MaintenanceFee < 0 {
		return fmt.Errorf("租金和管理费不能为负数")
	}
	return nil
}

// Create 创建房间
// 房间号写入前统一格式化为规范形式
func (s *RoomService) Create(scope *Scope, in *RoomInput) (*models.Room, error) {
	if err := s.validate(in); err != nil {
		return nil, err
	}
	if !scope.Allows(in.PropertyID) {
		return nil, ErrScopeDenied
	}

	var property models.Property
	if err := s.db.First(&property, in.PropertyID).Error; err != nil {
		return nil, fmt.Errorf("物业不存在")
	}

	roomNumber := textutil.FormatRoomNumber(in.RoomNumber)

	var count int64
	s.db.Model(&models.Room{}).
		Where("property_id = ? AND room_number = ?", in.PropertyID, roomNumber).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("该物业下已存在房间 %s", roomNumber)
	}

	photos, err := marshalPhotos(in.Photos)
	if err != nil {
		return nil, err
	}

	room := &models.Room{
		PropertyID:     in.PropertyID,
		RoomNumber:     roomNumber,
		Layout:         in.Layout,
		SizeSqm:        in.SizeSqm,
		Floor:          in.Floor,
		MonthlyRent:    in.MonthlyRent,
		MaintenanceFee: in.MaintenanceFee,
		IsOccupied:     in.IsOccupied,
		Photos:         photos,
	}

	if err := s.db.Create(room).Error; err != nil {
		return nil, fmt.Errorf("创建房间失败: %v", err)
	}

	return room, nil
}

// GetByID 根据ID获取房间
func (s *RoomService) GetByID(scope *Scope, id uint) (*models.Room, error) {
	var room models.Room
	err := s.db.Preload("Property").First(&room, id).Error
	if err != nil {
		return nil, err
	}
	if !scope.Allows(room.PropertyID) {
		return nil, gorm.ErrRecordNotFound
	}
	return &room, nil
}

// List 按范围获取房间列表，可按物业过滤
func (s *RoomService) List(scope *Scope, propertyID uint, offset, limit int) ([]models.Room, int64, error) {
	var rooms []models.Room
	var total int64

	query := ScopeRooms(s.db.Model(&models.Room{}), scope)
	if propertyID > 0 {
		query = query.Where("property_id = ?", propertyID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Order("property_id, room_number").
		Offset(offset).Limit(limit).Find(&rooms).Error
	return rooms, total, err
}

// Update 更新房间
func (s *RoomService) Update(scope *Scope, id uint, in *RoomInput) (*models.Room, error) {
	var room models.Room
	if err := s.db.First(&room, id).Error; err != nil {
		return nil, err
	}
	if !scope.Allows(room.PropertyID) {
		return nil, gorm.ErrRecordNotFound
	}

	if in.RoomNumber != "" {
		room.RoomNumber = textutil.FormatRoomNumber(in.RoomNumber)
	}
	if in.Layout != "" {
		room.Layout = in.Layout
	}
	if in.SizeSqm > 0 {
		room.SizeSqm = in.SizeSqm
	}
	if in.Floor != 0 {
		room.Floor = in.Floor
	}
	if in.MonthlyRent >= 0 {
		room.MonthlyRent = in.MonthlyRent
	}
	if in.MaintenanceFee >= 0 {
		room.MaintenanceFee = in.MaintenanceFee
	}
	room.IsOccupied = in.IsOccupied

	if in.Photos != nil {
		photos, err := marshalPhotos(in.Photos)
		if err != nil {
			return nil, err
		}
		room.Photos = photos
	}

	if err := s.db.Save(&room).Error; err != nil {
		return nil, fmt.Errorf("更新房间失败: %v", err)
	}

	return &room, nil
}

// SetOccupied 更新入住状态
func (s *RoomService) SetOccupied(scope *Scope, id uint, occupied bool) error {
	var room models.Room
	if err := s.db.First(&room, id).Error; err != nil {
		return err
	}
	if !scope.Allows(room.PropertyID) {
		return gorm.ErrRecordNotFound
	}
	return s.db.Model(&room).Update("is_occupied", occupied).Error
}

// Delete 删除房间
func (s *RoomService) Delete(scope *Scope, id uint) error {
	var room models.Room
	if err := s.db.First(&room, id).Error; err != nil {
		return err
	}
	if !scope.Allows(room.PropertyID) {
		return gorm.ErrRecordNotFound
	}

	var count int64
	s.db.Model(&models.Resident{}).Where("room_id = ?", id).Count(&count)
	if count > 0 {
		return fmt.Errorf("该房间仍有住户，无法删除")
	}

	return s.db.Delete(&models.Room{}, id).Error
}

// marshalPhotos 照片路径列表序列化为JSON
func marshalPhotos(photos []string) (datatypes.JSON, error) {
	if photos == nil {
		photos = []string{}
	}
	data, err := json.Marshal(photos)
	if err != nil {
		return nil, fmt.Errorf("序列化照片列表失败: %v", err)
	}
	return datatypes.JSON(data), nil
}
