package main

import (
	"fmt"
	"time"

	"pmp/internal/database"
	"pmp/internal/models"
	"pmp/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// seedData 初始化种子数据
func seedData() error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	db := database.GetDB()

	// 1. 创建默认管理员
	if err := createDefaultAdmin(db); err != nil {
		return fmt.Errorf("创建默认管理员失败: %v", err)
	}

	// 2. 创建演示数据（物业、房间、住户、合同、维修）
	if err := createDemoData(db); err != nil {
		return fmt.Errorf("创建演示数据失败: %v", err)
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

// createDefaultAdmin 创建默认管理员用户
func createDefaultAdmin(db *gorm.DB) error {
	var count int64
	db.Model(&models.User{}).Where("username = ?", "admin").Count(&count)
	if count > 0 {
		logger.GetLogger().Info("默认管理员已存在，跳过创建")
		return nil
	}

	admin := &models.User{
		Username: "admin",
		Name:     "系统管理员",
		Role:     models.RoleAdmin,
		Status:   models.UserStatusActive,
	}
	if err := admin.SetPassword("admin123"); err != nil {
		return err
	}

	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Info("默认管理员创建成功 (admin/admin123)")
	return nil
}

// createDemoData 创建演示数据
// 覆盖两处物业、经理分配、住户账号（含一个已停用的住户）
func createDemoData(db *gorm.DB) error {
	var count int64
	db.Model(&models.Property{}).Count(&count)
	if count > 0 {
		logger.GetLogger().Info("演示数据已存在，跳过创建")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		// 物业
		greenHill := &models.Property{Name: "绿丘公寓", Address: "东京都世田谷区1-2-3", TotalRoomCount: 3}
		sakura := &models.Property{Name: "樱花庄", Address: "东京都杉并区4-5-6", TotalRoomCount: 2}
		for _, p := range []*models.Property{greenHill, sakura} {
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		// 物业经理，只负责绿丘公寓
		manager := &models.User{
			Username: "manager",
			Name:     "山田经理",
			Role:     models.RoleManager,
			Status:   models.UserStatusActive,
		}
		if err := manager.SetPassword("manager123"); err != nil {
			return err
		}
		if err := tx.Create(manager).Error; err != nil {
			return err
		}
		if err := tx.Create(&models.PropertyAssignment{
			UserID:     manager.ID,
			PropertyID: greenHill.ID,
		}).Error; err != nil {
			return err
		}

		// 房间
		rooms := []*models.Room{
			{PropertyID: greenHill.ID, RoomNumber: "101", Layout: "1LDK", SizeSqm: 35.5, Floor: 1, MonthlyRent: 80000, MaintenanceFee: 5000, IsOccupied: true},
			{PropertyID: greenHill.ID, RoomNumber: "102", Layout: "1K", SizeSqm: 25.0, Floor: 1, MonthlyRent: 65000, MaintenanceFee: 4000},
			{PropertyID: greenHill.ID, RoomNumber: "201", Layout: "2LDK", SizeSqm: 52.0, Floor: 2, MonthlyRent: 110000, MaintenanceFee: 8000, IsOccupied: true},
			{PropertyID: sakura.ID, RoomNumber: "101", Layout: "1DK", SizeSqm: 30.0, Floor: 1, MonthlyRent: 72000, MaintenanceFee: 4500, IsOccupied: true},
			{PropertyID: sakura.ID, RoomNumber: "102", Layout: "1K", SizeSqm: 22.0, Floor: 1, MonthlyRent: 58000, MaintenanceFee: 3500},
		}
		for _, r := range rooms {
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}

		// 住户
		moveIn1 := time.Now().AddDate(-1, -2, 0)
		moveIn2 := time.Now().AddDate(0, -6, 0)
		moveIn3 := time.Now().AddDate(-2, 0, 0)
		tanaka := &models.Resident{RoomID: rooms[0].ID, Name: "田中太郎", MoveInDate: &moveIn1, IsActive: true}
		sato := &models.Resident{RoomID: rooms[2].ID, Name: "佐藤花子", MoveInDate: &moveIn2, IsActive: true}
		suzuki := &models.Resident{RoomID: rooms[3].ID, Name: "铃木一郎", MoveInDate: &moveIn3, IsActive: false} // 已退去
		for _, r := range []*models.Resident{tanaka, sato, suzuki} {
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}

		// 住户账号；铃木的住户记录已停用，账号无法登录
		for _, acc := range []struct {
			username string
			resident *models.Resident
		}{
			{"tanaka", tanaka},
			{"sato", sato},
			{"suzuki", suzuki},
		} {
			user := &models.User{
				Username:   acc.username,
				Name:       acc.resident.Name,
				Role:       models.RoleResident,
				Status:     models.UserStatusActive,
				ResidentID: &acc.resident.ID,
			}
			if err := user.SetPassword("resident123"); err != nil {
				return err
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
		}

		// 合同：田中的合同办理完成且3个月后到期，佐藤的还在办理中
		endSoon := time.Now().AddDate(0, 3, 0)
		endLater := time.Now().AddDate(1, 6, 0)
		contracts := []struct {
			resident *models.Resident
			start    time.Time
			end      time.Time
			statuses []string
		}{
			{tanaka, moveIn1, endSoon, []string{models.StepStatusCompleted, models.StepStatusCompleted, models.StepStatusCompleted, models.StepStatusCompleted}},
			{sato, moveIn2, endLater, []string{models.StepStatusCompleted, models.StepStatusCompleted, models.StepStatusInProgress, models.StepStatusPending}},
		}
		stepNames := []string{"申込", "審査", "契約書作成", "契約締結"}
		for _, cd := range contracts {
			start := cd.start
			end := cd.end
			contract := &models.Contract{ResidentID: cd.resident.ID, StartDate: &start, EndDate: &end}
			if err := tx.Create(contract).Error; err != nil {
				return err
			}
			for i, status := range cd.statuses {
				step := &models.ContractStep{
					ContractID: contract.ID,
					Seq:        i + 1,
					Name:       stepNames[i],
					Status:     status,
				}
				if err := tx.Create(step).Error; err != nil {
					return err
				}
			}
		}

		// 维修记录
		reqDate1 := time.Now().AddDate(0, 0, -3)
		reqDate2 := time.Now().AddDate(0, -1, 0)
		repairs := []*models.Repair{
			{TicketNo: uuid.New().String(), RoomID: &rooms[0].ID, Title: "水龙头漏水", Status: models.RepairStatusPending, Cost: 0, IsUrgent: true, RequestDate: &reqDate1},
			{TicketNo: uuid.New().String(), RoomID: &rooms[2].ID, Title: "空调清洗", Status: models.RepairStatusCompleted, Cost: 15000, RequestDate: &reqDate2},
		}
		for _, r := range repairs {
			if err := tx.Create(r).Error; err != nil {
				return err
			}
		}

		// 未确认的住户申请，用于演示未读角标
		request := &models.ResidentRequest{
			ResidentID: tanaka.ID,
			Category:   "设备",
			Title:      "换气扇异响",
			Content:    "厨房换气扇运转时有噪音，希望安排检查",
			Status:     models.RequestStatusPending,
		}
		if err := tx.Create(request).Error; err != nil {
			return err
		}

		logger.GetLogger().Info("演示数据创建成功")
		return nil
	})
}
