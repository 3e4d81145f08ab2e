package boot

import (
	"github.com/moisicmo/dinokids-serve-sub000/internal/model"
	"github.com/moisicmo/dinokids-serve-sub000/pkg/database"

	"gorm.io/gorm"
)

// InitDB 初始化 PostgreSQL 数据库连接
func InitDB(cfg *database.Config) (*gorm.DB, error) {
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		return nil, err
	}

	// 自动迁移数据库表
	if err := db.AutoMigrate(
		&model.Branch{},
		&model.Role{},
		&model.Permission{},
		&model.PermissionCondition{},
		&model.Staff{},
		&model.Tutor{},
		&model.Student{},
		&model.Room{},
		&model.Booking{},
		&model.Inscription{},
		&model.Debt{},
		&model.Payment{},
		&model.Invoice{},
	); err != nil {
		return nil, err
	}

	return db, nil
}

// InitMongo 初始化 MongoDB 连接
func InitMongo(cfg *database.MongoDBConfig) (*database.MongoClient, error) {
	return database.NewMongoClient(cfg)
}
