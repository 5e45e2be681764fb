package main

import (
	"github.com/peptide-store/internal/config"
	"github.com/peptide-store/internal/constants"
	"github.com/peptide-store/internal/logger"
	"github.com/peptide-store/internal/models"

	"gorm.io/gorm"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	db, err := models.OpenDB(cfg.Database.Driver, cfg.Database.DSN, models.DBOptions{
		Pool: models.DBPoolConfig{
			MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
		},
	})
	if err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(db); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seedAll(db, stdLog.Printf); err != nil {
		stdLog.Fatalf("Seed failed: %v", err)
	}
	stdLog.Printf("Seed data created successfully!")
}

type logFunc func(format string, args ...interface{})

// seedAll 写入演示数据，可重复执行
func seedAll(db *gorm.DB, logf logFunc) error {
	if err := seedProducts(db, logf); err != nil {
		return err
	}
	if err := seedShipmentMethods(db, logf); err != nil {
		return err
	}
	if err := seedPaymentMethods(db, logf); err != nil {
		return err
	}
	return seedPromotions(db, logf)
}

func seedProducts(db *gorm.DB, logf logFunc) error {
	products := []models.Product{
		{
			Name:        "BPC-157",
			Description: "Body Protection Compound 157, 5mg lyophilized vial.",
			Category:    "healing",
			Price:       models.MustMoney("45.00"),
			FilePath:    "/images/bpc-157.png",
			IsActive:    true,
		},
		{
			Name:        "TB-500",
			Description: "Thymosin Beta-4 fragment, 5mg lyophilized vial.",
			Category:    "healing",
			Price:       models.MustMoney("55.00"),
			FilePath:    "/images/tb-500.png",
			IsActive:    true,
		},
		{
			Name:        "GHK-Cu",
			Description: "Copper tripeptide complex, 50mg lyophilized vial.",
			Category:    "cosmetic",
			Price:       models.MustMoney("38.50"),
			FilePath:    "/images/ghk-cu.png",
			IsActive:    true,
		},
		{
			Name:        "Ipamorelin",
			Description: "Growth hormone secretagogue, 5mg lyophilized vial.",
			Category:    "growth",
			Price:       models.MustMoney("42.00"),
			FilePath:    "/images/ipamorelin.png",
			IsActive:    true,
		},
		{
			Name:        "Bacteriostatic Water",
			Description: "30ml multi-dose vial for reconstitution.",
			Category:    "supplies",
			Price:       models.MustMoney("12.00"),
			FilePath:    "/images/bac-water.png",
			IsActive:    true,
		},
	}

	for _, product := range products {
		var existing models.Product
		err := db.Where("name = ?", product.Name).First(&existing).Error
		if err == nil {
			logf("Product already exists: %s", product.Name)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		item := product
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		logf("Created product: %s", product.Name)
	}
	return nil
}

func seedShipmentMethods(db *gorm.DB, logf logFunc) error {
	methods := []models.ShipmentMethod{
		{Code: "standard", Description: "Standard shipping (5-7 business days)", Fee: models.MustMoney("8.00"), IsActive: true},
		{Code: "express", Description: "Express shipping (1-2 business days)", Fee: models.MustMoney("25.00"), IsActive: true},
	}
	for _, method := range methods {
		var existing models.ShipmentMethod
		err := db.Where("code = ?", method.Code).First(&existing).Error
		if err == nil {
			logf("Shipment method already exists: %s", method.Code)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		item := method
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		logf("Created shipment method: %s", method.Code)
	}
	return nil
}

func seedPaymentMethods(db *gorm.DB, logf logFunc) error {
	methods := []models.PaymentMethod{
		{
			Code:         "zelle",
			Name:         "Zelle",
			Instructions: "Send the order total via Zelle to payments@peptide-store.example and include your order number in the memo.",
			IsActive:     true,
		},
		{
			Code:         "cashapp",
			Name:         "Cash App",
			Instructions: "Send the order total to $PeptideStore on Cash App and include your order number in the note.",
			IsActive:     true,
		},
		{
			Code:         "bitcoin",
			Name:         "Bitcoin",
			Instructions: "Send the BTC equivalent of the order total to the wallet address shown on the order page. Orders are processed after one confirmation.",
			IsActive:     true,
		},
	}
	for _, method := range methods {
		var existing models.PaymentMethod
		err := db.Where("code = ?", method.Code).First(&existing).Error
		if err == nil {
			logf("Payment method already exists: %s", method.Code)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		item := method
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		logf("Created payment method: %s", method.Code)
	}
	return nil
}

func seedPromotions(db *gorm.DB, logf logFunc) error {
	description := "10% off for first-time customers"
	promotions := []models.Promotion{
		{
			Code:        "WELCOME10",
			Type:        constants.PromotionTypeDiscount,
			Value:       models.MustMoney("10"),
			UsageLimit:  0,
			IsActive:    true,
			Description: &description,
		},
	}
	for _, promotion := range promotions {
		var existing models.Promotion
		err := db.Where("code = ?", promotion.Code).First(&existing).Error
		if err == nil {
			logf("Promotion already exists: %s", promotion.Code)
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		item := promotion
		if err := db.Create(&item).Error; err != nil {
			return err
		}
		logf("Created promotion: %s", promotion.Code)
	}
	return nil
}
