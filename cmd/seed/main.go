package main

import (
	"fmt"

	"github.com/vastrika/vastrika-api/internal/config"
	"github.com/vastrika/vastrika-api/internal/constants"
	"github.com/vastrika/vastrika-api/internal/logger"
	"github.com/vastrika/vastrika-api/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			Slug:        "silk-sarees",
			Name:        "Silk Sarees",
			Description: "Pure silk sarees for weddings and festive occasions",
			SortOrder:   400,
			IsActive:    true,
		},
		{
			Slug:        "cotton-sarees",
			Name:        "Cotton Sarees",
			Description: "Breathable handloom cotton sarees for daily wear",
			SortOrder:   300,
			IsActive:    true,
		},
		{
			Slug:        "banarasi-sarees",
			Name:        "Banarasi Sarees",
			Description: "Handwoven Banarasi sarees with zari work",
			SortOrder:   200,
			IsActive:    true,
		},
		{
			Slug:        "georgette-sarees",
			Name:        "Georgette Sarees",
			Description: "Lightweight georgette sarees for parties",
			SortOrder:   100,
			IsActive:    true,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"silk-sarees", "cotton-sarees", "banarasi-sarees", "georgette-sarees"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	silkID := categoryIDs["silk-sarees"]
	cottonID := categoryIDs["cotton-sarees"]
	banarasiID := categoryIDs["banarasi-sarees"]
	georgetteID := categoryIDs["georgette-sarees"]

	// 添加商品
	products := []models.Product{
		{
			Slug:           "kanjivaram-bridal-red",
			Name:           "Kanjivaram Bridal Silk Saree - Deep Red",
			Description:    "Traditional Kanjivaram silk saree in deep red with gold zari border, woven in Kanchipuram.",
			Fabric:         "Kanjivaram Silk",
			Occasion:       "Wedding",
			PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(12499)),
			OriginalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(15999)),
			Stock:          8,
			CategoryID:     silkID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1610030469983-98e550d6193c?w=800",
			}),
			Tags:       models.StringArray([]string{"bridal", "zari", "kanjivaram"}),
			Status:     constants.ProductStatusActive,
			IsFeatured: true,
			IsSale:     true,
			SortOrder:  400,
		},
		{
			Slug:           "mysore-silk-emerald",
			Name:           "Mysore Silk Saree - Emerald Green",
			Description:    "Soft Mysore silk saree in emerald green with a slim gold border.",
			Fabric:         "Mysore Silk",
			Occasion:       "Festive",
			PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(6799)),
			OriginalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(7999)),
			Stock:          15,
			CategoryID:     silkID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1583391733956-6c78276477e2?w=800",
			}),
			Tags:       models.StringArray([]string{"festive", "mysore"}),
			Status:     constants.ProductStatusActive,
			IsFeatured: true,
			IsSale:     true,
			SortOrder:  380,
		},
		{
			Slug:        "chettinad-cotton-mustard",
			Name:        "Chettinad Cotton Saree - Mustard",
			Description: "Handloom Chettinad cotton saree in mustard with temple border, ideal for office and daily wear.",
			Fabric:      "Handloom Cotton",
			Occasion:    "Daily Wear",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(1899)),
			Stock:       30,
			CategoryID:  cottonID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1594633313593-bab3825d0caf?w=800",
			}),
			Tags:      models.StringArray([]string{"handloom", "daily"}),
			Status:    constants.ProductStatusActive,
			IsNew:     true,
			SortOrder: 300,
		},
		{
			Slug:        "kalamkari-print-indigo",
			Name:        "Kalamkari Print Cotton Saree - Indigo",
			Description: "Mul cotton saree with hand-block Kalamkari prints in indigo and off-white.",
			Fabric:      "Mul Cotton",
			Occasion:    "Casual",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(2299)),
			Stock:       22,
			CategoryID:  cottonID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1617627143750-d86bc21e42bb?w=800",
			}),
			Tags:      models.StringArray([]string{"kalamkari", "block-print"}),
			Status:    constants.ProductStatusActive,
			IsNew:     true,
			SortOrder: 280,
		},
		{
			Slug:           "banarasi-katan-royal-blue",
			Name:           "Banarasi Katan Silk Saree - Royal Blue",
			Description:    "Pure Katan silk Banarasi saree in royal blue with all-over silver zari booti.",
			Fabric:         "Katan Silk",
			Occasion:       "Wedding",
			PriceAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(9499)),
			OriginalAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(11999)),
			Stock:          6,
			CategoryID:     banarasiID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1606902965551-dce093cda6e7?w=800",
			}),
			Tags:       models.StringArray([]string{"banarasi", "zari", "bridal"}),
			Status:     constants.ProductStatusActive,
			IsFeatured: true,
			IsSale:     true,
			SortOrder:  260,
		},
		{
			Slug:        "banarasi-georgette-rose",
			Name:        "Banarasi Georgette Saree - Rose Pink",
			Description: "Lightweight Banarasi georgette saree in rose pink with floral jaal weave.",
			Fabric:      "Georgette",
			Occasion:    "Reception",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(5299)),
			Stock:       12,
			CategoryID:  banarasiID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1585944285854-d06c019aaca3?w=800",
			}),
			Tags:      models.StringArray([]string{"banarasi", "lightweight"}),
			Status:    constants.ProductStatusActive,
			IsNew:     true,
			SortOrder: 240,
		},
		{
			Slug:        "sequin-party-black",
			Name:        "Sequin Work Georgette Saree - Black",
			Description: "Party-wear georgette saree in black with scattered sequin work and satin border.",
			Fabric:      "Georgette",
			Occasion:    "Party",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(3999)),
			Stock:       18,
			CategoryID:  georgetteID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1583394838336-acd977736f90?w=800",
			}),
			Tags:      models.StringArray([]string{"party", "sequin"}),
			Status:    constants.ProductStatusActive,
			SortOrder: 220,
		},
		{
			Slug:        "ombre-georgette-sunset",
			Name:        "Ombre Georgette Saree - Sunset",
			Description: "Flowy georgette saree with sunset ombre shading from peach to wine.",
			Fabric:      "Georgette",
			Occasion:    "Party",
			PriceAmount: models.NewMoneyFromDecimal(decimal.NewFromInt(3499)),
			Stock:       0,
			CategoryID:  georgetteID,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1610189020382-668a6b91a54c?w=800",
			}),
			Tags:      models.StringArray([]string{"ombre", "party"}),
			Status:    constants.ProductStatusOutOfStock,
			SortOrder: 200,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Slug)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Slug)
			}
		} else {
			existing.Name = prod.Name
			existing.Description = prod.Description
			existing.Fabric = prod.Fabric
			existing.Occasion = prod.Occasion
			existing.PriceAmount = prod.PriceAmount
			existing.OriginalAmount = prod.OriginalAmount
			existing.Stock = prod.Stock
			existing.CategoryID = prod.CategoryID
			existing.Images = prod.Images
			existing.Tags = prod.Tags
			existing.Status = prod.Status
			existing.IsFeatured = prod.IsFeatured
			existing.IsNew = prod.IsNew
			existing.IsSale = prod.IsSale
			existing.SortOrder = prod.SortOrder
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Slug)
			}
		}
	}

	// 更新门店配置
	storeConfig := map[string]interface{}{
		"store_name":   "Vastrika",
		"currency":     "INR",
		"announcement": "Free delivery on orders above Rs. 999",
		"contact": map[string]string{
			"phone":     "+91 98765 43210",
			"whatsapp":  "https://wa.me/919876543210",
			"instagram": "https://instagram.com/vastrika.sarees",
		},
	}

	var setting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeyStoreConfig).First(&setting).Error; err != nil {
		// 不存在则创建
		setting = models.Setting{
			Key:       constants.SettingKeyStoreConfig,
			ValueJSON: models.JSON(storeConfig),
		}
		if err := models.DB.Create(&setting).Error; err != nil {
			stdLog.Printf("Failed to create setting: %v", err)
		} else {
			stdLog.Println("Created store config")
		}
	} else {
		setting.ValueJSON = models.JSON(storeConfig)
		if err := models.DB.Save(&setting).Error; err != nil {
			stdLog.Printf("Failed to update setting: %v", err)
		} else {
			stdLog.Println("Updated store config")
		}
	}

	// 配送配置
	deliveryConfig := map[string]interface{}{
		constants.SettingFieldFreeDeliveryMin: 999,
		constants.SettingFieldDeliveryFee:     99,
	}
	var deliverySetting models.Setting
	if err := models.DB.Where("key = ?", constants.SettingKeyDeliveryConfig).First(&deliverySetting).Error; err != nil {
		deliverySetting = models.Setting{
			Key:       constants.SettingKeyDeliveryConfig,
			ValueJSON: models.JSON(deliveryConfig),
		}
		if err := models.DB.Create(&deliverySetting).Error; err != nil {
			stdLog.Printf("Failed to create delivery setting: %v", err)
		} else {
			stdLog.Println("Created delivery config")
		}
	} else {
		stdLog.Println("Delivery config already exists")
	}

	fmt.Println("\n✅ Seed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 4 Categories")
	fmt.Println("- 8 Products")
	fmt.Println("- Store and delivery configuration")
}
