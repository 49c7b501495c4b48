package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"lodge-backend/models"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func envOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

func mustParseDate(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		log.Fatalf("Error parsing date for seeding (%s): %v", value, err)
	}
	return t
}

func mysqlDSNFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	user := u.User.Username()
	pass, _ := u.User.Password()
	host := u.Hostname()
	port := u.Port()
	if port == "" {
		port = "3306"
	}

	dbName := strings.TrimPrefix(u.Path, "/")
	if dbName == "" {
		return "", fmt.Errorf("mysql url missing database name")
	}

	q := u.Query()
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "True")
	}
	if q.Get("loc") == "" {
		q.Set("loc", "UTC")
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", user, pass, host, port, dbName, q.Encode()), nil
}

func resolveMySQLDSN() (string, error) {
	raw := strings.TrimSpace(os.Getenv("MYSQL_URL"))
	if raw == "" {
		raw = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	}

	if raw != "" {
		if strings.HasPrefix(raw, "mysql://") {
			return mysqlDSNFromURL(raw)
		}
		return raw, nil
	}

	user := envOrDefault("DB_USER", "root")
	pass := envOrDefault("DB_PASS", "")
	host := envOrDefault("DB_HOST", "127.0.0.1")
	port := envOrDefault("DB_PORT", "3306")
	dbName := envOrDefault("DB_NAME", "lodge_db")

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		user, pass, host, port, dbName,
	), nil
}

func ConnectDatabase() error {
	dsn, err := resolveMySQLDSN()
	if err != nil {
		return err
	}

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold: time.Second,
			LogLevel:      logger.Warn,
			Colorful:      true,
		},
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: newLogger})
	if err != nil {
		return err
	}

	DB = db

	if err := DB.AutoMigrate(
		&models.Property{},
		&models.Season{},
		&models.PricingRule{},
		&models.BlackoutDate{},
		&models.Booking{},
	); err != nil {
		return err
	}

	SeedDatabase()
	return nil
}

// SeedDatabase installs the reference data the service needs to run out of
// the box: properties, their seasons, pricing rules and a few blackout
// nights. Each block is skipped when rows already exist.
func SeedDatabase() {
	// ---------------- Properties ----------------
	var propCount int64
	DB.Model(&models.Property{}).Count(&propCount)
	if propCount == 0 {
		properties := []models.Property{
			{Code: "lakeside", Name: "Lakeside Lodge", MaxGuestsPerNight: 12, BookingHorizonDays: 365},
			{Code: "alpine", Name: "Alpine House", MaxGuestsPerNight: 12, BookingHorizonDays: 270},
		}
		if err := DB.Create(&properties).Error; err != nil {
			log.Fatalf("Failed to seed properties: %v", err)
		}
		log.Println("Properties seeded")
	}

	var lakeside models.Property
	if err := DB.Where("code = ?", "lakeside").First(&lakeside).Error; err != nil {
		log.Printf("warning: lakeside property missing, skipping season/rule seed: %v", err)
		return
	}

	// ---------------- Seasons ----------------
	var seasonCount int64
	DB.Model(&models.Season{}).Count(&seasonCount)
	if seasonCount == 0 {
		seasons := []models.Season{
			{PropertyID: lakeside.ID, Label: "Summer", StartDate: mustParseDate("2026-06-01"), EndDate: mustParseDate("2026-08-31")},
			{PropertyID: lakeside.ID, Label: "Autumn", StartDate: mustParseDate("2026-09-01"), EndDate: mustParseDate("2026-11-30")},
		}
		if err := DB.Create(&seasons).Error; err != nil {
			log.Fatalf("Failed to seed seasons: %v", err)
		}
		log.Println("Seasons seeded")
	}

	// ---------------- Pricing rules ----------------
	var ruleCount int64
	DB.Model(&models.PricingRule{}).Count(&ruleCount)
	if ruleCount == 0 {
		var summer models.Season
		if err := DB.Where("property_id = ? AND label = ?", lakeside.ID, "Summer").First(&summer).Error; err != nil {
			log.Printf("warning: summer season missing, skipping rule seed: %v", err)
			return
		}

		weekend := models.DayClassWeekend
		rules := []models.PricingRule{
			// Base day rate, any season.
			{PropertyID: lakeside.ID, Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 5000},
			// Summer day rate overrides the base.
			{PropertyID: lakeside.ID, SeasonID: &summer.ID, Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 6000},
			// Summer weekends are pricier still.
			{PropertyID: lakeside.ID, SeasonID: &summer.ID, DayClass: &weekend, Mode: models.ModeDay, PricingType: models.PricingPerGuestPerDay, AmountCents: 7500},
			// Buyout is only offered in summer.
			{PropertyID: lakeside.ID, SeasonID: &summer.ID, Mode: models.ModeBuyout, PricingType: models.PricingBuyoutFixed, AmountCents: 80000},
		}
		if err := DB.Create(&rules).Error; err != nil {
			log.Fatalf("Failed to seed pricing rules: %v", err)
		}
		log.Println("Pricing rules seeded")
	}

	// ---------------- Blackout dates ----------------
	var blackoutCount int64
	DB.Model(&models.BlackoutDate{}).Count(&blackoutCount)
	if blackoutCount == 0 {
		blackouts := []models.BlackoutDate{
			{PropertyID: lakeside.ID, Date: mustParseDate("2026-07-04"), Reason: "Club event"},
		}
		if err := DB.Create(&blackouts).Error; err != nil {
			log.Printf("warning: failed to seed blackout dates: %v", err)
		} else {
			log.Println("Blackout dates seeded")
		}
	}
}
