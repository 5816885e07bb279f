package statistics

import (
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/validateai/ValidateAI/app/models"
	"github.com/validateai/ValidateAI/internal/pkg/cache"
	"github.com/validateai/ValidateAI/internal/pkg/database"
)

const (
	CacheKeyValidationsTotal = "statistics:validations:total"
	CacheKeyValidationsDaily = "statistics:validations:daily:%s" // Format with date YYYY-MM-DD
	CacheKeyUsersTotal       = "statistics:users:total"
	CacheKeyUsersPaid        = "statistics:users:paid"
	CacheExpiration          = 30 * time.Minute
)

// Data holds the aggregate counters shown on the operator stats endpoint.
type Data struct {
	TotalValidations int64 `json:"total_validations"`
	TodayValidations int64 `json:"today_validations"`
	TotalUsers       int64 `json:"total_users"`
	PaidUsers        int64 `json:"paid_users"`
}

var (
	lastCacheUpdate     time.Time
	cacheUpdateMutex    sync.Mutex
	cacheUpdateInterval = 5 * time.Minute
)

// ShouldUpdateCache reports whether the cached aggregates are stale.
func ShouldUpdateCache() bool {
	cacheUpdateMutex.Lock()
	defer cacheUpdateMutex.Unlock()

	return time.Since(lastCacheUpdate) > cacheUpdateInterval
}

// UpdateCacheIfNeeded refreshes the cached aggregates when they are stale.
func UpdateCacheIfNeeded() {
	if ShouldUpdateCache() {
		cacheUpdateMutex.Lock()
		defer cacheUpdateMutex.Unlock()

		if err := UpdateStatisticsCache(); err != nil {
			log.Printf("Error updating statistics cache: %v", err)
		} else {
			lastCacheUpdate = time.Now()
		}
	}
}

// UpdateStatisticsCache recomputes all aggregates and writes them to the cache.
func UpdateStatisticsCache() error {
	db := database.GetDB()
	if db == nil {
		return fmt.Errorf("database not configured")
	}

	var totalValidations int64
	if err := db.Model(&models.Validation{}).Count(&totalValidations).Error; err != nil {
		log.Printf("Error counting total validations: %v", err)
		return err
	}

	today := time.Now().Format("2006-01-02")
	todayStart, _ := time.Parse("2006-01-02", today)
	todayEnd := todayStart.Add(24 * time.Hour)

	var todayValidations int64
	if err := db.Model(&models.Validation{}).Where("created_at BETWEEN ? AND ?", todayStart, todayEnd).Count(&todayValidations).Error; err != nil {
		log.Printf("Error counting today's validations: %v", err)
		return err
	}

	var totalUsers int64
	if err := db.Model(&models.User{}).Count(&totalUsers).Error; err != nil {
		log.Printf("Error counting total users: %v", err)
		return err
	}

	var paidUsers int64
	if err := db.Model(&models.User{}).Where("is_paid = ?", true).Count(&paidUsers).Error; err != nil {
		log.Printf("Error counting paid users: %v", err)
		return err
	}

	if err := cache.Set(CacheKeyValidationsTotal, strconv.FormatInt(totalValidations, 10), CacheExpiration); err != nil {
		return err
	}
	dailyKey := fmt.Sprintf(CacheKeyValidationsDaily, today)
	if err := cache.Set(dailyKey, strconv.FormatInt(todayValidations, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyUsersTotal, strconv.FormatInt(totalUsers, 10), CacheExpiration); err != nil {
		return err
	}
	if err := cache.Set(CacheKeyUsersPaid, strconv.FormatInt(paidUsers, 10), CacheExpiration); err != nil {
		return err
	}

	log.Printf("Statistics updated in cache: Total Validations: %d, Today: %d, Total Users: %d, Paid: %d",
		totalValidations, todayValidations, totalUsers, paidUsers)
	return nil
}

// Collect returns the current aggregates, refreshing the cache first when it
// is stale or missing.
func Collect() (*Data, error) {
	UpdateCacheIfNeeded()

	today := time.Now().Format("2006-01-02")
	data := &Data{
		TotalValidations: readCachedCount(CacheKeyValidationsTotal),
		TodayValidations: readCachedCount(fmt.Sprintf(CacheKeyValidationsDaily, today)),
		TotalUsers:       readCachedCount(CacheKeyUsersTotal),
		PaidUsers:        readCachedCount(CacheKeyUsersPaid),
	}

	// Cold cache: compute once and re-read.
	if data.TotalUsers == 0 && data.TotalValidations == 0 {
		if err := UpdateStatisticsCache(); err != nil {
			return nil, err
		}
		data.TotalValidations = readCachedCount(CacheKeyValidationsTotal)
		data.TodayValidations = readCachedCount(fmt.Sprintf(CacheKeyValidationsDaily, today))
		data.TotalUsers = readCachedCount(CacheKeyUsersTotal)
		data.PaidUsers = readCachedCount(CacheKeyUsersPaid)
	}

	return data, nil
}

func readCachedCount(key string) int64 {
	raw, err := cache.Get(key)
	if err != nil {
		return 0
	}
	parsed, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0
	}
	return parsed
}
