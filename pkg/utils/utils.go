package utils

import (
	"context"
	"errors"
	"log"
	"math"

	"github.com/joho/godotenv"
	"github.com/wagateway/pkg/constant"

	"gorm.io/gorm"
)

func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		// Environment variables can be provided via Docker Compose or system
		log.Println("Info: .env file not found, using system environment variables")
	}
}

// Pagination loads one page of items into item and returns the total page count.
func Pagination(item interface{}, pageNumber int, db *gorm.DB, c context.Context, order string, query interface{}, args ...interface{}) (int, error) {
	limit := 10
	offset := 0

	var totalCount int64
	if err := db.WithContext(c).Model(item).Where(query, args...).Count(&totalCount).Error; err != nil {
		return 0, err
	}

	totalPages := int(math.Ceil(float64(totalCount) / float64(limit)))
	if totalPages == 0 {
		totalPages = 1
	}

	if pageNumber > totalPages || pageNumber <= 0 {
		return 0, errors.New(constant.PAGE_NUMBER_OUT_OF_RANGE)
	}

	offset = (pageNumber - 1) * limit

	tx := db.WithContext(c).Limit(limit).Offset(offset).Where(query, args...)
	if order != "" {
		tx = tx.Order(order)
	}
	if err := tx.Find(item).Error; err != nil {
		return 0, err
	}
	return totalPages, nil
}
