package cache

import (
	"context"
	"encoding/json"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

const (
	ProductCacheTTL  = 10 * time.Minute
	CategoryCacheTTL = 30 * time.Minute
	UserCacheTTL     = 5 * time.Minute
)

// GetProductFromCache reads a product through the Redis cache, falling back
// to ScyllaDB and repopulating the cache on a miss.
func GetProductFromCache(productID string) (*models.Product, error) {
	ctx := context.Background()
	key := "product:" + productID

	data, err := database.Redis.Get(ctx, key).Result()
	if err == nil {
		var product models.Product
		if json.Unmarshal([]byte(data), &product) == nil {
			return &product, nil
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return nil, err
	}

	pid, err := uuid.Parse(productID)
	if err != nil {
		return nil, err
	}

	var product models.Product
	product.ID = gocql.UUID(pid)
	err = session.Query(`SELECT name, slug, description, price, stock, low_stock_threshold, sku, category_id, image_urls, tags, is_active, has_variants
		FROM products WHERE product_id = ?`, product.ID).Scan(
		&product.Name, &product.Slug, &product.Description, &product.Price, &product.Stock,
		&product.LowStockThreshold, &product.SKU, &product.CategoryID, &product.ImageURLs,
		&product.Tags, &product.IsActive, &product.HasVariants)
	if err != nil {
		return nil, err
	}

	jsonData, _ := json.Marshal(product)
	database.Redis.Set(ctx, key, jsonData, ProductCacheTTL)

	return &product, nil
}

// GetProductNamesFromCache resolves several product names at once, batching
// the Scylla lookups for the ids Redis does not know about.
func GetProductNamesFromCache(productIDs []string) map[string]string {
	ctx := context.Background()
	result := make(map[string]string)
	missingIDs := []string{}

	for _, productID := range productIDs {
		key := "product_name:" + productID
		name, err := database.Redis.Get(ctx, key).Result()
		if err == nil {
			result[productID] = name
		} else {
			missingIDs = append(missingIDs, productID)
		}
	}

	if len(missingIDs) > 0 {
		session, err := database.GetCatalogSession()
		if err == nil {
			for _, productID := range missingIDs {
				pid, err := uuid.Parse(productID)
				if err == nil {
					var name string
					err = session.Query("SELECT name FROM products WHERE product_id = ?", gocql.UUID(pid)).Scan(&name)
					if err == nil {
						result[productID] = name
						database.Redis.Set(ctx, "product_name:"+productID, name, ProductCacheTTL)
					}
				}
			}
		}
	}

	return result
}

// InvalidatePrefix drops every cached key under a prefix ("product:",
// "category:", ...). Write paths call this instead of tracking single keys.
func InvalidatePrefix(prefix string) {
	ctx := context.Background()
	iter := database.Redis.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		database.Redis.Del(ctx, iter.Val())
	}
}

// InvalidateProduct drops the cache entries of one product.
func InvalidateProduct(productID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "product:"+productID, "product_name:"+productID, "products:all")
}

// InvalidateCategory drops the cache entries of one category.
func InvalidateCategory(categoryID string) {
	ctx := context.Background()
	database.Redis.Del(ctx, "category:"+categoryID, "categories:all")
}
