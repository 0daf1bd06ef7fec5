package content

import (
	"log"
	"net/http"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const recipeColumns = `recipe_id, title, slug, description, ingredients, steps, cover_image,
	prep_minutes, servings, product_ids, is_published, created_at, updated_at`

func scanRecipe(scan func(...interface{}) error) (*models.Recipe, error) {
	var r models.Recipe
	err := scan(&r.ID, &r.Title, &r.Slug, &r.Description, &r.Ingredients, &r.Steps, &r.CoverImage,
		&r.PrepMinutes, &r.Servings, &r.ProductIDs, &r.IsPublished, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

//
// GET /api/recipes
//
func GetRecipes(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	scanner := session.Query(`SELECT ` + recipeColumns + ` FROM recipes`).Iter().Scanner()

	var recipes []models.Recipe
	for scanner.Next() {
		r, err := scanRecipe(scanner.Scan)
		if err != nil {
			break
		}
		if r.IsPublished {
			recipes = append(recipes, *r)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("❌ Recipe listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipes": recipes, "total": len(recipes)})
}

//
// GET /api/recipes/:slug
//
func GetRecipeBySlug(c *gin.Context) {
	slug := c.Param("slug")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	var recipeID gocql.UUID
	if err := session.Query(`SELECT recipe_id FROM recipes_by_slug WHERE slug = ?`, slug).Scan(&recipeID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Recipe not found"})
		return
	}

	r, err := scanRecipe(session.Query(`SELECT `+recipeColumns+` FROM recipes WHERE recipe_id = ?`, recipeID).Scan)
	if err != nil || !r.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Recipe not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "recipe": r})
}

//
// POST /api/admin/recipes
//
func CreateRecipe(c *gin.Context) {
	var req struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description"`
		Ingredients []string `json:"ingredients" binding:"required"`
		Steps       []string `json:"steps" binding:"required"`
		CoverImage  string   `json:"cover_image"`
		PrepMinutes int      `json:"prep_minutes"`
		Servings    int      `json:"servings"`
		ProductIDs  []string `json:"product_ids"`
		Publish     bool     `json:"publish"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}

	productIDs := make([]gocql.UUID, 0, len(req.ProductIDs))
	for _, raw := range req.ProductIDs {
		pid, err := gocql.ParseUUID(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id: " + raw})
			return
		}
		productIDs = append(productIDs, pid)
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	now := time.Now()
	r := models.Recipe{
		ID:          gocql.TimeUUID(),
		Title:       req.Title,
		Slug:        slugify(req.Title),
		Description: req.Description,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		CoverImage:  req.CoverImage,
		PrepMinutes: req.PrepMinutes,
		Servings:    req.Servings,
		ProductIDs:  productIDs,
		IsPublished: req.Publish,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := session.Query(`INSERT INTO recipes (`+recipeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Slug, r.Description, r.Ingredients, r.Steps, r.CoverImage,
		r.PrepMinutes, r.Servings, r.ProductIDs, r.IsPublished, r.CreatedAt, r.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Recipe insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create recipe"})
		return
	}

	if err := session.Query(`INSERT INTO recipes_by_slug (slug, recipe_id) VALUES (?, ?)`,
		r.Slug, r.ID).Exec(); err != nil {
		log.Printf("⚠️ recipes_by_slug insert failed: %v", err)
	}

	if r.IsPublished {
		go services.IndexRecipe(r)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Recipe created", "recipe": r})
}

//
// DELETE /api/admin/recipes/:id
//
func DeleteRecipe(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid recipe id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if err := session.Query(`DELETE FROM recipes WHERE recipe_id = ?`, id).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not delete recipe"})
		return
	}

	go services.DeleteFromIndex("content", id.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Recipe deleted"})
}
