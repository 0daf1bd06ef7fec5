package content

import (
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"drinkmate_backend/internal/database"
	"drinkmate_backend/internal/models"
	"drinkmate_backend/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
)

const blogColumns = `post_id, title, slug, excerpt, content, cover_image, tags, author,
	is_published, published_at, created_at, updated_at`

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(title string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

func scanPost(scan func(...interface{}) error) (*models.BlogPost, error) {
	var p models.BlogPost
	err := scan(&p.ID, &p.Title, &p.Slug, &p.Excerpt, &p.Content, &p.CoverImage, &p.Tags,
		&p.Author, &p.IsPublished, &p.PublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

//
// GET /api/blog: published posts, newest first.
//
func GetBlogPosts(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	scanner := session.Query(`SELECT ` + blogColumns + ` FROM blog_posts`).Iter().Scanner()

	var posts []models.BlogPost
	for scanner.Next() {
		p, err := scanPost(scanner.Scan)
		if err != nil {
			break
		}
		if p.IsPublished {
			posts = append(posts, *p)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Printf("❌ Blog listing failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "posts": posts, "total": len(posts)})
}

//
// GET /api/blog/:slug
//
func GetBlogPostBySlug(c *gin.Context) {
	slug := c.Param("slug")

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	var postID gocql.UUID
	if err := session.Query(`SELECT post_id FROM blog_posts_by_slug WHERE slug = ?`, slug).Scan(&postID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	p, err := scanPost(session.Query(`SELECT `+blogColumns+` FROM blog_posts WHERE post_id = ?`, postID).Scan)
	if err != nil || !p.IsPublished {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "post": p})
}

//
// POST /api/admin/blog
//
func CreateBlogPost(c *gin.Context) {
	var req struct {
		Title      string   `json:"title" binding:"required"`
		Excerpt    string   `json:"excerpt"`
		Content    string   `json:"content" binding:"required"`
		CoverImage string   `json:"cover_image"`
		Tags       []string `json:"tags"`
		Publish    bool     `json:"publish"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload: " + err.Error()})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	now := time.Now()
	p := models.BlogPost{
		ID:          gocql.TimeUUID(),
		Title:       req.Title,
		Slug:        slugify(req.Title),
		Excerpt:     req.Excerpt,
		Content:     req.Content,
		CoverImage:  req.CoverImage,
		Tags:        req.Tags,
		Author:      c.GetString("email"),
		IsPublished: req.Publish,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Publish {
		p.PublishedAt = &now
	}

	if err := session.Query(`INSERT INTO blog_posts (`+blogColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.Tags, p.Author,
		p.IsPublished, p.PublishedAt, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		log.Printf("❌ Blog post insert failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not create post"})
		return
	}

	if err := session.Query(`INSERT INTO blog_posts_by_slug (slug, post_id) VALUES (?, ?)`,
		p.Slug, p.ID).Exec(); err != nil {
		log.Printf("⚠️ blog_posts_by_slug insert failed: %v", err)
	}

	if p.IsPublished {
		go services.IndexBlogPost(p)
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Post created", "post": p})
}

//
// PUT /api/admin/blog/:id
//
func UpdateBlogPost(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid post id"})
		return
	}

	var req struct {
		Title      *string  `json:"title"`
		Excerpt    *string  `json:"excerpt"`
		Content    *string  `json:"content"`
		CoverImage *string  `json:"cover_image"`
		Tags       []string `json:"tags"`
		Publish    *bool    `json:"publish"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid payload"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	p, err := scanPost(session.Query(`SELECT `+blogColumns+` FROM blog_posts WHERE post_id = ?`, id).Scan)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Post not found"})
		return
	}

	if req.Title != nil {
		p.Title = *req.Title
		p.Slug = slugify(*req.Title)
	}
	if req.Excerpt != nil {
		p.Excerpt = *req.Excerpt
	}
	if req.Content != nil {
		p.Content = *req.Content
	}
	if req.CoverImage != nil {
		p.CoverImage = *req.CoverImage
	}
	if req.Tags != nil {
		p.Tags = req.Tags
	}
	now := time.Now()
	if req.Publish != nil {
		if *req.Publish && !p.IsPublished {
			p.PublishedAt = &now
		}
		p.IsPublished = *req.Publish
	}
	p.UpdatedAt = now

	if err := session.Query(`UPDATE blog_posts SET title = ?, slug = ?, excerpt = ?, content = ?,
		cover_image = ?, tags = ?, is_published = ?, published_at = ?, updated_at = ? WHERE post_id = ?`,
		p.Title, p.Slug, p.Excerpt, p.Content, p.CoverImage, p.Tags, p.IsPublished,
		p.PublishedAt, p.UpdatedAt, id).Exec(); err != nil {
		log.Printf("❌ Blog post update failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not update post"})
		return
	}

	if req.Title != nil {
		if err := session.Query(`INSERT INTO blog_posts_by_slug (slug, post_id) VALUES (?, ?)`,
			p.Slug, p.ID).Exec(); err != nil {
			log.Printf("⚠️ blog_posts_by_slug insert failed: %v", err)
		}
	}

	if p.IsPublished {
		go services.IndexBlogPost(*p)
	} else {
		go services.DeleteFromIndex("content", p.ID.String())
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post updated", "post": p})
}

//
// DELETE /api/admin/blog/:id
//
func DeleteBlogPost(c *gin.Context) {
	id, err := gocql.ParseUUID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid post id"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Database connection error"})
		return
	}

	if err := session.Query(`DELETE FROM blog_posts WHERE post_id = ?`, id).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Could not delete post"})
		return
	}

	go services.DeleteFromIndex("content", id.String())
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post deleted"})
}

//
// GET /api/content/search?q=...: blog posts and recipes together.
//
func SearchContent(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Search query required"})
		return
	}

	results, err := services.SearchContent(query)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"success": true, "results": []interface{}{}, "total": 0})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "results": results, "total": len(results)})
}
